// Package testinfra starts throwaway MongoDB and Redis containers for the
// integration tests of the repository and store packages.
//
// The tests are compiled only with the integration build tag and skip when no
// Docker daemon is reachable:
//
//	go test -tags integration ./internal/infrastructure/...
package testinfra
