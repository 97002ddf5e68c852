//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultMongoImage = "mongo:7.0"
	DefaultRedisImage = "redis:7-alpine"

	mongoPort = "27017"
	redisPort = "6379"

	startTimeout = 90 * time.Second
)

// SkipIfNoDocker skips the test if Docker is not available.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()
	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable checks if the Docker daemon is running and accessible.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// MongoContainer is a single-node MongoDB server.
type MongoContainer struct {
	testcontainers.Container
	URI string
}

// NewMongoContainer starts MongoDB and waits until it accepts connections.
func NewMongoContainer(ctx context.Context) (*MongoContainer, error) {
	container, endpoint, err := start(ctx, testcontainers.ContainerRequest{
		Image:        DefaultMongoImage,
		ExposedPorts: []string{mongoPort + "/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(mongoPort+"/tcp"),
			wait.ForLog("Waiting for connections"),
		).WithStartupTimeout(startTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("create mongo container: %w", err)
	}
	return &MongoContainer{Container: container, URI: "mongodb://" + endpoint}, nil
}

// RedisContainer is a single Redis server.
type RedisContainer struct {
	testcontainers.Container
	URL string
}

// NewRedisContainer starts Redis and waits until it accepts connections.
func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	container, endpoint, err := start(ctx, testcontainers.ContainerRequest{
		Image:        DefaultRedisImage,
		ExposedPorts: []string{redisPort + "/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(redisPort+"/tcp"),
			wait.ForLog("Ready to accept connections"),
		).WithStartupTimeout(startTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("create redis container: %w", err)
	}
	return &RedisContainer{Container: container, URL: "redis://" + endpoint + "/0"}, nil
}

// start runs req and returns the host:port of its single exposed port.
func start(ctx context.Context, req testcontainers.ContainerRequest) (testcontainers.Container, string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", err
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, "", fmt.Errorf("get container endpoint: %w", err)
	}
	return container, endpoint, nil
}

// CleanupContainer terminates container and logs, rather than fails on, errors.
func CleanupContainer(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()
	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}
