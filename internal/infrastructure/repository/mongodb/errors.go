package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

// mapError translates driver errors into the domain error kinds. what names
// the thing being looked up or written, e.g. "user u1".
func mapError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %s", entity.ErrNotFound, what)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s already exists", entity.ErrConflict, what)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %v", entity.ErrUnavailable, what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func notFound(what string) error {
	return fmt.Errorf("%w: %s", entity.ErrNotFound, what)
}
