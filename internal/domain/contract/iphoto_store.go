package contract

import (
	"context"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

// IPhotoStore keeps review photos outside the review documents.
type IPhotoStore interface {
	Put(ctx context.Context, photo *entity.Photo) error
	Get(ctx context.Context, id string) (*entity.Photo, error)
	// Delete removes a blob. Deleting a blob that is already gone succeeds.
	Delete(ctx context.Context, id string) error
}
