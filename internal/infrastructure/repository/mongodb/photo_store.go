package mongodb

import (
	"bytes"
	"context"
	"errors"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
)

const photoBucket = "photos"

// GridFSPhotoStore keeps review photos in a GridFS bucket keyed by photo ID.
type GridFSPhotoStore struct {
	bucket *gridfs.Bucket
}

var _ contract.IPhotoStore = (*GridFSPhotoStore)(nil)

func NewGridFSPhotoStore(db *mongo.Database) (*GridFSPhotoStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(photoBucket))
	if err != nil {
		return nil, err
	}
	return &GridFSPhotoStore{bucket: bucket}, nil
}

func (s *GridFSPhotoStore) Put(ctx context.Context, photo *entity.Photo) error {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}
	opts := options.GridFSUpload().SetMetadata(bson.M{"content_type": photo.ContentType})
	err := s.bucket.UploadFromStreamWithID(photo.ID, photo.Filename, bytes.NewReader(photo.Data), opts)
	return mapError(err, "photo "+photo.ID)
}

func (s *GridFSPhotoStore) Get(ctx context.Context, id string) (*entity.Photo, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
	}
	stream, err := s.bucket.OpenDownloadStream(id)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, notFound("photo " + id)
		}
		return nil, mapError(err, "photo "+id)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, mapError(err, "photo "+id)
	}
	file := stream.GetFile()
	photo := &entity.Photo{ID: id, Filename: file.Name, Data: data}
	if file.Metadata != nil {
		if ct, ok := file.Metadata.Lookup("content_type").StringValueOK(); ok {
			photo.ContentType = ct
		}
	}
	return photo, nil
}

// Delete removes the blob and its chunks. A missing blob is not an error.
func (s *GridFSPhotoStore) Delete(ctx context.Context, id string) error {
	err := s.bucket.DeleteContext(ctx, id)
	if err == nil || errors.Is(err, gridfs.ErrFileNotFound) {
		return nil
	}
	return mapError(err, "photo "+id)
}
