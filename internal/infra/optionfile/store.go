// Where: internal/infra/optionfile/store.go
// What: Read/write option files from local disk or S3.
// Why: Keep the sync workflow unaware of where option lists are stored.
package optionfile

import (
	"context"
	"fmt"

	"github.com/poruru-code/fieldsync/internal/domain/field"
	"github.com/poruru-code/fieldsync/internal/domain/option"
	"github.com/poruru-code/fieldsync/internal/infra/fileops"
)

const csvContentType = "text/csv; charset=utf-8"

// ObjectStore is the subset of S3 used for option files.
type ObjectStore interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// ObjectStoreFactory builds an ObjectStore on first use.
type ObjectStoreFactory func(ctx context.Context) (ObjectStore, error)

// Store reads and writes option files.
type Store struct {
	Objects ObjectStoreFactory
}

// NewStore returns a Store backed by the AWS S3 client for s3:// locations.
func NewStore() Store {
	return Store{Objects: NewS3ObjectStore}
}

// Read parses the option file at raw.
func (s Store) Read(ctx context.Context, raw string) (option.Collection, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", field.ErrParseFailure, err)
	}
	if !loc.IsS3() {
		return ReadFile(loc.Raw)
	}
	objects, err := s.objects(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := objects.GetObject(ctx, loc.Bucket, loc.Key)
	if err != nil {
		return nil, err
	}
	return ParseBytes(payload)
}

// Write renders records as CSV to raw.
func (s Store) Write(ctx context.Context, raw string, records option.Collection) error {
	loc, err := ParseLocation(raw)
	if err != nil {
		return err
	}
	payload, err := Render(records)
	if err != nil {
		return err
	}
	if !loc.IsS3() {
		if err := fileops.WriteFile(loc.Raw, payload); err != nil {
			return fmt.Errorf("write %s: %w", loc.Raw, err)
		}
		return nil
	}
	objects, err := s.objects(ctx)
	if err != nil {
		return err
	}
	if err := objects.PutObject(ctx, loc.Bucket, loc.Key, payload, csvContentType); err != nil {
		return fmt.Errorf("upload %s: %w", loc.Raw, err)
	}
	return nil
}

func (s Store) objects(ctx context.Context) (ObjectStore, error) {
	if s.Objects == nil {
		return nil, fmt.Errorf("s3 locations are not configured")
	}
	return s.Objects(ctx)
}
