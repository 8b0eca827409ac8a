// Where: internal/domain/fieldport/backend.go
// What: Cross-layer backend and field adapter contracts.
// Why: Share one interface definition across command/usecase/infra without layer leaks.
package fieldport

import (
	"context"

	"github.com/poruru-code/fieldsync/internal/domain/field"
	"github.com/poruru-code/fieldsync/internal/domain/option"
)

// Backend is one media-asset-management API.
type Backend interface {
	// Name identifies the backend in output ("iconik", "portal").
	Name() string
	// AllowList returns the field types this backend lets us mutate.
	AllowList() field.AllowList
	// Describe performs the initial field fetch and selects the variant.
	// It returns field.ErrFieldNotFound when no usable document comes back.
	Describe(ctx context.Context, key string) (field.Descriptor, error)
	// Adapter returns the adapter for variant.
	Adapter(variant field.Variant) (FieldAdapter, error)
}

// FieldAdapter translates canonical options to and from one wire variant.
type FieldAdapter interface {
	// Fetch completes desc with the field's current options.
	Fetch(ctx context.Context, desc field.Descriptor) (field.Descriptor, error)
	// Encode renders the exact payload the write endpoint expects.
	Encode(merged option.Collection, original field.Descriptor) (field.WireBody, error)
	// Write performs the update call.
	Write(ctx context.Context, key string, body field.WireBody) error
}
