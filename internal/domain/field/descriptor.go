// Where: internal/domain/field/descriptor.go
// What: Remote field descriptor and wire variants.
// Why: Model the three backend wire shapes as one tagged union.
package field

import (
	"fmt"

	"github.com/poruru-code/fieldsync/internal/domain/option"
)

// Variant identifies the wire format and endpoint shape of a field.
type Variant int

const (
	// VariantUnknown is the zero value and never selected by a backend.
	VariantUnknown Variant = iota
	// VariantFlat is the simple API: a flat JSON option array patched in place.
	VariantFlat
	// VariantEmbedded is the legacy API for non-lookup fields: options live in
	// a JSON string nested inside the field's key/value document.
	VariantEmbedded
	// VariantLookup is the legacy API for lookup fields: options live in a
	// separate values sub-resource written as XML.
	VariantLookup
)

func (v Variant) String() string {
	switch v {
	case VariantFlat:
		return "flat"
	case VariantEmbedded:
		return "embedded"
	case VariantLookup:
		return "lookup"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Descriptor is the remote metadata of one field as fetched in this run.
type Descriptor struct {
	Key     string
	Type    string
	Variant Variant
	Options option.Collection
	// Document is the raw field document for variants that write it back whole.
	Document []byte
}

// WithOptions returns a copy of d whose options are replaced by options.
func (d Descriptor) WithOptions(options option.Collection) Descriptor {
	d.Options = options
	return d
}

// WireBody is a serialized write payload.
type WireBody struct {
	ContentType string
	Payload     []byte
}
