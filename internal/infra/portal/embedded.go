// Where: internal/infra/portal/embedded.go
// What: Adapter for non-lookup Portal fields.
// Why: Options are a JSON string inside the field document and the whole
// document is written back.
package portal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/poruru-code/fieldsync/internal/domain/field"
	"github.com/poruru-code/fieldsync/internal/domain/option"
	"github.com/poruru-code/fieldsync/internal/infra/optioncodec"
	"github.com/poruru-code/fieldsync/internal/infra/transport"
	"github.com/tidwall/sjson"
)

type embeddedAdapter struct {
	session Session
}

// Fetch is a no-op: Describe already decoded the inline options.
func (a embeddedAdapter) Fetch(_ context.Context, desc field.Descriptor) (field.Descriptor, error) {
	return desc, nil
}

// Encode replaces "values" inside the extradata object and splices the
// re-encoded string back into the original document. All other bytes of the
// document are left untouched.
func (a embeddedAdapter) Encode(merged option.Collection, original field.Descriptor) (field.WireBody, error) {
	index, extradata, err := findExtradata(original.Document)
	if err != nil {
		return field.WireBody{}, fmt.Errorf("%w: field %q: %v", field.ErrFieldNotFound, original.Key, err)
	}
	values, err := optioncodec.Encode(merged, optioncodec.KeyValueNames)
	if err != nil {
		return field.WireBody{}, err
	}
	inner, err := sjson.SetRawBytes([]byte(extradata.Raw), "values", values)
	if err != nil {
		return field.WireBody{}, fmt.Errorf("encode %s: %w", extradataKey, err)
	}
	payload, err := sjson.SetBytes(original.Document, "data."+strconv.Itoa(index)+".value", string(inner))
	if err != nil {
		return field.WireBody{}, fmt.Errorf("encode field document: %w", err)
	}
	return field.WireBody{ContentType: transport.ContentTypeJSON, Payload: payload}, nil
}

func (a embeddedAdapter) Write(ctx context.Context, key string, body field.WireBody) error {
	if _, err := a.session.Put(ctx, fieldPath(key), body.ContentType, body.Payload); err != nil {
		return fmt.Errorf("update field %q: %w", key, err)
	}
	return nil
}
