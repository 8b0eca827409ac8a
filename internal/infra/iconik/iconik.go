// Where: internal/infra/iconik/iconik.go
// What: iconik metadata API backend (flat option variant).
// Why: Fetch and patch drop-down field options through the simple REST API.
package iconik

import (
	"context"
	"fmt"
	"net/url"

	"github.com/poruru-code/fieldsync/internal/domain/field"
	"github.com/poruru-code/fieldsync/internal/domain/fieldport"
	"github.com/poruru-code/fieldsync/internal/domain/option"
	"github.com/poruru-code/fieldsync/internal/infra/optioncodec"
	"github.com/poruru-code/fieldsync/internal/infra/transport"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	// DefaultAddress is the hosted iconik endpoint.
	DefaultAddress = "https://app.iconik.io"

	headerAppID     = "App-ID"
	headerAuthToken = "Auth-Token"
)

// AllowedTypes are the field types this backend may mutate.
var AllowedTypes = []string{"drop_down"}

// Session is the transport surface the backend needs.
type Session interface {
	Get(ctx context.Context, path string, query url.Values) (transport.Response, error)
	Patch(ctx context.Context, path, contentType string, body []byte) (transport.Response, error)
}

// Backend talks to the iconik metadata API.
type Backend struct {
	session Session
}

// NewSession builds an authenticated iconik session.
func NewSession(address, appID, authToken string, opts ...transport.Option) (*transport.Session, error) {
	if address == "" {
		address = DefaultAddress
	}
	auth := transport.HeaderAuth{headerAppID: appID, headerAuthToken: authToken}
	return transport.NewSession(address, auth, opts...)
}

// New returns a Backend using session.
func New(session Session) *Backend {
	return &Backend{session: session}
}

func (b *Backend) Name() string { return "iconik" }

func (b *Backend) AllowList() field.AllowList {
	return field.NewAllowList(AllowedTypes...)
}

// Describe fetches the field document; options are embedded in it.
func (b *Backend) Describe(ctx context.Context, key string) (field.Descriptor, error) {
	resp, err := b.session.Get(ctx, fieldPath(key), nil)
	if err != nil {
		return field.Descriptor{}, fmt.Errorf("fetch field %q: %w", key, err)
	}
	doc := gjson.ParseBytes(resp.Body)
	if !gjson.ValidBytes(resp.Body) || !doc.IsObject() {
		return field.Descriptor{}, fmt.Errorf("%w: %q returned no field document", field.ErrFieldNotFound, key)
	}
	options, err := optioncodec.Decode(doc.Get("options"), optioncodec.FlatNames)
	if err != nil {
		return field.Descriptor{}, fmt.Errorf("%w: field %q: %v", field.ErrFieldNotFound, key, err)
	}
	return field.Descriptor{
		Key:      key,
		Type:     doc.Get("field_type").String(),
		Variant:  field.VariantFlat,
		Options:  options,
		Document: resp.Body,
	}, nil
}

func (b *Backend) Adapter(variant field.Variant) (fieldport.FieldAdapter, error) {
	if variant != field.VariantFlat {
		return nil, fmt.Errorf("iconik does not support %s fields", variant)
	}
	return flatAdapter{session: b.session}, nil
}

type flatAdapter struct {
	session Session
}

func (a flatAdapter) Fetch(_ context.Context, desc field.Descriptor) (field.Descriptor, error) {
	return desc, nil
}

// Encode renders the partial update {"options": [...]}.
func (a flatAdapter) Encode(merged option.Collection, _ field.Descriptor) (field.WireBody, error) {
	options, err := optioncodec.Encode(merged, optioncodec.FlatNames)
	if err != nil {
		return field.WireBody{}, err
	}
	payload, err := sjson.SetRawBytes([]byte(`{}`), "options", options)
	if err != nil {
		return field.WireBody{}, fmt.Errorf("encode options: %w", err)
	}
	return field.WireBody{ContentType: transport.ContentTypeJSON, Payload: payload}, nil
}

func (a flatAdapter) Write(ctx context.Context, key string, body field.WireBody) error {
	if _, err := a.session.Patch(ctx, fieldPath(key), body.ContentType, body.Payload); err != nil {
		return fmt.Errorf("update field %q: %w", key, err)
	}
	return nil
}

func fieldPath(key string) string {
	return "/API/metadata/v1/fields/" + url.PathEscape(key) + "/"
}
