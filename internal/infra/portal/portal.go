// Where: internal/infra/portal/portal.go
// What: Portal (Vidispine) metadata-field backend.
// Why: Select the embedded or lookup variant from the field document.
package portal

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/poruru-code/fieldsync/internal/domain/field"
	"github.com/poruru-code/fieldsync/internal/domain/fieldport"
	"github.com/poruru-code/fieldsync/internal/infra/optioncodec"
	"github.com/poruru-code/fieldsync/internal/infra/transport"
	"github.com/tidwall/gjson"
)

const (
	// DefaultPort is the Vidispine API port Portal listens on.
	DefaultPort = 8080
	// DefaultUsername is used when no username is configured.
	DefaultUsername = "admin"
	// LookupType is the field type whose options live in a values sub-resource.
	LookupType = "lookup"

	extradataKey = "extradata"
	apiPath      = "/API/"
)

// AllowedTypes are the field types this backend may mutate.
var AllowedTypes = []string{"dropdown", "checkbox", "radio", "workstep", LookupType}

// Session is the transport surface the backend needs.
type Session interface {
	Get(ctx context.Context, path string, query url.Values) (transport.Response, error)
	Put(ctx context.Context, path, contentType string, body []byte) (transport.Response, error)
}

// Backend talks to the Portal metadata-field API.
type Backend struct {
	session Session
}

// BaseURL expands a bare host into the Portal API root. Addresses that
// already carry a scheme are used as given.
func BaseURL(address string, port int) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("portal address is required")
	}
	if strings.Contains(address, "://") {
		return strings.TrimRight(address, "/") + "/", nil
	}
	host := strings.TrimRight(address, "/")
	if _, _, err := net.SplitHostPort(host); err != nil {
		if port <= 0 {
			port = DefaultPort
		}
		host = net.JoinHostPort(host, strconv.Itoa(port))
	}
	return "http://" + host + apiPath, nil
}

// NewSession builds a basic-auth session against the Portal API root.
func NewSession(address string, port int, username, password string, opts ...transport.Option) (*transport.Session, error) {
	base, err := BaseURL(address, port)
	if err != nil {
		return nil, err
	}
	if username == "" {
		username = DefaultUsername
	}
	return transport.NewSession(base, transport.BasicAuth{Username: username, Password: password}, opts...)
}

// New returns a Backend using session.
func New(session Session) *Backend {
	return &Backend{session: session}
}

func (b *Backend) Name() string { return "portal" }

func (b *Backend) AllowList() field.AllowList {
	return field.NewAllowList(AllowedTypes...)
}

// Describe fetches the full field document and reads its extradata entry.
// Lookup fields get their options from Fetch; every other type carries them
// inline.
func (b *Backend) Describe(ctx context.Context, key string) (field.Descriptor, error) {
	resp, err := b.session.Get(ctx, fieldPath(key), url.Values{"data": {"all"}})
	if err != nil {
		return field.Descriptor{}, fmt.Errorf("fetch field %q: %w", key, err)
	}
	_, extradata, err := findExtradata(resp.Body)
	if err != nil {
		return field.Descriptor{}, fmt.Errorf("%w: field %q: %v", field.ErrFieldNotFound, key, err)
	}

	fieldType := extradata.Get("type").String()
	desc := field.Descriptor{
		Key:      key,
		Type:     fieldType,
		Variant:  field.VariantEmbedded,
		Document: resp.Body,
	}
	if fieldType == LookupType {
		desc.Variant = field.VariantLookup
		return desc, nil
	}
	desc.Options, err = optioncodec.Decode(extradata.Get("values"), optioncodec.KeyValueNames)
	if err != nil {
		return field.Descriptor{}, fmt.Errorf("%w: field %q: %v", field.ErrFieldNotFound, key, err)
	}
	return desc, nil
}

func (b *Backend) Adapter(variant field.Variant) (fieldport.FieldAdapter, error) {
	switch variant {
	case field.VariantEmbedded:
		return embeddedAdapter{session: b.session}, nil
	case field.VariantLookup:
		return lookupAdapter{session: b.session}, nil
	default:
		return nil, fmt.Errorf("portal does not support %s fields", variant)
	}
}

// findExtradata returns the index of the extradata entry in the document's
// data array and its decoded string value.
func findExtradata(document []byte) (int, gjson.Result, error) {
	if !gjson.ValidBytes(document) {
		return 0, gjson.Result{}, fmt.Errorf("response is not JSON")
	}
	data := gjson.GetBytes(document, "data")
	if !data.IsArray() {
		return 0, gjson.Result{}, fmt.Errorf("document has no data array")
	}

	index := -1
	var raw gjson.Result
	i := 0
	data.ForEach(func(_, entry gjson.Result) bool {
		if entry.Get("key").String() == extradataKey {
			index = i
			raw = entry.Get("value")
			return false
		}
		i++
		return true
	})
	if index < 0 {
		return 0, gjson.Result{}, fmt.Errorf("document has no %s entry", extradataKey)
	}
	if raw.Type != gjson.String || !gjson.Valid(raw.Str) {
		return 0, gjson.Result{}, fmt.Errorf("%s is not a JSON string", extradataKey)
	}
	inner := gjson.Parse(raw.Str)
	if !inner.IsObject() {
		return 0, gjson.Result{}, fmt.Errorf("%s is not a JSON object", extradataKey)
	}
	return index, inner, nil
}

func fieldPath(key string) string {
	return "metadata-field/" + url.PathEscape(key)
}

func valuesPath(key string) string {
	return fieldPath(key) + "/values"
}
