// Where: internal/infra/portal/lookup.go
// What: Adapter for Portal lookup fields.
// Why: Lookup options live in a values sub-resource that only accepts XML writes.
package portal

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/poruru-code/fieldsync/internal/domain/field"
	"github.com/poruru-code/fieldsync/internal/domain/option"
	"github.com/poruru-code/fieldsync/internal/infra/optioncodec"
	"github.com/poruru-code/fieldsync/internal/infra/transport"
	"github.com/tidwall/gjson"
)

const (
	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
)

type simpleMetadataDocument struct {
	XMLName xml.Name      `xml:"http://xml.vidispine.com/schema/vidispine SimpleMetadataDocument"`
	Fields  []simpleField `xml:"field"`
}

type simpleField struct {
	Key   string `xml:"key"`
	Value string `xml:"value"`
}

type lookupAdapter struct {
	session Session
}

// Fetch loads the values sub-resource. A 404 or an unusable body means the
// lookup has no values yet.
func (a lookupAdapter) Fetch(ctx context.Context, desc field.Descriptor) (field.Descriptor, error) {
	resp, err := a.session.Get(ctx, valuesPath(desc.Key), nil)
	if err != nil {
		if remote, ok := field.IsRemote(err); ok && remote.StatusCode == http.StatusNotFound {
			return desc.WithOptions(option.Collection{}), nil
		}
		return field.Descriptor{}, fmt.Errorf("fetch lookup values %q: %w", desc.Key, err)
	}
	return desc.WithOptions(decodeLookupValues(resp.Body)), nil
}

func decodeLookupValues(body []byte) option.Collection {
	if !gjson.ValidBytes(body) {
		return option.Collection{}
	}
	options, err := optioncodec.Decode(gjson.GetBytes(body, "field"), optioncodec.KeyValueNames)
	if err != nil {
		return option.Collection{}
	}
	return options
}

// Encode renders a SimpleMetadataDocument. Extra attributes have no place in
// the document and are dropped.
func (a lookupAdapter) Encode(merged option.Collection, _ field.Descriptor) (field.WireBody, error) {
	doc := simpleMetadataDocument{Fields: make([]simpleField, 0, len(merged))}
	for _, record := range merged {
		doc.Fields = append(doc.Fields, simpleField{Key: record.Label, Value: record.Value})
	}
	body, err := xml.Marshal(doc)
	if err != nil {
		return field.WireBody{}, fmt.Errorf("encode lookup values: %w", err)
	}
	payload := append([]byte(xmlDeclaration), body...)
	return field.WireBody{ContentType: transport.ContentTypeXML, Payload: payload}, nil
}

func (a lookupAdapter) Write(ctx context.Context, key string, body field.WireBody) error {
	if _, err := a.session.Put(ctx, valuesPath(key), body.ContentType, body.Payload); err != nil {
		return fmt.Errorf("update lookup values %q: %w", key, err)
	}
	return nil
}
