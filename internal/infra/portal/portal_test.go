// Where: internal/infra/portal/portal_test.go
// What: Tests for the Portal backend against a fake HTTP server.
// Why: Verify variant selection, document splicing, and the XML payload.
package portal

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/poruru-code/fieldsync/internal/domain/field"
	"github.com/poruru-code/fieldsync/internal/domain/option"
	"github.com/tidwall/gjson"
)

type fakePortal struct {
	field       string
	fieldStatus int
	values      string
	valueStatus int

	query   string
	user    string
	puts    map[string]string
	putType map[string]string
}

func (f *fakePortal) start(t *testing.T) *Backend {
	t.Helper()
	f.puts = map[string]string{}
	f.putType = map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.user, _, _ = r.BasicAuth()
		if r.Method == http.MethodPut {
			body, _ := io.ReadAll(r.Body)
			f.puts[r.URL.Path] = string(body)
			f.putType[r.URL.Path] = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusOK)
			return
		}
		status, body := f.fieldStatus, f.field
		if strings.HasSuffix(r.URL.Path, "/values") {
			status, body = f.valueStatus, f.values
		} else {
			f.query = r.URL.RawQuery
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	session, err := NewSession(srv.URL+"/API", 0, "", "secret")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return New(session)
}

const embeddedDocument = `{"name":"genre","data":[{"key":"label","value":"Genre"},` +
	`{"key":"extradata","value":"{\"type\":\"dropdown\",\"sortable\":false,\"values\":[{\"key\":\"jazz\",\"value\":\"Jazz\"}]}"},` +
	`{"key":"description","value":"Music genre"}],"origin":"VX"}`

func TestBaseURL(t *testing.T) {
	cases := []struct {
		address string
		port    int
		want    string
	}{
		{address: "portal.local", want: "http://portal.local:8080/API/"},
		{address: "10.0.0.5", port: 9000, want: "http://10.0.0.5:9000/API/"},
		{address: "portal.local:8081", want: "http://portal.local:8081/API/"},
		{address: "https://portal.example.com/API", want: "https://portal.example.com/API/"},
	}
	for _, tc := range cases {
		got, err := BaseURL(tc.address, tc.port)
		if err != nil {
			t.Fatalf("BaseURL(%q): %v", tc.address, err)
		}
		if got != tc.want {
			t.Fatalf("BaseURL(%q) = %q, want %q", tc.address, got, tc.want)
		}
	}
	if _, err := BaseURL(" ", 0); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestDescribeEmbeddedField(t *testing.T) {
	fake := &fakePortal{field: embeddedDocument}
	backend := fake.start(t)

	desc, err := backend.Describe(context.Background(), "genre")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if desc.Type != "dropdown" || desc.Variant != field.VariantEmbedded {
		t.Fatalf("unexpected descriptor: %#v", desc)
	}
	if len(desc.Options) != 1 || desc.Options[0].Label != "jazz" || desc.Options[0].Value != "Jazz" {
		t.Fatalf("unexpected options: %#v", desc.Options)
	}
	if fake.query != "data=all" {
		t.Fatalf("expected data=all query, got %q", fake.query)
	}
	if fake.user != DefaultUsername {
		t.Fatalf("expected default username, got %q", fake.user)
	}
}

func TestDescribeLookupField(t *testing.T) {
	fake := &fakePortal{field: `{"data":[{"key":"extradata","value":"{\"type\":\"lookup\"}"}]}`}
	backend := fake.start(t)

	desc, err := backend.Describe(context.Background(), "country")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if desc.Variant != field.VariantLookup || len(desc.Options) != 0 {
		t.Fatalf("unexpected descriptor: %#v", desc)
	}
}

func TestDescribeFieldNotFound(t *testing.T) {
	docs := []string{
		`not json`,
		`{"name":"genre"}`,
		`{"data":[{"key":"label","value":"Genre"}]}`,
		`{"data":[{"key":"extradata","value":"not json"}]}`,
		`{"data":[{"key":"extradata","value":"[1,2]"}]}`,
	}
	for _, doc := range docs {
		fake := &fakePortal{field: doc}
		backend := fake.start(t)
		if _, err := backend.Describe(context.Background(), "genre"); !errors.Is(err, field.ErrFieldNotFound) {
			t.Fatalf("document %s: expected ErrFieldNotFound, got %v", doc, err)
		}
	}
}

func TestEmbeddedEncodePreservesDocument(t *testing.T) {
	fake := &fakePortal{field: embeddedDocument}
	backend := fake.start(t)
	ctx := context.Background()

	desc, err := backend.Describe(ctx, "genre")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	adapter, err := backend.Adapter(desc.Variant)
	if err != nil {
		t.Fatalf("adapter: %v", err)
	}
	merged := option.Merge(option.Collection{{Label: "rock", Value: "Rock"}}, desc.Options)
	body, err := adapter.Encode(merged, desc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := adapter.Write(ctx, "genre", body); err != nil {
		t.Fatalf("write: %v", err)
	}

	sent := fake.puts["/API/metadata-field/genre"]
	if fake.putType["/API/metadata-field/genre"] != "application/json" {
		t.Fatalf("unexpected content type: %q", fake.putType["/API/metadata-field/genre"])
	}
	before := gjson.Parse(embeddedDocument)
	after := gjson.Parse(sent)
	if after.Get("name").Raw != before.Get("name").Raw || after.Get("origin").Raw != before.Get("origin").Raw {
		t.Fatalf("outer members changed: %s", sent)
	}
	for _, i := range []string{"0", "2"} {
		if after.Get("data."+i).Raw != before.Get("data."+i).Raw {
			t.Fatalf("entry %s changed: %s", i, after.Get("data."+i).Raw)
		}
	}
	inner := gjson.Parse(after.Get("data.1.value").String())
	if inner.Get("type").String() != "dropdown" || inner.Get("sortable").Raw != "false" {
		t.Fatalf("extradata members lost: %s", inner.Raw)
	}
	if got := inner.Get("values.#.key").Raw; got != `["jazz","rock"]` {
		t.Fatalf("unexpected values keys: %s", got)
	}
}

func TestLookupFetchVariants(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   int
	}{
		{name: "values", body: `{"field":[{"key":"se","value":"Sweden"},{"key":"no","value":"Norway"}]}`, want: 2},
		{name: "missing field", body: `{}`, want: 0},
		{name: "empty body", body: ``, want: 0},
		{name: "not found", status: http.StatusNotFound, body: `missing`, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakePortal{values: tc.body, valueStatus: tc.status}
			backend := fake.start(t)
			adapter, err := backend.Adapter(field.VariantLookup)
			if err != nil {
				t.Fatalf("adapter: %v", err)
			}
			desc, err := adapter.Fetch(context.Background(), field.Descriptor{Key: "country", Variant: field.VariantLookup})
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			if len(desc.Options) != tc.want {
				t.Fatalf("expected %d options, got %#v", tc.want, desc.Options)
			}
		})
	}
}

func TestLookupFetchPropagatesServerError(t *testing.T) {
	fake := &fakePortal{valueStatus: http.StatusInternalServerError, values: "boom"}
	backend := fake.start(t)
	adapter, _ := backend.Adapter(field.VariantLookup)
	_, err := adapter.Fetch(context.Background(), field.Descriptor{Key: "country"})
	if remote, ok := field.IsRemote(err); !ok || remote.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected remote 500, got %v", err)
	}
}

func TestLookupEncodeWritesXML(t *testing.T) {
	fake := &fakePortal{}
	backend := fake.start(t)
	adapter, _ := backend.Adapter(field.VariantLookup)

	merged := option.Collection{{Label: "at-t", Value: "AT&T"}, {Label: "se", Value: "Sweden"}}
	body, err := adapter.Encode(merged, field.Descriptor{Key: "country"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<SimpleMetadataDocument xmlns="http://xml.vidispine.com/schema/vidispine">` +
		`<field><key>at-t</key><value>AT&amp;T</value></field>` +
		`<field><key>se</key><value>Sweden</value></field>` +
		`</SimpleMetadataDocument>`
	if string(body.Payload) != want {
		t.Fatalf("unexpected xml:\n%s", body.Payload)
	}
	if err := adapter.Write(context.Background(), "country", body); err != nil {
		t.Fatalf("write: %v", err)
	}
	if fake.putType["/API/metadata-field/country/values"] != "application/xml" {
		t.Fatalf("expected xml put, got %v", fake.putType)
	}
}

func TestLookupEncodeEmpty(t *testing.T) {
	body, err := lookupAdapter{}.Encode(nil, field.Descriptor{})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := xmlDeclaration + `<SimpleMetadataDocument xmlns="http://xml.vidispine.com/schema/vidispine"></SimpleMetadataDocument>`
	if string(body.Payload) != want {
		t.Fatalf("unexpected xml: %s", body.Payload)
	}
}

func TestAdapterRejectsFlat(t *testing.T) {
	if _, err := New(nil).Adapter(field.VariantFlat); err == nil {
		t.Fatalf("expected error for flat variant")
	}
}
