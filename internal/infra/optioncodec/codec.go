// Where: internal/infra/optioncodec/codec.go
// What: JSON option array codec shared by backend adapters.
// Why: Backends name the key attribute differently; records are canonical in between.
package optioncodec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/poruru-code/fieldsync/internal/domain/option"
	"github.com/tidwall/gjson"
)

var (
	// FlatNames are the attribute names of the simple API.
	FlatNames = option.AttrNames{Key: "label", Value: "value"}
	// KeyValueNames are the attribute names of the legacy API.
	KeyValueNames = option.AttrNames{Key: "key", Value: "value"}
)

// Decode reads a JSON array of option objects. A missing or null array is an
// empty collection. Attributes other than names.Key and names.Value are kept
// verbatim in Record.Extra.
func Decode(array gjson.Result, names option.AttrNames) (option.Collection, error) {
	if !array.Exists() || array.Type == gjson.Null {
		return option.Collection{}, nil
	}
	if !array.IsArray() {
		return nil, fmt.Errorf("options must be a JSON array, got %s", array.Type)
	}

	records := option.Collection{}
	var decodeErr error
	array.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			decodeErr = fmt.Errorf("option %d must be a JSON object, got %s", len(records), item.Type)
			return false
		}
		var record option.Record
		item.ForEach(func(name, value gjson.Result) bool {
			switch name.String() {
			case names.Key:
				record.Label, record.RawLabel = memberText(value)
			case names.Value:
				record.Value, record.RawValue = memberText(value)
			default:
				if record.Extra == nil {
					record.Extra = map[string]string{}
				}
				record.Extra[name.String()] = value.Raw
			}
			return true
		})
		records = append(records, record)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return records, nil
}

// memberText returns the text form of a key or value member, plus its raw
// JSON when the member is not a string.
func memberText(value gjson.Result) (string, string) {
	if value.Type == gjson.String {
		return value.String(), ""
	}
	return value.String(), value.Raw
}

// DecodeBytes decodes options found at path inside a JSON document.
func DecodeBytes(document []byte, path string, names option.AttrNames) (option.Collection, error) {
	return Decode(gjson.GetBytes(document, path), names)
}

// Encode renders records as a JSON array using names. Extra attributes
// follow in name order.
func Encode(records option.Collection, names option.AttrNames) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, record := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		writeMember(&buf, names.Key, memberJSON(record.Label, record.RawLabel))
		buf.WriteByte(',')
		writeMember(&buf, names.Value, memberJSON(record.Value, record.RawValue))
		extras := make([]string, 0, len(record.Extra))
		for name := range record.Extra {
			if name == names.Key || name == names.Value {
				continue
			}
			extras = append(extras, name)
		}
		sort.Strings(extras)
		for _, name := range extras {
			raw := record.Extra[name]
			if !gjson.Valid(raw) {
				return nil, fmt.Errorf("option %q: attribute %q is not valid JSON", record.Label, name)
			}
			buf.WriteByte(',')
			writeMember(&buf, name, []byte(raw))
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func memberJSON(text, raw string) []byte {
	if raw != "" {
		return []byte(raw)
	}
	return quote(text)
}

func writeMember(buf *bytes.Buffer, name string, value []byte) {
	buf.Write(quote(name))
	buf.WriteByte(':')
	buf.Write(value)
}

func quote(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})
}
