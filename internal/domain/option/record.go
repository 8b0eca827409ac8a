// Where: internal/domain/option/record.go
// What: Canonical option record and collection types.
// Why: Give every backend variant one shape to merge and compare.
package option

import (
	"sort"
	"strconv"
	"strings"
)

// Canonical attribute names used for equality keys.
const (
	AttrLabel = "label"
	AttrValue = "value"
)

// Record is one allowed value of an enumerable field.
// Extra holds additional backend attributes as raw JSON text keyed by name;
// they are carried through merges and take part in equality.
//
// RawLabel and RawValue hold the JSON text of a key or value member that was
// not a JSON string. They are empty for string members and for records read
// from option files. Label and Value then carry the member's text form.
type Record struct {
	Label    string
	Value    string
	RawLabel string
	RawValue string
	Extra    map[string]string
}

// Collection is an ordered sequence of records.
type Collection []Record

// AttrNames names the key and value attributes a backend uses on the wire.
type AttrNames struct {
	Key   string
	Value string
}

// Attr is one (name, value) pair of a record's attribute set.
// Raw marks a value that is JSON text rather than a plain string.
type Attr struct {
	Name  string
	Value string
	Raw   bool
}

func member(name, text, raw string) Attr {
	if raw != "" {
		return Attr{Name: name, Value: raw, Raw: true}
	}
	return Attr{Name: name, Value: text}
}

// Attrs returns the record's full attribute set sorted by name.
func (r Record) Attrs() []Attr {
	attrs := make([]Attr, 0, 2+len(r.Extra))
	attrs = append(attrs, member(AttrLabel, r.Label, r.RawLabel), member(AttrValue, r.Value, r.RawValue))
	for name, value := range r.Extra {
		if name == AttrLabel || name == AttrValue {
			continue
		}
		attrs = append(attrs, Attr{Name: name, Value: value, Raw: true})
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Name < attrs[j].Name
	})
	return attrs
}

// Key returns the canonical equality key of the record. Two records are
// equal iff their keys are equal. Every part is quoted, so no label or value
// content can forge a separator.
func (r Record) Key() string {
	var b strings.Builder
	for _, attr := range r.Attrs() {
		b.WriteString(strconv.Quote(attr.Name))
		if attr.Raw {
			b.WriteByte('~')
		} else {
			b.WriteByte('=')
		}
		b.WriteString(strconv.Quote(attr.Value))
		b.WriteByte(';')
	}
	return b.String()
}

// Equal reports whether both records carry the same attribute set.
func (r Record) Equal(other Record) bool {
	return r.Key() == other.Key()
}

// Distinct returns the number of distinct records in c.
func (c Collection) Distinct() int {
	seen := make(map[string]struct{}, len(c))
	for _, record := range c {
		seen[record.Key()] = struct{}{}
	}
	return len(seen)
}

// Contains reports whether c holds a record equal to r.
func (c Collection) Contains(r Record) bool {
	key := r.Key()
	for _, record := range c {
		if record.Key() == key {
			return true
		}
	}
	return false
}
