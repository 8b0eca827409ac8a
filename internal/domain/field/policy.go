// Where: internal/domain/field/policy.go
// What: Field access policy.
// Why: Only fixed, known field types may be mutated.
package field

import (
	"fmt"
	"sort"
)

// AllowList is the set of field types a backend lets this tool mutate.
type AllowList map[string]struct{}

// NewAllowList builds an AllowList from the given types.
func NewAllowList(types ...string) AllowList {
	list := make(AllowList, len(types))
	for _, t := range types {
		list[t] = struct{}{}
	}
	return list
}

// IsWritable reports whether fieldType belongs to the allow-list.
func (a AllowList) IsWritable(fieldType string) bool {
	_, ok := a[fieldType]
	return ok
}

// Types returns the allowed types in sorted order.
func (a AllowList) Types() []string {
	out := make([]string, 0, len(a))
	for t := range a {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// CheckWritable returns ErrUnsupportedFieldType wrapped with context when
// desc's type is not in the allow-list.
func (a AllowList) CheckWritable(desc Descriptor) error {
	if a.IsWritable(desc.Type) {
		return nil
	}
	return fmt.Errorf("%w: field %q has type %q (allowed: %v)", ErrUnsupportedFieldType, desc.Key, desc.Type, a.Types())
}
