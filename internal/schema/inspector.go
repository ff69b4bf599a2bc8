package schema

import (
	"fmt"
	"strings"
)

// InvalidFieldError reports a field path that does not resolve on a schema.
// Suggestions are sibling field names ranked by edit distance.
type InvalidFieldError struct {
	Path        string   // the full dotted path as requested
	Segment     string   // the segment that failed to resolve
	Schema      string   // qualified name of the schema the segment was looked up on
	NotRelation bool     // segment exists but cannot be traversed
	Suggestions []string // ranked similar field names, may be empty
}

// Error implements the error interface
func (e *InvalidFieldError) Error() string {
	var b strings.Builder
	switch {
	case e.NotRelation:
		fmt.Fprintf(&b, "field %q: segment %q on %s is not a relation and cannot be traversed", e.Path, e.Segment, e.Schema)
	case e.Segment != e.Path:
		fmt.Fprintf(&b, "field %q (segment %q) does not exist on %s", e.Path, e.Segment, e.Schema)
	default:
		fmt.Fprintf(&b, "field %q does not exist on %s", e.Path, e.Schema)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

// AllFields enumerates every declared field in declaration order
func AllFields(s Schema) []FieldSpec {
	return s.Fields()
}

// SafeFields computes the default field set: all declared fields minus
// identity, system, and auto-managed fields, in declaration order.
func SafeFields(s Schema) []string {
	var names []string
	for _, f := range s.Fields() {
		if f.Editable() {
			names = append(names, f.Name)
		}
	}
	return names
}

// Resolve resolves a single field name or a dotted relation path ("a.b.c")
// against a schema. Every segment must exist; every non-terminal segment must
// be a relation kind with a known target schema.
func Resolve(s Schema, path string) (FieldSpec, error) {
	segments := strings.Split(path, ".")
	current := s

	for i, segment := range segments {
		field, ok := current.Field(segment)
		if !ok {
			return FieldSpec{}, &InvalidFieldError{
				Path:        path,
				Segment:     segment,
				Schema:      current.Qualified(),
				Suggestions: suggestFields(segment, current),
			}
		}

		if i == len(segments)-1 {
			return field, nil
		}

		// Non-terminal segments must traverse a relation
		if !field.IsRelation() || field.Related == nil {
			return FieldSpec{}, &InvalidFieldError{
				Path:        path,
				Segment:     segment,
				Schema:      current.Qualified(),
				NotRelation: true,
			}
		}
		current = field.Related
	}

	// Unreachable: Split always yields at least one segment
	return FieldSpec{}, &InvalidFieldError{Path: path, Segment: path, Schema: s.Qualified()}
}

// suggestFields ranks sibling field names by similarity to the failed segment
func suggestFields(segment string, s Schema) []string {
	candidates := make([]string, 0, len(s.Fields()))
	for _, f := range s.Fields() {
		candidates = append(candidates, f.Name)
	}
	return FindSimilar(segment, candidates)
}
