// Package specfile parses the declarative stack spec: a JSON document
// naming an optional explicit commit order plus a list of group
// definitions.
//
// The document is vetted against an embedded CUE schema before it is
// decoded, so malformed JSON, a non-array groups/order, non-string
// elements, empty member lists and missing names are all rejected with
// field-level errors before any mutation is attempted. Identifiers
// inside the document are opaque here; callers resolve them through
// the identifier resolver before use.
package specfile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed schema.cue
var schemaCUE string

// Spec is the decoded declarative stack spec.
type Spec struct {
	// Order optionally lists every unit identifier in its desired new
	// stack position, oldest first. Empty means keep the current order.
	Order []string `json:"order,omitempty"`

	// Groups defines the named groups the stack should end up with.
	Groups []GroupDef `json:"groups"`
}

// GroupDef names one group and its member identifiers, oldest first.
type GroupDef struct {
	Commits []string `json:"commits"`
	Name    string   `json:"name"`
}

// SpecError is one field-level problem found while vetting a document.
type SpecError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e SpecError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SpecErrors collects every problem found in one document.
type SpecErrors []SpecError

// Error implements the error interface.
func (es SpecErrors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return "invalid stack spec: " + strings.Join(msgs, "; ")
}

// Parse vets data against the spec schema and decodes it. All schema
// violations are collected and returned together as SpecErrors; the
// returned *Spec is non-nil only when the document is fully valid.
func Parse(data []byte) (*Spec, error) {
	cuectx := cuecontext.New()

	schema := cuectx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile spec schema: %w", err)
	}
	specSchema := schema.LookupPath(cue.ParsePath("#Spec"))
	if err := specSchema.Err(); err != nil {
		return nil, fmt.Errorf("lookup spec schema: %w", err)
	}

	expr, err := cuejson.Extract("spec.json", data)
	if err != nil {
		return nil, SpecErrors{{Field: "json", Message: err.Error()}}
	}

	doc := cuectx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return nil, SpecErrors{{Field: "json", Message: err.Error()}}
	}

	unified := specSchema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return nil, toSpecErrors(err)
	}

	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, SpecErrors{{Field: "json", Message: err.Error()}}
	}
	return &spec, nil
}

// toSpecErrors converts CUE validation errors into field-level
// SpecErrors, one entry per underlying error.
func toSpecErrors(err error) SpecErrors {
	var errs SpecErrors
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		format, args := e.Msg()
		errs = append(errs, SpecError{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(errs) == 0 {
		errs = append(errs, SpecError{Message: err.Error()})
	}
	return errs
}
