package combo

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// CheckSchema validates a generically decoded YAML document against the
// embedded #Dataset definition. Definitions are closed, so unknown keys on a
// waza are rejected here as well.
func CheckSchema(doc any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile dataset schema: %w", err)
	}

	data := ctx.Encode(doc)
	if err := data.Err(); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	value := schema.LookupPath(cue.ParsePath("#Dataset")).Unify(data)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s", formatSchemaErrors(err))
	}
	return nil
}

// formatSchemaErrors flattens a CUE error list into one line per problem.
func formatSchemaErrors(err error) string {
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return err.Error()
	}
	msgs := make([]string, 0, len(list))
	for _, e := range list {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}
