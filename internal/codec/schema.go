package codec

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// eventSchema constrains the encoded payload before records are
// materialized. The timestamp regex pins the four-digit year, two-digit
// month/day, time, millisecond fraction and UTC marker.
const eventSchema = `
#Event: {
	id:    int
	title: string
	desc:  string
	date:  string & =~"^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}\\.[0-9]{3}Z$"
}

#Events: [...#Event]
`

var (
	schemaOnce  sync.Once
	schemaCtx   *cue.Context
	schemaValue cue.Value
)

func compiledSchema() (*cue.Context, cue.Value) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		schemaValue = schemaCtx.CompileString(eventSchema).LookupPath(cue.ParsePath("#Events"))
	})
	return schemaCtx, schemaValue
}

// validateSchema unifies the JSON payload with the event list schema.
// JSON is a subset of CUE, so the payload compiles directly.
func validateSchema(data []byte) error {
	ctx, schema := compiledSchema()
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	payload := ctx.CompileBytes(data)
	if err := payload.Err(); err != nil {
		return fmt.Errorf("compile payload: %w", err)
	}

	unified := schema.Unify(payload)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return err
	}
	return nil
}
