package planner

import (
	"github.com/invopop/jsonschema"
	"github.com/myrjola/fitplan/internal/workout"
)

// planSchema is the structured output schema of workout.Plan. Fields tagged omitempty are optional.
func planSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{ //nolint:exhaustruct // defaults are fine.
		Anonymous:                 true,
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(workout.Plan{}) //nolint:exhaustruct // only the type matters.
	schema.Version = ""
	return schema
}
