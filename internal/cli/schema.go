package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// schemaTargets maps the schema command's argument to the reflected type.
var schemaTargets = map[string]any{
	"form":   &types.FormDefinition{},
	"field":  &types.FieldDefinition{},
	"record": &types.FormRecord{},
	"result": &types.ValidationResult{},
}

func newSchemaCmd(_ *app) *cobra.Command {
	names := make([]string, 0, len(schemaTargets))
	for n := range schemaTargets {
		names = append(names, n)
	}
	sort.Strings(names)

	return &cobra.Command{
		Use:       "schema [" + strings.Join(names, "|") + "]",
		Short:     "Print the JSON schema of a form document",
		Long:      "Schema prints the JSON schema of form definitions (default), field\ndefinitions, saved records or validation results.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "form"
			if len(args) == 1 {
				target = args[0]
			}
			v, ok := schemaTargets[target]
			if !ok {
				return fmt.Errorf("unknown schema %q (one of %s)", target, strings.Join(names, ", "))
			}
			return printJSON(cmd.OutOrStdout(), reflectSchema(v))
		},
	}
}

// reflectSchema builds the schema of v. FieldDefinition nests itself, so
// the types stay in $defs and are referenced.
func reflectSchema(v any) *jsonschema.Schema {
	r := &jsonschema.Reflector{}
	return r.Reflect(v)
}
