package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/formkit/internal/behavior"
	"github.com/mesh-intelligence/formkit/pkg/types"
)

func newBehaviorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "behaviors",
		Short: "List registered field behaviors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := a.extender()
			if err != nil {
				return err
			}
			names := make([]string, 0)
			for _, r := range ext.Behaviors() {
				names = append(names, r.Name)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), names)
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
	cmd.AddCommand(newBehaviorsApplyCmd(a))
	return cmd
}

func newBehaviorsApplyCmd(a *app) *cobra.Command {
	var formPath, fieldKey string
	cmd := &cobra.Command{
		Use:   "apply --form <file> --field <key> [key=value...]",
		Short: "Apply a field's behaviors to form data",
		Long: `Apply runs the behaviors declared on a field against the given values
and prints the resulting form data as JSON.

Example:
  formkit behaviors apply --form shift.yaml --field name 'name=  Anna '`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readForm(cmd, formPath)
			if err != nil {
				return err
			}
			field, ok := findField(form.Fields, fieldKey)
			if !ok {
				return fmt.Errorf("field %q not found in %s", fieldKey, formPath)
			}
			values, err := parseAssignments(args)
			if err != nil {
				return err
			}

			ext, err := a.extender()
			if err != nil {
				return err
			}
			data := types.NewFormData(values)
			if err := ext.Apply(field, data); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}
	cmd.Flags().StringVar(&formPath, "form", "", "form definition file (YAML or JSON, - for stdin)")
	cmd.Flags().StringVar(&fieldKey, "field", "", "field whose behaviors are applied")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}

// extender returns the command's behavior registry, created on first use
// with the behaviors the CLI ships.
func (a *app) extender() (*behavior.Extender, error) {
	if a.behaviors != nil {
		return a.behaviors, nil
	}
	ext := behavior.NewExtender(behavior.WithLogger(a.log))
	if err := ext.Register(behavior.BehaviorTrim, behavior.NewTrim); err != nil {
		return nil, sysErr("register behavior: %w", err)
	}
	a.behaviors = ext
	return ext, nil
}
