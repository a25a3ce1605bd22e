package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/formkit/internal/checks"
	"github.com/mesh-intelligence/formkit/internal/tabledata"
	"github.com/mesh-intelligence/formkit/internal/validate"
	"github.com/mesh-intelligence/formkit/pkg/types"
)

func newValidateCmd(a *app) *cobra.Command {
	var formPath, recordID string
	cmd := &cobra.Command{
		Use:   "validate --form <file> [key=value...]",
		Short: "Validate form data against a form definition",
		Long: `Validate runs the checks of every field of a form definition against
form data. Values come from a saved record (--record) and from key=value
arguments, which override the record.

Example:
  formkit validate --form shift.yaml start=08:00 stop=07:30
  formkit validate --form shift.yaml --record 0192f1c2-...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readForm(cmd, formPath)
			if err != nil {
				return err
			}
			values, err := a.formValues(recordID, args)
			if err != nil {
				return err
			}

			v := validate.New(checks.NewFactory(), tabledata.NewJSONSerializer(), a.log)
			report, err := v.Validate(form, types.NewFormData(values))
			if err != nil {
				return err
			}

			if a.flags.jsonMode {
				if err := printJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				printReport(cmd.OutOrStdout(), report)
			}
			if failed := len(report.Failures()); failed > 0 {
				return fmt.Errorf("%d field(s) failed validation", failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&formPath, "form", "", "form definition file (YAML or JSON, - for stdin)")
	cmd.Flags().StringVar(&recordID, "record", "", "saved form record to validate")
	return cmd
}

// formValues merges a saved record's values with key=value arguments.
func (a *app) formValues(recordID string, args []string) (map[string]string, error) {
	overrides, err := parseAssignments(args)
	if err != nil {
		return nil, err
	}
	if recordID == "" {
		return overrides, nil
	}

	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer store.Detach()

	rec, err := store.Get(recordID)
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", recordID, err)
	}
	values := make(map[string]string, len(rec.Values)+len(overrides))
	for k, v := range rec.Values {
		values[k] = v
	}
	for k, v := range overrides {
		values[k] = v
	}
	return values, nil
}

func printReport(w io.Writer, report validate.Report) {
	for _, res := range report.Results {
		where := res.Key
		if res.Table != "" {
			where = fmt.Sprintf("%s (%s row %d)", res.Key, res.Table, res.Row)
		}
		if res.IsValid {
			fmt.Fprintf(w, "ok    %s\n", where)
			continue
		}
		fmt.Fprintf(w, "FAIL  %s: %s\n", where, res.Message)
	}
}
