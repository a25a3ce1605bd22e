package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

func newDataCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage saved form records",
	}
	cmd.AddCommand(newDataSetCmd(a))
	cmd.AddCommand(newDataGetCmd(a))
	cmd.AddCommand(newDataListCmd(a))
	cmd.AddCommand(newDataDeleteCmd(a))
	return cmd
}

func newDataSetCmd(a *app) *cobra.Command {
	var id, name string
	cmd := &cobra.Command{
		Use:   "set [key=value...]",
		Short: "Create or update a form record",
		Long: `Set saves a form record. Without --id a new record is created and its
ID printed. With --id the record's values are replaced.

Example:
  formkit data set --name shift start=08:00 stop=16:30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(args)
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			rec := &types.FormRecord{Name: name, Values: values}
			if id != "" && name == "" {
				if existing, err := store.Get(id); err == nil {
					rec.Name = existing.Name
				}
			}
			newID, err := store.Set(id, rec)
			if err != nil {
				return sysErr("save record: %w", err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), newID)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record ID to update")
	cmd.Flags().StringVar(&name, "name", "", "record name")
	return cmd
}

func newDataGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a form record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			rec, err := store.Get(args[0])
			if errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("record %s: %w", args[0], err)
			}
			if err != nil {
				return sysErr("get record: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
}

func newDataListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [key=value...]",
		Short: "List form records, newest first",
		Long: `List prints the records matching every filter. The "name" key matches
the record name; any other key matches a field value.

Example:
  formkit data list name=shift start=08:00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseAssignments(args)
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			recs, err := store.Fetch(filter)
			if err != nil {
				return sysErr("list records: %w", err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), recs)
			}
			printRecords(cmd.OutOrStdout(), recs)
			return nil
		},
	}
}

func newDataDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a form record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			err = store.Delete(args[0])
			if errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("record %s: %w", args[0], err)
			}
			if err != nil {
				return sysErr("delete record: %w", err)
			}
			a.log.Info("record deleted", "form_id", args[0])
			return nil
		},
	}
}

func printRecords(w io.Writer, recs []*types.FormRecord) {
	for _, rec := range recs {
		keys := make([]string, 0, len(rec.Values))
		for k := range rec.Values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(w, "%s  %-16s  %s  %d values\n", rec.FormID, rec.Name, rec.UpdatedAt.Format("2006-01-02 15:04"), len(keys))
		for _, k := range keys {
			fmt.Fprintf(w, "    %s=%s\n", k, rec.Values[k])
		}
	}
}
