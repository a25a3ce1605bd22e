package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/formkit/pkg/formkit"
)

const modulePath = "github.com/mesh-intelligence/formkit"

type versionInfo struct {
	Version string `json:"version"`
	Module  string `json:"module"`
	Go      string `json:"go"`
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the formkit version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{Version: formkit.Version, Module: modulePath, Go: runtime.Version()}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "formkit v%s\nmodule: %s\ngo:     %s\n", info.Version, info.Module, info.Go)
			return nil
		},
	}
}
