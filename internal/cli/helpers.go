package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/formkit/internal/sqlite"
	"github.com/mesh-intelligence/formkit/pkg/types"
)

// parseAssignments turns "key=value" arguments into a map. The value may be
// empty and may contain "=".
func parseAssignments(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", arg)
		}
		values[key] = value
	}
	return values, nil
}

// readForm loads a form definition from a YAML or JSON file. "-" reads
// JSON or YAML from the command's input.
func readForm(cmd *cobra.Command, path string) (types.FormDefinition, error) {
	var form types.FormDefinition
	if path == "" {
		return form, fmt.Errorf("no form definition given (use --form)")
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return form, fmt.Errorf("read form: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &form)
	default:
		// YAML is a superset of JSON, so this also reads JSON from stdin.
		err = yaml.Unmarshal(data, &form)
	}
	if err != nil {
		return form, fmt.Errorf("parse form %s: %w", path, err)
	}
	return form, nil
}

// findField returns the field with key, searching datatable columns too.
func findField(fields []types.FieldDefinition, key string) (types.FieldDefinition, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f, true
		}
		if found, ok := findField(f.Fields, key); ok {
			return found, true
		}
	}
	return types.FieldDefinition{}, false
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// openStore resolves the data directory and attaches a form store. The
// caller must Detach it.
func (a *app) openStore() (*sqlite.Store, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return nil, sysErr("resolve data dir: %w", err)
	}
	store := sqlite.NewStore(sqlite.WithLogger(a.log))
	cfg := types.Config{Backend: a.cfg.GetString(cfgKeyBackend), DataDir: dataDir}
	if err := store.Attach(cfg); err != nil {
		return nil, sysErr("attach store: %w", err)
	}
	return store, nil
}
