package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/formkit/internal/paths"
	"github.com/mesh-intelligence/formkit/internal/suggest"
	"github.com/mesh-intelligence/formkit/pkg/types"
)

func newSuggestCmd(a *app) *cobra.Command {
	var formPath, fieldKey string
	cmd := &cobra.Command{
		Use:   "suggest [connection] <prefix>",
		Short: "List suggestions for a prefix",
		Long: `Suggest prints the candidates of a data connection that start with the
given prefix, one per line. The connection is either given as the first
argument or taken from the dataconnection setting of --field in --form.

Connections:
  v:a|b|c                 literal values
  f:<path>                newline-delimited file (relative to suggest.base_dir)
  f:redis:<key>           Redis list, set or string (needs suggest.redis_addr)
  e:<url>|<field>,...     Elasticsearch phrase-prefix search

Example:
  formkit suggest 'v:anna|anton|bert' an
  formkit suggest --form shift.yaml --field station Ber`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			connection, prefix, err := suggestArgs(cmd, formPath, fieldKey, args)
			if err != nil {
				return err
			}

			proxy, cleanup, err := a.newSuggestProxy()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.GetDuration(cfgKeySuggestTimeout))
			defer cancel()

			candidates, err := proxy.For(ctx, prefix, connection)
			if errors.Is(err, types.ErrInvalidConnection) {
				return err
			}
			if err != nil {
				return sysErr("suggest: %w", err)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), candidates)
			}
			for _, c := range candidates {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&formPath, "form", "", "form definition to read the connection from")
	cmd.Flags().StringVar(&fieldKey, "field", "", "field whose dataconnection setting is used")
	return cmd
}

// suggestArgs returns the connection and prefix, either both from args or
// the connection from a field's settings.
func suggestArgs(cmd *cobra.Command, formPath, fieldKey string, args []string) (string, string, error) {
	if fieldKey == "" {
		if len(args) != 2 {
			return "", "", fmt.Errorf("expected <connection> <prefix> (or --form and --field)")
		}
		return args[0], args[1], nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("expected <prefix> when --field is set")
	}

	form, err := readForm(cmd, formPath)
	if err != nil {
		return "", "", err
	}
	field, ok := findField(form.Fields, fieldKey)
	if !ok {
		return "", "", fmt.Errorf("field %q not found in %s", fieldKey, formPath)
	}
	connection, ok := field.Setting(types.SettingDataConnection)
	if !ok || connection == "" {
		return "", "", fmt.Errorf("field %q has no %s setting", fieldKey, types.SettingDataConnection)
	}
	return connection, args[0], nil
}

// newSuggestProxy wires the list and elastic providers from config. The
// returned cleanup closes the Redis client when one was opened.
func (a *app) newSuggestProxy() (*suggest.Proxy, func(), error) {
	cleanup := func() {}

	loaders := []suggest.SourceLoader{}
	if addr := a.cfg.GetString(cfgKeyRedisAddr); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   a.cfg.GetInt(cfgKeyRedisDB),
		})
		rl, err := suggest.NewRedisLoader(client)
		if err != nil {
			client.Close()
			return nil, nil, sysErr("redis loader: %w", err)
		}
		loaders = append(loaders, rl)
		cleanup = func() {
			if err := client.Close(); err != nil {
				a.log.Warn("close redis client", "error", err)
			}
		}
	}
	baseDir := paths.ResolveSourceDir(a.cfg.GetString(cfgKeySourceDir), a.configDir)
	loaders = append(loaders, suggest.FileLoader{BaseDir: baseDir})

	list, err := suggest.NewListProvider(
		suggest.WithLoaders(loaders...),
		suggest.WithCacheSize(a.cfg.GetInt(cfgKeyCacheSize)),
		suggest.WithListLogger(a.log),
	)
	if err != nil {
		cleanup()
		return nil, nil, sysErr("list provider: %w", err)
	}

	rest := suggest.NewHTTPRestClient(
		suggest.WithTimeout(a.cfg.GetDuration(cfgKeyHTTPTimeout)),
		suggest.WithUserAgent(a.cfg.GetString(cfgKeyUserAgent)),
	)
	elastic, err := suggest.NewElasticProvider(rest, suggest.WithElasticLogger(a.log))
	if err != nil {
		cleanup()
		return nil, nil, sysErr("elastic provider: %w", err)
	}

	return suggest.NewProxy(list, elastic), cleanup, nil
}
