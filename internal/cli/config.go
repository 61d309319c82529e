package cli

import (
	"fmt"
	"strings"

	"github.com/initt-labs/initt/internal/config"
	"github.com/initt-labs/initt/internal/errs"
	"github.com/spf13/cobra"
)

func newConfigCmd(s streams) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Manage user settings",
		Long: `Read and write initt configuration stored at ~/.initt/config.yaml.

Keys: ` + strings.Join(config.Keys, ", ") + `.
Every key can also be set through the environment, e.g. INITT_TEMPLATES_DIR.`,
	}

	c.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := checkKey(key); err != nil {
				return err
			}
			if err := config.Set(key, value); err != nil {
				return errs.Wrap(errs.KindFilesystem, "config", config.FilePath(), fmt.Errorf("setting config key %q: %w", key, err))
			}
			fmt.Fprintf(s.out, "Set %s = %s\n", key, value)
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(s.out, config.Get(args[0]))
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show every configuration value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range config.Keys {
				fmt.Fprintf(s.out, "%s = %s\n", key, config.Get(key))
			}
			return nil
		},
	})

	return c
}

func checkKey(key string) error {
	if !config.IsKey(key) {
		return errs.New(errs.KindValidation, "config", "unknown key %q (known: %s)", key, strings.Join(config.Keys, ", "))
	}
	return nil
}
