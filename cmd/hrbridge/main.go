// Package main is the hrbridge CLI.
//
// hrbridge suggests field mappings between HR systems, previews
// transformations and compiles mappings into integration artifacts:
//
//	hrbridge suggest --source senior --destination workday
//	hrbridge compile --request request.yaml --out ./build
//	hrbridge preview "123.456.789-00" --spec '{"type":"format_document","pattern":"cpf"}'
//	hrbridge serve
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"hrbridge/internal/config"
	"hrbridge/internal/logging"
)

var (
	v   = config.New()
	cfg *config.Config
	log *zap.Logger
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hrbridge",
		Short:         "Map, preview and compile HR data integrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error

			cfg, err = config.Load(v, v.GetString("config"))
			if err != nil {
				return err
			}

			log, err = logging.New(cfg.Log.Level, cfg.Log.Development)

			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	addPersistentFlags(root, v)

	root.AddCommand(suggestCmd(), compileCmd(), previewCmd(), serveCmd())

	return root
}

func addPersistentFlags(root *cobra.Command, v *viper.Viper) {
	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (YAML, JSON or TOML)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("patterns", "", "pattern catalog file")
	flags.Bool("json", false, "output JSON")

	_ = v.BindPFlag("config", flags.Lookup("config"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("patterns.path", flags.Lookup("patterns"))
	_ = v.BindPFlag("json", flags.Lookup("json"))
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
