// Package cmd implements the protocol-converter command line.
package cmd

import (
	"os"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/ardanlabs/protocol-converter/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type rootOptions struct {
	configFile string
	protocol   bool
	library    bool
	check      bool
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	log.SetHandler(clihandler.Default)

	if err := NewRootCmd().Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// NewRootCmd builds the command with its own viper instance, so every
// invocation starts from a clean configuration.
func NewRootCmd() *cobra.Command {
	var opts rootOptions
	v := config.New()

	cmd := &cobra.Command{
		Use:   "protocol-converter <header>",
		Short: "Generate a versioned crypto protocol and grouped library headers from a declaration header",
		Long: `Reads a header of EFIAPI declarations documented with @since and @ingroup
tags and generates:

  - a protocol header with one function pointer typedef per declaration and a
    protocol structure ordered by version and group
  - one <Group>ApiLib.h header per function group

Without --protocol or --library both are generated. Nothing is written unless
the whole header parses.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default is ./"+config.DefaultConfigName+".yaml)")
	cmd.Flags().BoolVar(&opts.protocol, "protocol", false, "generate the protocol header")
	cmd.Flags().BoolVar(&opts.library, "library", false, "generate the grouped library headers")
	cmd.Flags().BoolVar(&opts.check, "check", false, "verify the generated files are up to date instead of writing them")
	cmd.Flags().StringP("output", "o", "", "protocol header output path")
	cmd.Flags().String("library-dir", "", "directory for the grouped library headers")
	cmd.Flags().BoolP("debug", "d", false, "enable debug logging and the parsed function dump")
	cmd.Flags().String("dump", "", "path of the parsed function dump written in debug mode (.json, .yaml)")
	cmd.MarkFlagFilename("config", "yaml", "yml", "toml", "json")
	cmd.MarkFlagDirname("library-dir")

	bindFlag(v, cmd.Flags(), "protocol.output", "output")
	bindFlag(v, cmd.Flags(), "library.dir", "library-dir")
	bindFlag(v, cmd.Flags(), "debug", "debug")
	bindFlag(v, cmd.Flags(), "dump", "dump")

	cmd.CompletionOptions.HiddenDefaultCmd = true

	return cmd
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) {
	if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(err)
	}
}
