package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/linkmap/internal/version"
	"github.com/arthur-debert/linkmap/pkg/logging"
)

// cliFlags holds the persistent flag values for one invocation.
type cliFlags struct {
	verbosity int
	dryRun    bool
	force     bool
	overwrite bool
	file      string
	output    string
	noColor   bool
}

// NewRootCmd creates and returns the root command. The bare command
// applies the manifest (link mode).
func NewRootCmd() *cobra.Command {
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:     "linkmap",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, flags, false)
		},
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVarP(&flags.force, "force", "F", false, MsgFlagForce)
	rootCmd.PersistentFlags().StringVarP(&flags.file, "file", "f", "", MsgFlagFile)
	rootCmd.PersistentFlags().StringVar(&flags.output, "output", "", MsgFlagOutput)
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, MsgFlagNoColor)

	// Overwrite only applies to link mode
	rootCmd.Flags().BoolVarP(&flags.overwrite, "overwrite", "o", false, MsgFlagOverwrite)

	rootCmd.AddCommand(newUnlinkCmd(flags))
	rootCmd.AddCommand(newEditCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newFormatCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.SetVersionTemplate(fmt.Sprintf("linkmap version %s\n", version.Version))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("linkmap version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
