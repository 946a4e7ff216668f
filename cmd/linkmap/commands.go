package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/linkmap/pkg/config"
)

//go:embed format.md
var formatTopic string

func newConfigCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir := ""
			if manifestPath, _, err := resolveManifest(flags); err == nil {
				projectDir = filepath.Dir(manifestPath)
			}

			cfg, err := config.Load(config.LoadOptions{ProjectDir: projectDir})
			if err != nil {
				return err
			}
			out, err := cfg.DumpTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format",
		Short: MsgFormatShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(80),
			)
			if err != nil {
				// Fall back to the raw markdown when the terminal
				// renderer cannot be built.
				fmt.Fprint(cmd.OutOrStdout(), formatTopic)
				return nil
			}

			rendered, err := renderer.Render(formatTopic)
			if err != nil {
				fmt.Fprint(cmd.OutOrStdout(), formatTopic)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "LINKMAP",
				Section: "1",
			}
			return doc.GenManTree(cmd.Root(), header, outputDir)
		},
	}

	cmd.Flags().StringVar(&outputDir, "dir", "man", "Directory to write man pages to")
	return cmd
}
