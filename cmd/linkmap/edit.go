package main

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/linkmap/pkg/errors"
	"github.com/arthur-debert/linkmap/pkg/logging"
)

func newEditCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: MsgEditShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath, cfg, err := resolveManifest(flags)
			if err != nil {
				return err
			}

			editor := cfg.Editor
			if editor == "" {
				editor = os.Getenv("VISUAL")
			}
			if editor == "" {
				editor = os.Getenv("EDITOR")
			}
			if editor == "" {
				editor = "vim"
			}

			logger := logging.GetLogger("cli")
			logger.Debug().
				Str("editor", editor).
				Str("manifest", manifestPath).
				Msg("launching editor")

			edit := exec.Command(editor, manifestPath)
			edit.Stdin = os.Stdin
			edit.Stdout = os.Stdout
			edit.Stderr = os.Stderr
			if err := edit.Run(); err != nil {
				return errors.Wrapf(err, errors.ErrEditor, "editor %s failed", editor)
			}
			return nil
		},
	}
}
