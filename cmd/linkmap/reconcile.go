package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/linkmap/pkg/config"
	"github.com/arthur-debert/linkmap/pkg/expand"
	"github.com/arthur-debert/linkmap/pkg/filesystem"
	"github.com/arthur-debert/linkmap/pkg/logging"
	"github.com/arthur-debert/linkmap/pkg/output"
	"github.com/arthur-debert/linkmap/pkg/paths"
	"github.com/arthur-debert/linkmap/pkg/reconciler"
	"github.com/arthur-debert/linkmap/pkg/report"
	"github.com/arthur-debert/linkmap/pkg/types"
)

// errRunFailed signals a completed run with error outcomes. The report
// has already been rendered when it is returned; main maps it to exit
// code 1 without printing anything further.
var errRunFailed = fmt.Errorf("run finished with errors")

func newUnlinkCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink",
		Short: MsgUnlinkShort,
		Long:  MsgUnlinkLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, flags, true)
		},
	}
}

// runReconcile is the shared driver for the root (link) command and
// unlink.
func runReconcile(cmd *cobra.Command, flags *cliFlags, unlink bool) error {
	logger := logging.GetLogger("cli")

	fsys := filesystem.NewOS()
	env := expand.NewOSEnv()

	manifestPath, cfg, err := resolveManifest(flags)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(firstNonEmpty(flags.output, cfg.Output.Format))
	if err != nil {
		return err
	}

	opts := types.Options{
		Overwrite: flags.overwrite || cfg.Link.Overwrite,
		Force:     flags.force,
		DryRun:    flags.dryRun,
	}

	logger.Debug().
		Str("manifest", manifestPath).
		Bool("unlink", unlink).
		Bool("overwrite", opts.Overwrite).
		Bool("dryRun", opts.DryRun).
		Msg("starting run")

	var rep *types.RunReport
	switch {
	case unlink:
		rep, err = reconciler.RunUnlinkFile(fsys, env, manifestPath, opts)
	case opts.Overwrite && !opts.Force && !opts.DryRun && stdinIsTTY():
		rep, err = runLinkConfirming(fsys, env, manifestPath, opts)
	default:
		rep, err = reconciler.RunLinkFile(fsys, env, manifestPath, opts)
	}
	if err != nil {
		return err
	}

	noColor := flags.noColor || !cfg.Output.Color
	renderer := output.NewRenderer(cmd.OutOrStdout(), format, noColor, flags.verbosity > 0)
	summary := report.Summarize(rep)
	if err := renderer.Render(summary); err != nil {
		return err
	}

	if summary.Failed() {
		return errRunFailed
	}
	return nil
}

// resolveManifest determines the manifest path and loads configuration
// layered with that manifest's directory as the project dir. With no
// --file the manifest is discovered by walking up from the current
// directory.
func resolveManifest(flags *cliFlags) (string, *config.Config, error) {
	if flags.file != "" {
		abs, err := filepath.Abs(flags.file)
		if err != nil {
			return "", nil, err
		}
		cfg, err := config.Load(config.LoadOptions{ProjectDir: filepath.Dir(abs)})
		if err != nil {
			return "", nil, err
		}
		return abs, cfg, nil
	}

	// Manifest name can come from config, so load config first without
	// a project layer, then reload with the manifest's directory.
	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		return "", nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}
	manifestPath, err := paths.New(cfg.Manifest.Name).FindManifest(cwd)
	if err != nil {
		return "", nil, err
	}

	cfg, err = config.Load(config.LoadOptions{ProjectDir: filepath.Dir(manifestPath)})
	if err != nil {
		return "", nil, err
	}
	return manifestPath, cfg, nil
}

// runLinkConfirming runs link mode with interactive overwrite
// confirmation: conflicts are collected first, then each one is either
// auto-approved (identical file content) or confirmed with the user
// before re-reconciling that entry with overwrite enabled.
func runLinkConfirming(fsys types.FS, env expand.Env, manifestPath string, opts types.Options) (*types.RunReport, error) {
	logger := logging.GetLogger("cli")

	passOpts := opts
	passOpts.Overwrite = false
	rep, err := reconciler.RunLinkFile(fsys, env, manifestPath, passOpts)
	if err != nil {
		return nil, err
	}

	rec := reconciler.New(fsys, env)
	for i, res := range rep.Results {
		if res.Outcome != types.OutcomeSkippedConflict || res.Entry == nil {
			continue
		}

		proceed := sameContent(res.Entry.SourcePath, res.Target)
		if proceed {
			logger.Debug().
				Str("target", res.Target).
				Msg("destination content identical, overwriting without prompt")
		} else {
			proceed, _ = pterm.DefaultInteractiveConfirm.Show(
				fmt.Sprintf(MsgOverwritePrompt, res.Target))
		}
		if !proceed {
			continue
		}

		rep.Results[i] = rec.Link(res.Entry, opts)
	}

	return rep, nil
}

// sameContent reports whether two regular files have identical content.
func sameContent(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil || !ia.Mode().IsRegular() {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil || !ib.Mode().IsRegular() {
		return false
	}
	if ia.Size() != ib.Size() {
		return false
	}

	ha, err := hashFile(a)
	if err != nil {
		return false
	}
	hb, err := hashFile(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ha, hb)
}

func hashFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}

func stdinIsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
