package main

// User-facing message strings, kept together so wording stays
// consistent across commands.
const (
	MsgRootShort = "A declarative symlink manager"
	MsgRootLong  = `linkmap creates, previews, and removes symlinks declared in a manifest
file: one "source = destination" line per link, sources relative to the
manifest, destinations anywhere on the filesystem.

Run linkmap with no command to apply the manifest. See "linkmap format"
for the manifest syntax.`

	MsgUnlinkShort = "Remove the manifest's symlinks"
	MsgUnlinkLong  = `Remove the symlinks declared in the manifest.

Only symlinks that point at their declared source are removed; anything
else at a destination is left untouched.`

	MsgEditShort = "Open the manifest in your editor"

	MsgConfigShort = "Print the effective configuration as TOML"

	MsgFormatShort = "Show the manifest format reference"

	MsgVersionShort = "Print version information"

	MsgManShort = "Generate man pages"

	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagForce     = "Skip confirmation prompts"
	MsgFlagOverwrite = "Replace existing files or links at destinations"
	MsgFlagFile      = "Use an alternative manifest file"
	MsgFlagOutput    = "Output format: text, json, or yaml"
	MsgFlagNoColor   = "Disable colored output"

	MsgOverwritePrompt = "Destination '%s' exists and is not our symlink. Overwrite?"
)
