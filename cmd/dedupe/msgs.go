package dedupe

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Remove duplicate files across ranked directory trees"
	MsgRunShort        = "Delete verified lower-priority duplicates"
	MsgVerifyShort     = "Re-check the pairs of a saved dry run"
	MsgApplyShort      = "Delete the files planned by a saved dry run"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "dedupe %s (commit %s, built %s)\n"

	// Error messages
	MsgErrNoCommand      = "no command specified"
	MsgErrOpenDryRun     = "cannot open dry-run file %s"
	MsgErrNaiveStrategy  = "--naive cannot be combined with --strategy %s"
	MsgErrVerifyMismatch = "%d of %d checked entries differ"
	MsgErrApplyFailed    = "%d of %d entries could not be applied"
	MsgErrApplyMismatch  = "%d of %d entries failed verification and were kept"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig         = "Config file (default $XDG_CONFIG_HOME/dedupe/config.toml)"
	MsgFlagNoColor        = "Disable colored output"
	MsgFlagDryRun         = "Print what would be deleted without deleting"
	MsgFlagMinBytes       = "Minimum file size in bytes eligible for deletion"
	MsgFlagNaive          = "Skip content comparison; matching size is enough"
	MsgFlagIgnoreZero     = "Never delete files made only of zero bytes"
	MsgFlagPrintDelete    = "Print the paths that would be deleted, one per line, and delete nothing"
	MsgFlagStrategy       = "Comparison strategy (tiered, spot, full, naive)"
	MsgFlagManifest       = "Manifest file name inside each root"
	MsgFlagTestEvery      = "Check one entry out of every N"
	MsgFlagJobs           = "Number of entries checked concurrently"
	MsgFlagNoVerify       = "Delete without comparing the pair again"
	MsgFlagConfigFormat   = "Output format (toml, yaml)"
	MsgFlagConfigDefaults = "Print the commented built-in defaults instead of the effective configuration"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/verify-long.txt
	msgVerifyLongRaw string
	MsgVerifyLong    = strings.TrimSpace(msgVerifyLongRaw)

	//go:embed msgs/verify-example.txt
	msgVerifyExampleRaw string
	MsgVerifyExample    = strings.TrimRight(msgVerifyExampleRaw, "\n")

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
