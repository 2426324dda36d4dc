package dedupe

import (
	"github.com/arthur-debert/dedupe/pkg/compare"
	"github.com/arthur-debert/dedupe/pkg/dryrun"
	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/arthur-debert/dedupe/pkg/logging"
	"github.com/spf13/cobra"
)

func newApplyCmd(opts *globalOptions) *cobra.Command {
	var applyOpts dryrun.ApplyOptions

	cmd := &cobra.Command{
		Use:     "apply <dryrun-file>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}

			in, closeInput, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeInput()

			logger := logging.GetLogger("apply")
			verifier := compare.New(opts.fs, compare.OptionsFromConfig(cfg.Compare), logger)
			applier := dryrun.NewApplier(opts.fs, verifier, applyOpts, cmd.OutOrStdout(), logger)

			stats, err := applier.Apply(cmd.Context(), in)
			if perr := opts.printer(cmd).ApplySummary(stats, applyOpts.DryRun); perr != nil {
				logger.Warn().Err(perr).Msg("Failed to print summary")
			}
			if err != nil {
				return err
			}
			if n := stats.Failures(); n > 0 {
				return errors.Newf(errors.ErrDeleteFailed, MsgErrApplyFailed, n, stats.Entries)
			}
			if stats.Mismatch > 0 {
				return errors.Newf(errors.ErrVerifyMismatch, MsgErrApplyMismatch, stats.Mismatch, stats.Entries)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&applyOpts.DryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&applyOpts.SkipVerify, "no-verify", false, MsgFlagNoVerify)

	return cmd
}
