package dedupe

import (
	"github.com/arthur-debert/dedupe/pkg/compare"
	"github.com/arthur-debert/dedupe/pkg/config"
	"github.com/arthur-debert/dedupe/pkg/dryrun"
	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/arthur-debert/dedupe/pkg/logging"
	"github.com/spf13/cobra"
)

func newVerifyCmd(opts *globalOptions) *cobra.Command {
	var (
		every    int
		jobs     int
		strategy string
	)

	cmd := &cobra.Command{
		Use:     "verify <dryrun-file>",
		Short:   MsgVerifyShort,
		Long:    MsgVerifyLong,
		Example: MsgVerifyExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			setIfChanged(cmd, overrides, "test-every", "verify.every", every)
			setIfChanged(cmd, overrides, "jobs", "verify.jobs", jobs)
			setIfChanged(cmd, overrides, "strategy", "verify.strategy", strategy)
			cfg, err := opts.loadConfig(overrides)
			if err != nil {
				return err
			}

			in, closeInput, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeInput()

			logger := logging.GetLogger("verify")
			verifier := compare.New(opts.fs, compare.OptionsFromConfig(cfg.Compare).WithStrategy(cfg.Verify.Strategy), logger)
			checker := dryrun.NewChecker(opts.fs, verifier, dryrun.CheckOptions{
				Every:   cfg.Verify.Every,
				Jobs:    cfg.Verify.Jobs,
				Verbose: opts.verbosity > 0,
			}, cmd.OutOrStdout(), logger)

			stats, err := checker.Check(cmd.Context(), in)
			if perr := opts.printer(cmd).VerifySummary(stats); perr != nil {
				logger.Warn().Err(perr).Msg("Failed to print summary")
			}
			if err != nil {
				return err
			}
			if stats.Diff > 0 {
				return errors.Newf(errors.ErrVerifyMismatch, MsgErrVerifyMismatch, stats.Diff, stats.Checked)
			}
			return nil
		},
	}

	defaults := config.MustDefaults()
	cmd.Flags().IntVar(&every, "test-every", defaults.Verify.Every, MsgFlagTestEvery)
	cmd.Flags().IntVar(&jobs, "jobs", defaults.Verify.Jobs, MsgFlagJobs)
	cmd.Flags().StringVar(&strategy, "strategy", defaults.Verify.Strategy, MsgFlagStrategy)

	return cmd
}
