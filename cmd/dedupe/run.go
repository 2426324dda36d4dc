package dedupe

import (
	"github.com/arthur-debert/dedupe/pkg/compare"
	"github.com/arthur-debert/dedupe/pkg/config"
	engine "github.com/arthur-debert/dedupe/pkg/dedupe"
	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/arthur-debert/dedupe/pkg/logging"
	"github.com/arthur-debert/dedupe/pkg/output"
	"github.com/arthur-debert/dedupe/pkg/planner"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/spf13/cobra"
)

type runFlags struct {
	dryRun      bool
	minBytes    int64
	naive       bool
	ignoreZero  bool
	printDelete bool
	strategy    string
	manifest    string
}

func newRunCmd(opts *globalOptions) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:     "run <root>...",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := flags.overrides(cmd)
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig(overrides)
			if err != nil {
				return err
			}

			logger := logging.GetLogger("dedupe")
			roots, err := engine.ValidateRoots(opts.fs, args, cfg.Manifest.FileName)
			if err != nil {
				return err
			}

			mode := flags.mode()
			e := engine.New(opts.fs, engine.Options{
				Roots:        roots,
				ManifestName: cfg.Manifest.FileName,
				Planner: planner.Options{
					Mode:       mode,
					MinBytes:   cfg.Delete.MinBytes,
					IgnoreZero: cfg.Delete.IgnoreZero,
				},
				Compare: compare.OptionsFromConfig(cfg.Compare),
			}, output.NewReporter(cmd.OutOrStdout(), mode), logger)

			stats, runErr := e.Run(cmd.Context())
			if err := opts.printer(cmd).RunSummary(stats); err != nil {
				logger.Warn().Err(err).Msg("Failed to print summary")
			}
			return runErr
		},
	}

	defaults := config.MustDefaults()
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().Int64VarP(&flags.minBytes, "min-bytes", "m", defaults.Delete.MinBytes, MsgFlagMinBytes)
	cmd.Flags().BoolVar(&flags.naive, "naive", false, MsgFlagNaive)
	cmd.Flags().BoolVar(&flags.ignoreZero, "ignore-pure-zero", defaults.Delete.IgnoreZero, MsgFlagIgnoreZero)
	cmd.Flags().BoolVar(&flags.printDelete, "print-delete", false, MsgFlagPrintDelete)
	cmd.Flags().StringVar(&flags.strategy, "strategy", defaults.Compare.Strategy, MsgFlagStrategy)
	cmd.Flags().StringVar(&flags.manifest, "manifest", defaults.Manifest.FileName, MsgFlagManifest)

	return cmd
}

// mode picks the run mode; --print-delete wins over --dry-run.
func (f *runFlags) mode() types.RunMode {
	switch {
	case f.printDelete:
		return types.ModePrintOnly
	case f.dryRun:
		return types.ModeDryRun
	default:
		return types.ModeDelete
	}
}

func (f *runFlags) overrides(cmd *cobra.Command) (map[string]interface{}, error) {
	overrides := map[string]interface{}{}
	setIfChanged(cmd, overrides, "min-bytes", "delete.min_bytes", f.minBytes)
	setIfChanged(cmd, overrides, "ignore-pure-zero", "delete.ignore_zero", f.ignoreZero)
	setIfChanged(cmd, overrides, "strategy", "compare.strategy", f.strategy)
	setIfChanged(cmd, overrides, "manifest", "manifest.file_name", f.manifest)

	if f.naive {
		if cmd.Flags().Changed("strategy") && f.strategy != config.StrategyNaive {
			return nil, errors.Newf(errors.ErrInvalidArgument, MsgErrNaiveStrategy, f.strategy)
		}
		overrides["compare.strategy"] = config.StrategyNaive
	}
	return overrides, nil
}
