package dedupe

import (
	"github.com/arthur-debert/dedupe/pkg/config"
	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var (
		format   string
		defaults bool
	)

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := cmd.OutOrStdout().Write(config.DefaultTOML())
				return err
			}

			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}
			data, err := cfg.Render(format)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidArgument, "cannot render configuration")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", MsgFlagConfigFormat)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagConfigDefaults)
	cmd.MarkFlagsMutuallyExclusive("defaults", "format")

	return cmd
}
