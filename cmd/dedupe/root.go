package dedupe

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dedupe/internal/version"
	"github.com/arthur-debert/dedupe/pkg/config"
	"github.com/arthur-debert/dedupe/pkg/errors"
	"github.com/arthur-debert/dedupe/pkg/filesystem"
	"github.com/arthur-debert/dedupe/pkg/logging"
	"github.com/arthur-debert/dedupe/pkg/output"
	"github.com/arthur-debert/dedupe/pkg/output/styles"
	"github.com/arthur-debert/dedupe/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity  int
	configFile string
	noColor    bool

	// fs is the filesystem commands operate on.
	fs types.FS
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &globalOptions{fs: filesystem.NewOS()}

	rootCmd := &cobra.Command{
		Use:     "dedupe",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.verbosity, opts.noColor)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			loadUserStyles()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidArgument, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newVerifyCmd(opts))
	rootCmd.AddCommand(newApplyCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig merges defaults, config file, environment and the given flag
// overrides.
func (o *globalOptions) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: o.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Strs("sources", cfg.Sources).Msg("Configuration loaded")
	return cfg, nil
}

// loadUserStyles applies $XDG_CONFIG_HOME/dedupe/styles.yaml when present.
// A broken file only costs the custom styling.
func loadUserStyles() {
	path := styles.UserStylesPath()
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := styles.LoadStyles(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Ignoring user styles")
		return
	}
	log.Debug().Str("path", path).Msg("User styles loaded")
}

// printer returns the summary printer for the command's stderr.
func (o *globalOptions) printer(cmd *cobra.Command) *output.Printer {
	w := cmd.ErrOrStderr()
	return output.NewPrinter(w, output.DetectFormat(w, o.noColor))
}

// setIfChanged records a flag value as a config override when the user set it.
func setIfChanged[T any](cmd *cobra.Command, overrides map[string]interface{}, flag, key string, value T) {
	if cmd.Flags().Changed(flag) {
		overrides[key] = value
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// openInput opens a dry-run file, or stdin for "-".
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrInvalidArgument, MsgErrOpenDryRun, path)
	}
	return f, func() { _ = f.Close() }, nil
}
