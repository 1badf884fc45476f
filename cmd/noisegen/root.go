package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "noisegen",
	Short: "Continuous ambient noise generator",
	Long: `noisegen synthesizes continuous colored noise from a two-axis control:
the vertical axis sets the spectral tilt (bass emphasis), the horizontal
axis sets the pitch of the mid-band emphasis.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig wires environment variables into viper: NOISEGEN_SAMPLE_RATE
// overrides --sample-rate and so on.
func initConfig() error {
	viper.SetEnvPrefix("NOISEGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
	return nil
}

// bindFlags registers the command's own flags with viper. Done per command
// at run time because the subcommands share flag names; binding both sets at
// init would leave viper reading whichever command registered last.
func bindFlags(cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err == nil {
			err = viper.BindPFlag(f.Name, f)
		}
	})
	return err
}

func initLogger() error {
	cfg := zap.NewProductionConfig()
	if viper.GetBool("verbose") {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}
