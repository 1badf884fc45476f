package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-noise/measure/tilt"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Render noise offline and report its spectral balance",
	Long: `Analyze renders a stretch of noise without touching the audio device
and measures the energy balance between the bands below and above the
split frequency. Useful for checking what a control position sounds
like numerically: positive balance is bass-heavy, negative is bright.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd)
	},
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.Float64("x", 0.5, "horizontal control position in [0, 1] (pitch)")
	f.Float64("y", 0.5, "vertical control position in [0, 1] (tilt, 0 = bass-heavy)")
	f.Duration("duration", 2*time.Second, "how much audio to render")
	f.Float64("sample-rate", 48000, "render sample rate in Hz")
	f.Float64("split", 500, "band split frequency in Hz")
	f.Bool("no-filter", false, "bypass the coloring filter stage (raw white noise)")
	f.Int64("seed", 1, "noise seed (0 = time-based)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	engine := newEngineFromFlags()
	cfg := engine.Config()

	total := int(viper.GetDuration("duration").Seconds() * cfg.SampleRate)
	if total < cfg.BlockSize {
		total = cfg.BlockSize
	}

	logger.Debug("rendering",
		zap.Int("samples", total),
		zap.Float64("sample_rate", cfg.SampleRate))

	samples := make([]float64, 0, total)
	block := make([]float64, cfg.BlockSize)
	for len(samples) < total {
		engine.RenderBlock(block)
		samples = append(samples, block...)
	}
	samples = samples[:total]

	splitHz := viper.GetFloat64("split")
	balance, err := tilt.BandBalanceDB(samples, cfg.SampleRate, splitHz)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	p := engine.Parameters()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "control:       x=%.2f y=%.2f\n", viper.GetFloat64("x"), viper.GetFloat64("y"))
	fmt.Fprintf(out, "parameters:    tilt=%.3f pitch=%.3f\n", p.SpectralTilt, p.PitchShift)
	fmt.Fprintf(out, "color band:    %s\n", engine.ColorBand())
	fmt.Fprintf(out, "band balance:  %+.2f dB below/above %.0f Hz\n", balance, splitHz)
	return nil
}
