package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-noise/dsp/core"
	"github.com/cwbudde/algo-noise/playback"
	"github.com/cwbudde/algo-noise/synth"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Stream noise to the default audio device",
	Long: `Play renders noise continuously and streams it to the default output
device. The control position is fixed for the run; pass --x and --y in
[0, 1] to choose the color. Playback runs until --duration elapses or
the process is interrupted.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd)
	},
	RunE: runPlay,
}

func init() {
	f := playCmd.Flags()
	f.Float64("x", 0.5, "horizontal control position in [0, 1] (pitch)")
	f.Float64("y", 0.5, "vertical control position in [0, 1] (tilt, 0 = bass-heavy)")
	f.Duration("duration", 0, "how long to play (0 = until interrupted)")
	f.Float64("sample-rate", 48000, "output sample rate in Hz")
	f.Int("channels", 2, "output channel count")
	f.Bool("no-filter", false, "bypass the coloring filter stage (raw white noise)")
	f.Int64("seed", 0, "noise seed (0 = time-based)")

	rootCmd.AddCommand(playCmd)
}

func newEngineFromFlags() *synth.Engine {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(viper.GetFloat64("sample-rate")),
		core.WithChannels(viper.GetInt("channels")),
	)

	opts := []synth.EngineOption{
		synth.WithFilterStage(!viper.GetBool("no-filter")),
		synth.WithInitialControl(synth.ControlPosition{
			X: viper.GetFloat64("x"),
			Y: viper.GetFloat64("y"),
		}),
	}
	if seed := viper.GetInt64("seed"); seed != 0 {
		opts = append(opts, synth.WithEngineSeed(seed))
	}

	return synth.NewEngine(cfg, opts...)
}

func runPlay(cmd *cobra.Command, args []string) error {
	engine := newEngineFromFlags()
	ctrl := playback.NewController(engine, playback.WithLogger(logger))
	defer func() {
		if err := ctrl.Close(); err != nil {
			logger.Warn("close playback", zap.Error(err))
		}
	}()

	if err := ctrl.Start(); err != nil {
		return err
	}

	p := engine.Parameters()
	fmt.Fprintf(cmd.OutOrStdout(), "playing %s noise (tilt=%.2f pitch=%.2f), ctrl-c to stop\n",
		engine.ColorBand(), p.SpectralTilt, p.PitchShift)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	var timeout <-chan time.Time
	if d := viper.GetDuration("duration"); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case s := <-sig:
		logger.Info("interrupted", zap.String("signal", s.String()))
	case <-timeout:
		logger.Info("duration elapsed")
	}

	ctrl.Stop()
	return nil
}
