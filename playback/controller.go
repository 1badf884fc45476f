package playback

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-noise/synth"
)

// ErrDeviceUnavailable reports that the audio output device could not be
// opened (busy, denied, or absent). The controller stays Stopped; retrying
// is the caller's policy, not the core's.
var ErrDeviceUnavailable = errors.New("audio device unavailable")

// State is the playback lifecycle state.
type State int

const (
	Stopped State = iota
	Running
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Output is the platform audio path: a started device pulling samples from
// the reader it was opened with.
type Output interface {
	Play()
	Pause()
	Close() error
}

// OutputOpener opens the output device for the given stream format and
// attaches src as its sample source. Implementations wrap open failures in
// ErrDeviceUnavailable.
type OutputOpener func(src io.Reader, sampleRate, channels int) (Output, error)

// Controller drives an engine through an audio output device.
type Controller struct {
	engine *synth.Engine
	open   OutputOpener
	log    *zap.Logger

	mu     sync.Mutex
	out    Output
	stream *streamReader
	state  State
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger attaches a logger for lifecycle events. Defaults to a no-op
// logger; the sample path never logs.
func WithLogger(log *zap.Logger) ControllerOption {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithOutputOpener replaces the device backend. Tests use this to run the
// full lifecycle without a sound card.
func WithOutputOpener(open OutputOpener) ControllerOption {
	return func(c *Controller) {
		if open != nil {
			c.open = open
		}
	}
}

// NewController creates a controller in the Stopped state. No device is
// touched until the first Start.
func NewController(engine *synth.Engine, opts ...ControllerOption) *Controller {
	c := &Controller{
		engine: engine,
		open:   openOtoOutput,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Start transitions Stopped -> Running, opening the output device on first
// use and resuming it afterwards. Idempotent: starting a running controller
// is a no-op. On device failure the error wraps ErrDeviceUnavailable and the
// state remains Stopped.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Running {
		return nil
	}

	if c.out == nil {
		cfg := c.engine.Config()
		c.stream = newStreamReader(c.engine, cfg.Channels)

		out, err := c.open(c.stream, int(cfg.SampleRate), cfg.Channels)
		if err != nil {
			c.stream = nil
			c.log.Error("audio device open failed", zap.Error(err))
			return fmt.Errorf("start playback: %w", err)
		}
		c.out = out
	}

	c.stream.setRunning(true)
	c.out.Play()
	c.state = Running
	c.log.Info("playback started",
		zap.Float64("sample_rate", c.engine.Config().SampleRate),
		zap.Int("channels", c.engine.Config().Channels))

	return nil
}

// Stop transitions Running -> Stopped. Idempotent. The device is paused, not
// torn down, so a subsequent Start is cheap; the stream reader produces
// silence for anything the device still pulls.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Stopped {
		return
	}

	c.stream.setRunning(false)
	c.out.Pause()
	c.state = Stopped
	c.log.Info("playback stopped")
}

// Close stops playback and releases the output device.
func (c *Controller) Close() error {
	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.out == nil {
		return nil
	}
	err := c.out.Close()
	c.out = nil
	c.stream = nil
	if err != nil {
		return fmt.Errorf("close playback: %w", err)
	}
	return nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetControl forwards a control position to the engine. Callable from any
// goroutine at gesture rate regardless of playback state.
func (c *Controller) SetControl(x, y float64) {
	c.engine.SetControl(x, y)
}

// ColorBand returns the engine's current noise color for visual feedback.
func (c *Controller) ColorBand() synth.ColorBand {
	return c.engine.ColorBand()
}
