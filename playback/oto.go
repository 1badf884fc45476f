package playback

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// The oto context is process-global and can only be created once; every
// controller in the process shares it.
var (
	otoCtxOnce sync.Once
	otoCtx     *oto.Context
	otoCtxErr  error
)

type otoOutput struct {
	player *oto.Player
}

// openOtoOutput is the production OutputOpener backed by ebitengine/oto.
func openOtoOutput(src io.Reader, sampleRate, channels int) (Output, error) {
	otoCtxOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   50 * time.Millisecond,
		})
		if err != nil {
			otoCtxErr = err
			return
		}
		<-ready
		otoCtx = ctx
	})

	if otoCtxErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, otoCtxErr)
	}

	return &otoOutput{player: otoCtx.NewPlayer(src)}, nil
}

func (o *otoOutput) Play() {
	o.player.Play()
}

func (o *otoOutput) Pause() {
	o.player.Pause()
}

func (o *otoOutput) Close() error {
	return o.player.Close()
}
