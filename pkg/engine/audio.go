package engine

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"glimmer/internal/logger"
	"glimmer/pkg/config"
)

const (
	sampleRate      = 44100
	framesPerBuffer = 256
)

// AudioCues plays a short procedural click on pointer interaction. Device
// failures disable cues with a warning instead of failing engine startup.
type AudioCues struct {
	mu       sync.Mutex
	stream   *portaudio.Stream
	volume   float32
	envelope float32
	phase    float64
	enabled  bool
}

// NewAudioCues opens the default output stream when cues are enabled.
func NewAudioCues(cfg config.AudioConfig, log *logger.Logger) *AudioCues {
	ac := &AudioCues{volume: float32(cfg.Volume)}
	if !cfg.Enabled {
		return ac
	}

	if err := portaudio.Initialize(); err != nil {
		log.Warnf("audio cues disabled: %v", err)
		return ac
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, framesPerBuffer, ac.fill)
	if err != nil {
		log.Warnf("audio cues disabled: %v", err)
		portaudio.Terminate()
		return ac
	}
	if err := stream.Start(); err != nil {
		log.Warnf("audio cues disabled: %v", err)
		stream.Close()
		portaudio.Terminate()
		return ac
	}

	ac.stream = stream
	ac.enabled = true
	return ac
}

// Trigger restarts the click envelope. Safe to call when cues are disabled.
func (ac *AudioCues) Trigger() {
	if !ac.enabled {
		return
	}
	ac.mu.Lock()
	ac.envelope = 1.0
	ac.phase = 0
	ac.mu.Unlock()
}

// fill generates an exponentially decaying sine burst.
func (ac *AudioCues) fill(out []float32) {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	const frequency = 880.0
	for i := range out {
		if ac.envelope < 0.001 {
			out[i] = 0
			continue
		}
		out[i] = float32(math.Sin(2*math.Pi*frequency*ac.phase)) * ac.envelope * ac.volume
		ac.phase += 1.0 / sampleRate
		ac.envelope *= 0.9995
	}
}

// Shutdown stops the stream and releases the audio host.
func (ac *AudioCues) Shutdown() error {
	if !ac.enabled {
		return nil
	}
	ac.enabled = false
	if err := ac.stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop audio stream: %v", err)
	}
	ac.stream.Close()
	return portaudio.Terminate()
}
