package narration

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Sink is where narration streamers are mixed. Lock and Unlock guard
// changes to streamers that are already playing.
type Sink interface {
	Add(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
	SampleRate() beep.SampleRate
	Close() error
}

// SpeakerSink plays through the default audio device.
type SpeakerSink struct {
	rate  beep.SampleRate
	mixer *beep.Mixer
}

// NewSpeakerSink opens the audio device at rate with a 100ms buffer.
func NewSpeakerSink(rate beep.SampleRate) (*SpeakerSink, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &SpeakerSink{
		rate:  rate,
		mixer: &beep.Mixer{},
	}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *SpeakerSink) Add(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *SpeakerSink) Clear() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}

func (s *SpeakerSink) Lock()   { speaker.Lock() }
func (s *SpeakerSink) Unlock() { speaker.Unlock() }

func (s *SpeakerSink) SampleRate() beep.SampleRate { return s.rate }

// Close stops playback and releases the device.
func (s *SpeakerSink) Close() error {
	s.Clear()
	speaker.Close()
	return nil
}

// MixerSink mixes without an output device. Samples only advance when
// Stream is called, which makes it usable headless and in tests.
type MixerSink struct {
	mu    sync.Mutex
	rate  beep.SampleRate
	mixer *beep.Mixer
}

// NewMixerSink creates a device-less sink.
func NewMixerSink(rate beep.SampleRate) *MixerSink {
	return &MixerSink{
		rate:  rate,
		mixer: &beep.Mixer{},
	}
}

func (s *MixerSink) Add(st beep.Streamer) {
	s.mu.Lock()
	s.mixer.Add(st)
	s.mu.Unlock()
}

func (s *MixerSink) Clear() {
	s.mu.Lock()
	s.mixer.Clear()
	s.mu.Unlock()
}

func (s *MixerSink) Lock()   { s.mu.Lock() }
func (s *MixerSink) Unlock() { s.mu.Unlock() }

func (s *MixerSink) SampleRate() beep.SampleRate { return s.rate }

func (s *MixerSink) Close() error {
	s.Clear()
	return nil
}

// Stream pulls n samples through the mixer and returns them.
func (s *MixerSink) Stream(n int) [][2]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([][2]float64, n)
	s.mixer.Stream(buf)
	return buf
}

// Streamers returns the number of streamers in the mixer.
func (s *MixerSink) Streamers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mixer.Len()
}
