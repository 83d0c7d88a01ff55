package narration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is passed to beep.Resample. 4 is beep's recommended
// quality for offline conversion.
const resampleQuality = 4

// Clip is a fully decoded narration held in memory at the sink's sample rate.
type Clip struct {
	Name string
	buf  *beep.Buffer
}

// NewClip buffers s, resampling from format's rate to rate when they differ.
// s must be finite.
func NewClip(name string, s beep.Streamer, format beep.Format, rate beep.SampleRate) (*Clip, error) {
	if format.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, rate, s)
	}
	buf := beep.NewBuffer(beep.Format{
		SampleRate:  rate,
		NumChannels: 2,
		Precision:   2,
	})
	buf.Append(s)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &Clip{Name: name, buf: buf}, nil
}

// LoadClip decodes a .wav or .mp3 file.
func LoadClip(path string, rate beep.SampleRate) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clip: %w", err)
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".mp3":
		s, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported clip format %q", ext)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer s.Close()

	return NewClip(path, s, format, rate)
}

// Len returns the clip length in samples.
func (c *Clip) Len() int {
	return c.buf.Len()
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}

// SampleRate returns the rate the clip was buffered at.
func (c *Clip) SampleRate() beep.SampleRate {
	return c.buf.Format().SampleRate
}

// Streamer returns a fresh streamer over the whole clip.
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}
