package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"

	"github.com/lixenwraith/tilerun/constant"
	"github.com/lixenwraith/tilerun/core"
)

const (
	sampleRate = beep.SampleRate(constant.AudioSampleRate)

	// resampleQuality is the beep.Resample quality for clips at another rate
	resampleQuality = 4
)

// Clip is a decoded sound held in memory so it can be restarted at will
type Clip struct {
	name    string
	buf     *beep.Buffer
	playing *beep.Ctrl
}

func (c *Clip) Name() string { return c.name }

// Len returns the clip length in samples
func (c *Clip) Len() int { return c.buf.Len() }

// SoundManager loads clips from a directory and plays them through one mixer
// Sounds without a file fall back to a synthesized tone, so a missing asset never fails a load
type SoundManager struct {
	mu          sync.Mutex
	dir         string
	format      beep.Format
	mixer       *beep.Mixer
	clips       map[string]*Clip
	initialized bool
	log         *zap.Logger
}

// NewSoundManager creates a manager reading <dir>/<name>.wav
func NewSoundManager(dir string, log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SoundManager{
		dir:    dir,
		format: beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2},
		mixer:  &beep.Mixer{},
		clips:  make(map[string]*Clip),
		log:    log,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constant.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything and detaches the mixer
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.mixer.Clear()
	sm.initialized = false
}

// LoadSound returns the clip for name, decoding it on first use
func (sm *SoundManager) LoadSound(name string) (core.Sound, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if clip, ok := sm.clips[name]; ok {
		return clip, nil
	}

	buf, err := sm.decodeFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		sm.log.Debug("sound file missing, using tone", zap.String("sound", name))
		buf, err = toneFor(name, sm.format)
	}
	if err != nil {
		return nil, err
	}

	clip := &Clip{name: name, buf: buf}
	sm.clips[name] = clip
	return clip, nil
}

func (sm *SoundManager) decodeFile(name string) (*beep.Buffer, error) {
	path := filepath.Join(sm.dir, name+".wav")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer stream.Close()

	var s beep.Streamer = stream
	if format.SampleRate != sm.format.SampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, sm.format.SampleRate, stream)
	}
	buf := beep.NewBuffer(sm.format)
	buf.Append(s)
	return buf, nil
}

// PlaySound restarts s from the beginning at volume, stopping its previous playback
// Sounds not loaded by this manager are ignored
func (sm *SoundManager) PlaySound(s core.Sound, loop bool, volume float64) {
	clip, ok := s.(*Clip)
	if !ok || clip.buf == nil {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	var stream beep.Streamer = clip.buf.Streamer(0, clip.buf.Len())
	if loop {
		stream = beep.Loop(-1, clip.buf.Streamer(0, clip.buf.Len()))
	}
	ctrl := &beep.Ctrl{Streamer: newVolume(stream, volume)}

	sm.withSpeaker(func() {
		if clip.playing != nil {
			// a nil streamer makes the mixer drop the old playback
			clip.playing.Streamer = nil
		}
		clip.playing = ctrl
		sm.mixer.Add(ctrl)
	})
}

// withSpeaker runs fn under the speaker lock once the speaker is running
func (sm *SoundManager) withSpeaker(fn func()) {
	if !sm.initialized {
		fn()
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}
