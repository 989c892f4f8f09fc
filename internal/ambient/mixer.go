// Package ambient toggles the background loops (rain, coffee shop, jazz).
// Each sound is independent; any combination may play at once.
package ambient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/internal/model"
)

// ErrUnknownSound is returned for ids outside the catalogue
var ErrUnknownSound = errors.New("unknown sound")

// Stopper controls one running loop
type Stopper interface {
	Stop() error
	// Done is closed when the loop ends for any reason
	Done() <-chan struct{}
}

// Player starts a loop for a sound
type Player interface {
	Play(ctx context.Context, sound model.Sound) (Stopper, error)
}

// Mixer tracks which loops are playing. Players finish in their own
// goroutines, so the mixer is safe for concurrent use.
type Mixer struct {
	ctx    context.Context
	player Player

	mu      sync.Mutex
	playing map[model.SoundID]Stopper
}

// NewMixer creates a mixer whose loops live no longer than ctx
func NewMixer(ctx context.Context, player Player) *Mixer {
	if player == nil {
		player = NopPlayer{}
	}
	return &Mixer{
		ctx:     ctx,
		player:  player,
		playing: make(map[model.SoundID]Stopper),
	}
}

// Toggle starts the sound if it is silent and stops it if it is playing.
// It returns whether the sound is playing afterwards.
func (m *Mixer) Toggle(id model.SoundID) (bool, error) {
	sound, ok := model.LookupSound(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownSound, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.playing[id]; ok && !finished(s) {
		delete(m.playing, id)
		if err := s.Stop(); err != nil {
			logger.Warn("Failed to stop ambient sound", logger.F("sound", id), logger.F("error", err))
		}
		logger.Info("Ambient sound stopped", logger.F("sound", id))
		return false, nil
	}

	s, err := m.player.Play(m.ctx, sound)
	if err != nil {
		delete(m.playing, id)
		return false, fmt.Errorf("failed to play %s: %w", sound.Label, err)
	}
	m.playing[id] = s
	logger.Info("Ambient sound started", logger.F("sound", id))
	return true, nil
}

// Playing reports whether id is currently looping
func (m *Mixer) Playing(id model.SoundID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.playing[id]
	if ok && finished(s) {
		delete(m.playing, id)
		return false
	}
	return ok
}

// Active returns the playing sounds in catalogue order
func (m *Mixer) Active() []model.SoundID {
	var out []model.SoundID
	for _, s := range model.Sounds {
		if m.Playing(s.ID) {
			out = append(out, s.ID)
		}
	}
	return out
}

// StopAll silences every loop
func (m *Mixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.playing {
		_ = s.Stop()
		delete(m.playing, id)
	}
}

func finished(s Stopper) bool {
	select {
	case <-s.Done():
		return true
	default:
		return false
	}
}
