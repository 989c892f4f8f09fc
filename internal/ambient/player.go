package ambient

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/internal/model"
)

// ExecPlayer plays a loop by running an external command with the sound URL
// appended, e.g. mpv --loop=inf <url>
type ExecPlayer struct {
	Command []string
}

// Play starts the command
func (p ExecPlayer) Play(ctx context.Context, sound model.Sound) (Stopper, error) {
	if len(p.Command) == 0 {
		return nil, errors.New("no audio command configured")
	}

	args := append(append([]string{}, p.Command[1:]...), sound.URL)
	cmd := exec.CommandContext(ctx, p.Command[0], args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", p.Command[0], err)
	}

	proc := &process{cmd: cmd, done: make(chan struct{})}
	go func() {
		err := cmd.Wait()
		if err != nil && !proc.stopped() {
			logger.Warn("Ambient player exited", logger.F("sound", sound.ID), logger.F("error", err))
		}
		close(proc.done)
	}()
	return proc, nil
}

type process struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu   sync.Mutex
	stop bool
}

func (p *process) stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop
}

func (p *process) Stop() error {
	p.mu.Lock()
	p.stop = true
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	default:
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func (p *process) Done() <-chan struct{} { return p.done }

// NopPlayer records toggles without producing sound, used when audio is
// disabled in the config
type NopPlayer struct{}

// Play returns a loop that runs until stopped
func (NopPlayer) Play(ctx context.Context, _ model.Sound) (Stopper, error) {
	return newSilentLoop(ctx), nil
}

type silentLoop struct {
	once sync.Once
	done chan struct{}
}

func newSilentLoop(ctx context.Context) *silentLoop {
	l := &silentLoop{done: make(chan struct{})}
	if ctx != nil {
		go func() {
			select {
			case <-ctx.Done():
				l.Stop()
			case <-l.done:
			}
		}()
	}
	return l
}

func (l *silentLoop) Stop() error {
	l.once.Do(func() { close(l.done) })
	return nil
}

func (l *silentLoop) Done() <-chan struct{} { return l.done }
