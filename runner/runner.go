// Package runner drives a CHIP-8 machine, feeding it keypad state
// and executing cycles at a fixed rate until told to stop.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/skx/chip8ulator/chip8"
	"github.com/skx/chip8ulator/keypad"
)

const (
	// DefaultHz is the number of cycles executed each second, if
	// the caller doesn't choose a rate.
	DefaultHz = 500
)

// Runner holds the machine we're executing, and the settings which
// control how we execute it.
type Runner struct {

	// Machine is the virtual machine which is executed.
	Machine *chip8.Chip8

	// Input is the keypad we poll, once per cycle.  It may be nil,
	// in which case no keys are ever pressed.
	Input *keypad.Keypad

	// Hz is the number of cycles we execute each second.  Zero means
	// we run as fast as possible.
	Hz int

	// MaxCycles stops execution once this many cycles have been run.
	// Zero means run forever.
	MaxCycles uint64

	// Logger is used to record our progress.
	Logger *slog.Logger
}

// Run executes the machine until the context is canceled, the cycle
// limit is reached, the user asks to quit, or the machine faults.
//
// Reaching the cycle limit and quitting are not errors.
func (r *Runner) Run(ctx context.Context) error {

	if r.Machine == nil {
		return fmt.Errorf("no machine to run")
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// A nil channel never fires, so an unthrottled run only
	// waits on the context.
	var tick <-chan time.Time
	if r.Hz > 0 {
		interval := max(time.Second/time.Duration(r.Hz), time.Nanosecond)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	logger.Debug("Starting execution",
		slog.Int("hz", r.Hz),
		slog.Uint64("maxCycles", r.MaxCycles))

	var executed uint64
	for {

		if r.MaxCycles > 0 && executed >= r.MaxCycles {
			logger.Debug("Cycle limit reached",
				slog.Uint64("cycles", executed))
			return nil
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if r.Input != nil {
			keys, err := r.Input.Poll()
			if errors.Is(err, keypad.ErrQuit) {
				logger.Debug("Quit requested",
					slog.Uint64("cycles", executed))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read keypad: %w", err)
			}
			r.Machine.SetKeys(keys)
		}

		if err := r.Machine.Cycle(); err != nil {
			return fmt.Errorf("execution halted: %w", err)
		}
		executed++
	}
}
