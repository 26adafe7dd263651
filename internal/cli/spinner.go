package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames cycles while a slow conversion phase runs.
var spinnerFrames = []string{"⠾", "⠽", "⠻", "⠟", "⠯", "⠷"}

// spinnerInterval is the animation frame period.
const spinnerInterval = 90 * time.Millisecond

// spinner is a terminal activity indicator for the slow phases of a
// conversion; Graphviz runs in-process through WASM and can take seconds
// on large models. It animates on stderr so piped stdout stays clean, and
// winds down on its own when the command context is cancelled.
type spinner struct {
	message string
	ctx     context.Context
	halt    chan struct{}
	idle    chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

// newSpinner creates a spinner bound to the command context.
func newSpinner(ctx context.Context, message string) *spinner {
	return &spinner{
		message: message,
		ctx:     ctx,
		halt:    make(chan struct{}),
		idle:    make(chan struct{}),
	}
}

// start launches the animation goroutine.
func (s *spinner) start() {
	go func() {
		defer close(s.idle)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.halt:
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s",
					styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
					StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// stop halts the animation and clears the line. Safe to call more than
// once; start must have been called first.
func (s *spinner) stop() {
	s.once.Do(func() { close(s.halt) })
	<-s.idle
	s.clearLine()
}

// succeed stops the spinner and prints a success line.
func (s *spinner) succeed(message string) {
	s.stop()
	printSuccess("%s", message)
}

// fail stops the spinner and prints an error line.
func (s *spinner) fail(message string) {
	s.stop()
	printError("%s", message)
}

// interrupted reports whether the command context was cancelled while the
// spinner ran. Stopping the spinner itself never counts as interruption.
func (s *spinner) interrupted() bool {
	return s.ctx.Err() != nil
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
