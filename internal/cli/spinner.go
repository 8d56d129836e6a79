package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames are the braille animation frames.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is the frame advance rate.
const spinnerInterval = 80 * time.Millisecond

// spinner animates an activity indicator on stderr while a long
// operation runs. All drawing happens on one goroutine; stop waits for
// it to finish, so no further synchronization is needed.
type spinner struct {
	msg      string
	parent   context.Context
	cancel   context.CancelFunc
	finished chan struct{}
	once     sync.Once
}

// startSpinner begins animating msg. The spinner stops on its own when
// ctx is cancelled.
func startSpinner(ctx context.Context, msg string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		msg:      msg,
		parent:   ctx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
	go s.run(sctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.finished)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			fmt.Fprintf(os.Stderr, "\r%s %s",
				styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
				StyleDim.Render(s.msg))
			frame++
		}
	}
}

// clear erases the spinner line.
func (s *spinner) clear() {
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
}

// stop halts the animation and clears the line. Safe to call more than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.finished
	})
}

// succeed stops the spinner and prints a success line.
func (s *spinner) succeed(format string, args ...any) {
	s.stop()
	printSuccess(format, args...)
}

// fail stops the spinner and prints an error line.
func (s *spinner) fail(format string, args ...any) {
	s.stop()
	printError(format, args...)
}

// cancelled reports whether the surrounding operation was interrupted,
// as opposed to the spinner being stopped normally.
func (s *spinner) cancelled() bool {
	return s.parent.Err() != nil
}
