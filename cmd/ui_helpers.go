package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"atomicgo.dev/cursor"

	"passstore/cli/internal/terminal"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// withProgress runs fn while an inline spinner with text animates on stderr.
// The spinner is skipped when progress is disabled or stderr is not a terminal.
func withProgress(text string, fn func() error) error {
	if noProgress || !terminal.IsInteractive(os.Stderr) {
		return fn()
	}
	cursor.Hide()
	defer cursor.Show()
	stop := startInlineSpinner(os.Stderr, text, spinnerFrames, 120*time.Millisecond)
	err := fn()
	stop()
	return err
}

// startInlineSpinner animates frames followed by text on a single line of w
// until the returned function is called. The line is cleared on stop.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
			select {
			case <-stop:
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				i++
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
		})
	}
}
