package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
)

const refreshInterval = 100 * time.Millisecond

// idleTimer shows how long it has been since the last command. After idleAfter the text switches to the
// warning color
type idleTimer struct {
	idleAfter time.Duration

	mtx      sync.Mutex
	lastSent time.Time

	text *canvas.Text
}

func newIdleTimer(idleAfter time.Duration) *idleTimer {
	return &idleTimer{
		idleAfter: idleAfter,
		text:      canvas.NewText(formatElapsed(0), nil),
	}
}

func (t *idleTimer) Reset(now time.Time) {
	t.mtx.Lock()
	t.lastSent = now
	t.mtx.Unlock()
}

// elapsed is false until the first command
func (t *idleTimer) elapsed(now time.Time) (time.Duration, bool) {
	t.mtx.Lock()
	last := t.lastSent
	t.mtx.Unlock()

	if last.IsZero() {
		return 0, false
	}
	return now.Sub(last), true
}

func (t *idleTimer) idle(elapsed time.Duration) bool {
	return t.idleAfter > 0 && elapsed >= t.idleAfter
}

// Run refreshes the text until ctx is done
func (t *idleTimer) Run(ctx context.Context) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed, ok := t.elapsed(now)
			if !ok {
				continue
			}

			text := formatElapsed(elapsed)
			colorName := theme.ColorNameForeground
			if t.idle(elapsed) {
				colorName = theme.ColorNameWarning
			}
			fyne.Do(func() {
				t.text.Text = text
				t.text.Color = theme.Color(colorName)
				t.text.Refresh()
			})
		}
	}
}

// formatElapsed shows minutes, seconds and tenths
func formatElapsed(elapsed time.Duration) string {
	minutes := int(elapsed.Minutes())
	seconds := int(elapsed.Seconds()) % 60
	tenths := int(elapsed.Milliseconds()) % 1000 / 100
	return fmt.Sprintf("%02d:%02d.%d", minutes, seconds, tenths)
}
