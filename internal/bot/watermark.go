package bot

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Watermark persists the last processed Telegram update ID so repeated polls
// never reprocess old messages. Delivery stays at-least-once: a crash after
// processing but before Save reprocesses the whole batch, which duplicate
// tuple inserts tolerate.
type Watermark struct {
	path string
}

func NewWatermark(path string) *Watermark {
	return &Watermark{path: path}
}

// Load reads the stored update ID. A missing file means tracking has not
// started yet and is not an error.
func (w *Watermark) Load() (int, bool, error) {
	data, err := os.ReadFile(w.path)
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read watermark: %w", err)
	}
	id, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, fmt.Errorf("parse watermark %q: %w", strings.TrimSpace(string(data)), err)
	}
	return id, true, nil
}

// Save writes the update ID. Called once per fully handled batch, never per
// message, so a crash mid-batch leaves the watermark at the previous batch.
func (w *Watermark) Save(id int) error {
	if err := os.WriteFile(w.path, []byte(strconv.Itoa(id)), 0644); err != nil {
		return fmt.Errorf("write watermark: %w", err)
	}
	return nil
}
