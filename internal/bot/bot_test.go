package bot

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"expenses/internal/services"
	"expenses/internal/store/memory"
)

type fakeTelegram struct {
	updates []tgbotapi.Update
	sent    []tgbotapi.MessageConfig
	offset  int
}

func (f *fakeTelegram) GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	f.offset = config.Offset
	var out []tgbotapi.Update
	for _, u := range f.updates {
		if u.UpdateID >= config.Offset {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func update(id int, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: id,
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: 42},
		},
	}
}

func newTestBot(t *testing.T, updates []tgbotapi.Update) (*Bot, *fakeTelegram, *memory.Store, *Watermark) {
	t.Helper()
	st := memory.New()
	svc := services.NewExpenseService(st, nil)
	wm := NewWatermark(filepath.Join(t.TempDir(), ".last_update_id"))
	api := &fakeTelegram{updates: updates}
	return New(api, svc, wm), api, st, wm
}

func TestPollOnceAddsAndReplies(t *testing.T) {
	b, api, st, wm := newTestBot(t, []tgbotapi.Update{
		update(10, "24/12/2024; 35.00+45.1+3; OTHeRs; test"),
		update(11, "not an expense"),
	})

	if err := b.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce error: %v", err)
	}

	if st.Len() != 1 {
		t.Fatalf("expected 1 stored record, got %d", st.Len())
	}

	id, ok, err := wm.Load()
	if err != nil || !ok || id != 11 {
		t.Fatalf("watermark = %d, %v, %v; want 11", id, ok, err)
	}

	var added, failed bool
	for _, m := range api.sent {
		if strings.Contains(m.Text, "WERE ADDED") {
			added = true
		}
		if strings.Contains(m.Text, "COULDN'T ADD") {
			failed = true
		}
	}
	if !added || !failed {
		t.Fatalf("expected added and failed sections, sent: %+v", api.sent)
	}
}

func TestPollOnceDeleteMarkerRoutesToDelete(t *testing.T) {
	b, api, st, _ := newTestBot(t, []tgbotapi.Update{
		update(1, "05/12/2024; 5.00; Home; x"),
	})

	if err := b.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce error: %v", err)
	}
	if st.Len() != 1 {
		t.Fatalf("expected 1 record after add, got %d", st.Len())
	}

	api.updates = []tgbotapi.Update{
		update(2, "DELETE 05/12/2024; 5.00; Home; x"),
	}
	if err := b.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce error: %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("expected record deleted, len=%d", st.Len())
	}

	var deleted bool
	for _, m := range api.sent {
		if strings.Contains(m.Text, "WERE DELETED") {
			deleted = true
		}
	}
	if !deleted {
		t.Fatalf("expected a deleted section, sent: %+v", api.sent)
	}
}

func TestDeleteMarkerStrippedAnywhere(t *testing.T) {
	// The marker routes to delete wherever it sits in the message.
	b, api, st, _ := newTestBot(t, []tgbotapi.Update{
		update(1, "05/12/2024; 5.00; Home; x"),
	})
	if err := b.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce error: %v", err)
	}

	api.updates = []tgbotapi.Update{
		update(2, "05/12/2024; 5.00; DELETE Home; x"),
	}
	if err := b.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce error: %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("mid-message marker should still delete, len=%d", st.Len())
	}
}

func TestPollOnceUsesWatermarkOffset(t *testing.T) {
	b, api, st, wm := newTestBot(t, []tgbotapi.Update{
		update(5, "05/12/2024; 5.00; Home; x"),
	})
	if err := wm.Save(5); err != nil {
		t.Fatal(err)
	}

	if err := b.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce error: %v", err)
	}

	if api.offset != 6 {
		t.Fatalf("offset = %d, want watermark+1 = 6", api.offset)
	}
	if st.Len() != 0 {
		t.Fatalf("old update must not be reprocessed, len=%d", st.Len())
	}
}

func TestPollOnceEmptyBatchKeepsWatermark(t *testing.T) {
	b, _, _, wm := newTestBot(t, nil)

	if err := b.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce error: %v", err)
	}
	if _, ok, _ := wm.Load(); ok {
		t.Fatal("watermark should stay unset with no updates")
	}
}

func TestWatermarkRoundTrip(t *testing.T) {
	wm := NewWatermark(filepath.Join(t.TempDir(), "wm"))

	if _, ok, err := wm.Load(); ok || err != nil {
		t.Fatalf("missing file should be (0, false, nil), got ok=%v err=%v", ok, err)
	}
	if err := wm.Save(123); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	id, ok, err := wm.Load()
	if err != nil || !ok || id != 123 {
		t.Fatalf("Load = %d, %v, %v; want 123, true, nil", id, ok, err)
	}
}
