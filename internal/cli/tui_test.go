package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/penpath/pkg/transport"
)

func TestSendModelProgress(t *testing.T) {
	m := NewSendModel("plot.hpgl", nil)

	var model tea.Model = m
	for i := 1; i <= recentChunks+3; i++ {
		model, _ = model.Update(sendProgressMsg(transport.Progress{
			Chunk: i, Chunks: 20, Bytes: i * 10, TotalBytes: 200, Data: "PA1,1;",
		}))
	}
	m = model.(SendModel)

	if m.Progress.Chunk != recentChunks+3 {
		t.Errorf("Progress.Chunk = %d, want %d", m.Progress.Chunk, recentChunks+3)
	}
	if len(m.Recent) != recentChunks {
		t.Errorf("len(Recent) = %d, want %d", len(m.Recent), recentChunks)
	}
	if m.Recent[0].Chunk != 4 {
		t.Errorf("oldest listed chunk = %d, want 4", m.Recent[0].Chunk)
	}

	view := m.View()
	for _, want := range []string{"plot.hpgl", "11/20", "PA1,1;"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestSendModelDone(t *testing.T) {
	m := NewSendModel("plot.hpgl", nil)
	model, cmd := m.Update(sendDoneMsg{stats: &transport.Stats{Chunks: 2}})
	if cmd == nil {
		t.Error("done message should quit the program")
	}
	m = model.(SendModel)
	if !m.Done || m.Stats.Chunks != 2 {
		t.Errorf("model after done = %+v", m)
	}

	m = NewSendModel("plot.hpgl", nil)
	model, _ = m.Update(sendDoneMsg{err: errors.New("device closed")})
	if view := model.View(); !strings.Contains(view, "device closed") {
		t.Errorf("View() should show the error, got:\n%s", view)
	}
}

func TestSendModelAbortCancels(t *testing.T) {
	cancelled := false
	m := NewSendModel("plot.hpgl", func() { cancelled = true })

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit the program")
	}
	if !cancelled {
		t.Error("quitting mid-transfer should cancel the transfer")
	}
	if !model.(SendModel).Aborted {
		t.Error("model should record the abort")
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, wantFilled int
	}{
		{0, 100, 0},
		{50, 100, 5},
		{100, 100, 10},
		{150, 100, 10},
		{5, 0, 0},
	}

	for _, tt := range tests {
		bar := progressBar(tt.done, tt.total, 10)
		if got := strings.Count(bar, "█"); got != tt.wantFilled {
			t.Errorf("progressBar(%d, %d) filled = %d, want %d", tt.done, tt.total, got, tt.wantFilled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != 10 {
			t.Errorf("progressBar(%d, %d) width = %d, want 10", tt.done, tt.total, got)
		}
	}
}
