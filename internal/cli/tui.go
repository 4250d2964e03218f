package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/penpath/pkg/transport"
)

const (
	// recentChunks is how many sent chunks the transfer view lists.
	recentChunks = 8

	barWidth = 40
)

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SendModel - Transfer progress view
// =============================================================================

type (
	sendProgressMsg transport.Progress
	sendDoneMsg     struct {
		stats *transport.Stats
		err   error
	}
)

// SendModel is the bubbletea model that follows a transfer.
type SendModel struct {
	Name     string
	Progress transport.Progress
	Recent   []transport.Progress
	Started  time.Time
	Stats    *transport.Stats
	Err      error
	Done     bool
	Aborted  bool

	cancel context.CancelFunc
}

// NewSendModel creates a model for a transfer of the named document.
// cancel is called when the user quits before the transfer ends.
func NewSendModel(name string, cancel context.CancelFunc) SendModel {
	return SendModel{Name: name, Started: time.Now(), cancel: cancel}
}

func (m SendModel) Init() tea.Cmd {
	return nil
}

func (m SendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.Done {
				m.Aborted = true
				if m.cancel != nil {
					m.cancel()
				}
			}
			return m, tea.Quit
		}
	case sendProgressMsg:
		p := transport.Progress(msg)
		m.Progress = p
		m.Recent = append(m.Recent, p)
		if len(m.Recent) > recentChunks {
			m.Recent = m.Recent[len(m.Recent)-recentChunks:]
		}
	case sendDoneMsg:
		m.Done = true
		m.Stats = msg.stats
		m.Err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m SendModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Sending " + m.Name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q abort"))
	b.WriteString("\n\n")

	b.WriteString(progressBar(m.Progress.Bytes, m.Progress.TotalBytes, barWidth))
	fmt.Fprintf(&b, "  %s %s\n\n",
		StyleNumber.Render(fmt.Sprintf("%d/%d", m.Progress.Chunk, m.Progress.Chunks)),
		StyleDim.Render(fmt.Sprintf("chunks · %s", time.Since(m.Started).Round(time.Second))))

	if len(m.Recent) > 0 {
		rows := make([][]string, len(m.Recent))
		for i, p := range m.Recent {
			rows[i] = []string{fmt.Sprint(p.Chunk), fmt.Sprint(len(p.Data)), p.Data}
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("#", "Bytes", "Data").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return styleHeader
				case row == len(rows)-1:
					return lipgloss.NewStyle().Foreground(colorGreen)
				default:
					return StyleDim
				}
			})
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	switch {
	case m.Err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error() + "\n")
	case m.Done:
		b.WriteString(styleIconSuccess.Render(iconSuccess) + " done\n")
	}
	return b.String()
}

// progressBar draws done/total as a bar of the given width.
func progressBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = min(width, done*width/total)
	}
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// runSendTUI sends text while a SendModel shows progress. Quitting the view
// cancels the transfer.
func runSendTUI(ctx context.Context, name string, sender *transport.Sender, text string) (*transport.Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSendModel(name, cancel), tea.WithContext(ctx), tea.WithOutput(ui))
	sender.Progress = func(pr transport.Progress) {
		p.Send(sendProgressMsg(pr))
	}

	result := make(chan sendDoneMsg, 1)
	go func() {
		stats, err := sender.Send(ctx, text)
		msg := sendDoneMsg{stats: stats, err: err}
		result <- msg
		p.Send(msg)
	}()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		cancel()
		<-result
		return nil, fmt.Errorf("progress view: %w", err)
	}
	cancel()
	done := <-result
	return done.stats, done.err
}
