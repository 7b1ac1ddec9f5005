package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/tienlen/internal/game"
)

// ErrQuit is returned when the player leaves the table from the move picker
var ErrQuit = errors.New("player quit")

// MovePicker asks the human for a move with a small Bubble Tea program. It
// implements game.MoveReader.
type MovePicker struct {
	theme  Theme
	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

// NewMovePicker creates a picker reading keys from in and drawing to out
func NewMovePicker(theme Theme, in io.Reader, out io.Writer, logger *log.Logger) *MovePicker {
	return &MovePicker{
		theme:  theme,
		in:     in,
		out:    out,
		logger: logger.WithPrefix("tui"),
	}
}

// ReadMove shows the turn and returns the line the player submitted. The
// program is torn down when ctx is cancelled, e.g. on a turn timeout.
func (p *MovePicker) ReadMove(ctx context.Context, turn game.Turn) (string, error) {
	model := newPickerModel(p.theme, turn)
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("move picker: %w", err)
	}

	m, ok := final.(*pickerModel)
	if !ok || m.quit {
		return "", ErrQuit
	}
	p.logger.Debug("Move submitted", "player", turn.Player, "line", m.value)
	return m.value, nil
}

// pickerModel is the Bubble Tea model for one turn
type pickerModel struct {
	theme Theme
	turn  game.Turn
	input textinput.Model

	cursor int
	value  string
	done   bool
	quit   bool
}

func newPickerModel(theme Theme, turn game.Turn) *pickerModel {
	ti := textinput.New()
	ti.Placeholder = "move number, cards like 3d 3c, or p to pass"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 48
	ti.Prompt = "> "
	ti.PromptStyle = theme.Selected
	ti.TextStyle = theme.Log

	return &pickerModel{theme: theme, turn: turn, input: ti}
}

// Init initializes the model
func (m *pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses; everything else goes to the text input
func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.turn.LegalMoves)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			m.value = m.submission()
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submission prefers typed text; an empty line plays the highlighted move
func (m *pickerModel) submission() string {
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return v
	}
	if len(m.turn.LegalMoves) == 0 {
		return "p"
	}
	return strconv.Itoa(m.cursor + 1)
}

// View renders the turn
func (m *pickerModel) View() string {
	if m.done || m.quit {
		return ""
	}
	t := m.theme
	var b strings.Builder

	title := fmt.Sprintf(" Round %d · your turn ", m.turn.Round+1)
	if m.turn.Attempt > 1 {
		title += fmt.Sprintf("(attempt %d) ", m.turn.Attempt)
	}
	b.WriteString(t.Header.Render(title))
	b.WriteString("\n")

	if m.turn.Leading() {
		b.WriteString(t.HandInfo.Render("You lead this round"))
	} else {
		fmt.Fprintf(&b, "To beat: %s %s", t.Hand(m.turn.ToBeat), t.Info.Render("from "+m.turn.LastPlayer))
	}
	b.WriteString("\n")

	if len(m.turn.Opponents) > 0 {
		others := make([]string, len(m.turn.Opponents))
		for i, o := range m.turn.Opponents {
			others[i] = fmt.Sprintf("%s %d", o.Name, o.Cards)
			if o.Passed {
				others[i] += " (passed)"
			}
		}
		b.WriteString(t.Info.Render("Cards left: " + strings.Join(others, ", ")))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Hand: %s\n", t.Cards(m.turn.Cards))
	if m.turn.Rejected != nil {
		b.WriteString(t.Error.Render(m.turn.Rejected.Error()))
		b.WriteString("\n")
	}

	b.WriteString(t.MovesTable(m.turn.LegalMoves, m.cursor))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(t.Info.Render("↑↓ choose • Enter play • p pass • Esc quit"))
	return b.String()
}
