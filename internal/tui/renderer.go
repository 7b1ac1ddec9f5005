package tui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/lox/tienlen/internal/game"
)

// EventRenderer writes one line per game event. It implements
// game.EventSubscriber so it can be attached to a game's event bus.
type EventRenderer struct {
	w     io.Writer
	theme Theme
	human string
}

// NewEventRenderer creates a renderer; plays by human are shown as "You".
func NewEventRenderer(w io.Writer, theme Theme, human string) *EventRenderer {
	return &EventRenderer{w: w, theme: theme, human: human}
}

// OnEvent implements game.EventSubscriber
func (r *EventRenderer) OnEvent(event game.GameEvent) {
	if line := r.Render(event); line != "" {
		fmt.Fprintln(r.w, line)
	}
}

// Render formats an event, returning an empty string for events that are
// not shown.
func (r *EventRenderer) Render(event game.GameEvent) string {
	t := r.theme
	switch e := event.(type) {
	case game.GameStartEvent:
		seats := make([]string, len(e.Seats))
		for i, s := range e.Seats {
			seats[i] = fmt.Sprintf("%s (%s)", s.Name, s.Kind)
		}
		return t.Header.Render(" Tiến Lên ") + "\n" +
			t.Info.Render("Seats: "+strings.Join(seats, ", ")) + "\n" +
			fmt.Sprintf("%s %s the lowest card and %s.", r.who(e.Leader), r.verb(e.Leader, "hold"), r.verb(e.Leader, "lead"))

	case game.RoundStartEvent:
		return "\n" + t.Header.Render(fmt.Sprintf(" Round %d ", e.Round+1)) + " " +
			t.Info.Render(r.who(e.Leader)+" to lead")

	case game.PlayEvent:
		verb := "play"
		if e.Leading {
			verb = "lead"
		}
		line := fmt.Sprintf("%s %s %s %s", t.Player.Render(r.who(e.Player)), r.verb(e.Player, verb), t.Hand(e.Hand),
			t.Info.Render(fmt.Sprintf("(%d left)", e.Remaining)))
		if e.Remaining == 1 {
			line += " " + t.Warning.Render("last card!")
		}
		return line

	case game.PassEvent:
		line := t.Info.Render(r.who(e.Player) + " " + r.verb(e.Player, "pass"))
		if e.TimedOut {
			line += " " + t.Warning.Render("(timed out)")
		}
		return line

	case game.RejectedEvent:
		if e.Player != r.human {
			return ""
		}
		return t.Error.Render(fmt.Sprintf("Rejected: %v", e.Err))

	case game.RoundEndEvent:
		return t.Success.Render(fmt.Sprintf("%s %s round %d", r.who(e.Winner), r.verb(e.Winner, "win"), e.Round+1)) +
			" with " + t.Hand(e.LastHand)

	case game.GameOverEvent:
		var b strings.Builder
		b.WriteString("\n")
		b.WriteString(t.Success.Render(fmt.Sprintf("%s %s the game after %d rounds!", r.who(e.Winner), r.verb(e.Winner, "win"), e.Rounds)))
		names := make([]string, 0, len(e.Remaining))
		for name := range e.Remaining {
			if name != e.Winner {
				names = append(names, name)
			}
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(&b, "\n  %s: %d cards left", r.who(name), e.Remaining[name])
		}
		return b.String()
	}
	return ""
}

func (r *EventRenderer) who(name string) string {
	if name != "" && name == r.human {
		return "You"
	}
	return name
}

// verb conjugates for the third person unless name is the human
func (r *EventRenderer) verb(name, verb string) string {
	switch {
	case name != "" && name == r.human:
		return verb
	case strings.HasSuffix(verb, "s"):
		return verb + "es"
	default:
		return verb + "s"
	}
}
