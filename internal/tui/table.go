package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/tienlen/internal/combo"
	"github.com/lox/tienlen/internal/deck"
	"github.com/lox/tienlen/internal/game"
)

func (t Theme) newTable(headers ...string) *table.Table {
	cell := t.renderer.NewStyle().Padding(0, 1)
	header := t.HandInfo.Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(t.Info).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

// CombosTable summarises the combinations a player can make, one row per
// type that has at least one.
func (t Theme) CombosTable(p *game.Player) string {
	tbl := t.newTable("Combo", "Count", "Weakest", "Strongest")
	rows := 0
	for _, typ := range combo.Types {
		subs := p.Combos(typ)
		if len(subs) == 0 {
			continue
		}
		tbl.Row(
			typ.String(),
			strconv.Itoa(len(subs)),
			deck.FormatCards(subs[0].Hand.Cards()),
			deck.FormatCards(subs[len(subs)-1].Hand.Cards()),
		)
		rows++
	}
	if rows == 0 {
		return t.Info.Render("No combinations")
	}
	return tbl.Render()
}

// MovesTable numbers the legal moves the way ParseMove reads them. The row
// at cursor is highlighted; a negative cursor highlights nothing.
func (t Theme) MovesTable(moves []combo.Hand, cursor int) string {
	if len(moves) == 0 {
		return t.Warning.Render("No legal moves, pass with p")
	}
	cell := t.renderer.NewStyle().Padding(0, 1)
	selected := t.Selected.Padding(0, 1)
	header := t.HandInfo.Padding(0, 1)

	tbl := t.newTable("#", "Cards", "Combo").
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row == cursor:
				return selected
			default:
				return cell
			}
		})
	for i, h := range moves {
		tbl.Row(strconv.Itoa(i+1), deck.FormatCards(h.Cards()), h.Type().String())
	}
	return tbl.Render()
}
