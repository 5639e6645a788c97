// Package cart holds a customer's pending selection. The reducer functions are
// pure: each takes a State and returns a new one, never touching the input.
package cart

import (
	"cuattro/internal/catalog"

	"github.com/shopspring/decimal"
)

// Line pairs a snapshot of an item, taken when it was first added, with a
// quantity that is always at least 1.
type Line struct {
	Item     catalog.Item `json:"item"`
	Quantity int          `json:"quantidade"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State holds at most one line per item id. Total is derived from Lines.
type State struct {
	Lines []Line          `json:"itens"`
	Total decimal.Decimal `json:"total"`
}

func Empty() State {
	return State{Lines: []Line{}, Total: decimal.Zero}
}

// Add increases the quantity of item's line by qty, appending the line when
// absent. A non-positive qty leaves the state unchanged.
func Add(s State, item catalog.Item, qty int) State {
	if qty <= 0 {
		return withTotal(copyLines(s.Lines))
	}

	lines := copyLines(s.Lines)
	if i := indexOf(lines, item.ID); i >= 0 {
		lines[i].Quantity += qty
	} else {
		lines = append(lines, Line{Item: item, Quantity: qty})
	}
	return withTotal(lines)
}

// Decrement lowers the item's quantity by one and drops the line when it
// reaches zero.
func Decrement(s State, itemID int) State {
	lines := copyLines(s.Lines)
	i := indexOf(lines, itemID)
	if i < 0 {
		return withTotal(lines)
	}
	if lines[i].Quantity > 1 {
		lines[i].Quantity--
		return withTotal(lines)
	}
	return withTotal(append(lines[:i], lines[i+1:]...))
}

func Remove(s State, itemID int) State {
	lines := copyLines(s.Lines)
	if i := indexOf(lines, itemID); i >= 0 {
		lines = append(lines[:i], lines[i+1:]...)
	}
	return withTotal(lines)
}

func Clear(State) State {
	return Empty()
}

// Recompute rebuilds Total from Lines. Used after decoding a stored state.
func Recompute(s State) State {
	return withTotal(copyLines(s.Lines))
}

func withTotal(lines []Line) State {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return State{Lines: lines, Total: total}
}

func copyLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

func indexOf(lines []Line, itemID int) int {
	for i, l := range lines {
		if l.Item.ID == itemID {
			return i
		}
	}
	return -1
}
