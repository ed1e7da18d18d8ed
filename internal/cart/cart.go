// Package cart keeps the in-memory shopping cart.
package cart

import (
	"sync"

	"github.com/drstein77/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// Store holds the ordered cart lines. Every mutation replaces the whole
// slice, so a snapshot returned by Lines is never changed afterwards.
type Store struct {
	mx    sync.RWMutex
	lines []models.CartLine
}

func NewStore() *Store {
	return &Store{}
}

// Add increments the line of product in place or appends a new line with quantity 1.
func (s *Store) Add(product models.Product) {
	s.mx.Lock()
	defer s.mx.Unlock()

	next := s.copyLines()
	if i := indexOf(next, product.ID); i > -1 {
		next[i].Quantity++
	} else {
		next = append(next, models.CartLine{Product: product, Quantity: 1})
	}
	s.lines = next
}

// Remove deletes the line of product if present.
func (s *Store) Remove(product models.Product) {
	s.mx.Lock()
	defer s.mx.Unlock()

	next := make([]models.CartLine, 0, len(s.lines))
	for _, line := range s.lines {
		if line.Product.ID != product.ID {
			next = append(next, line)
		}
	}
	s.lines = next
}

// Increment raises the quantity of an existing line by one.
func (s *Store) Increment(product models.Product) {
	s.mx.Lock()
	defer s.mx.Unlock()

	next := s.copyLines()
	for i := range next {
		if next[i].Product.ID == product.ID {
			next[i].Quantity++
		}
	}
	s.lines = next
}

// Decrement lowers the quantity of a line only while it is above one.
// Lines that end up at zero or below are dropped, which a guarded
// decrement cannot produce: a quantity-1 line stays at 1.
func (s *Store) Decrement(product models.Product) {
	s.mx.Lock()
	defer s.mx.Unlock()

	next := make([]models.CartLine, 0, len(s.lines))
	for _, line := range s.lines {
		if line.Product.ID == product.ID && line.Quantity > 1 {
			line.Quantity--
		}
		if line.Quantity > 0 {
			next = append(next, line)
		}
	}
	s.lines = next
}

func (s *Store) Clear() {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.lines = nil
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.copyLines()
}

// Line returns the line of the product with the given id.
func (s *Store) Line(id string) (models.CartLine, bool) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	if i := indexOf(s.lines, id); i > -1 {
		return s.lines[i], true
	}
	return models.CartLine{}, false
}

func (s *Store) Contains(product models.Product) bool {
	_, ok := s.Line(product.ID)
	return ok
}

// Quantity returns the quantity of the product's line, 0 when absent.
func (s *Store) Quantity(product models.Product) int {
	line, _ := s.Line(product.ID)
	return line.Quantity
}

// Count is the number of distinct lines, used as the cart counter.
func (s *Store) Count() int {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return len(s.lines)
}

func (s *Store) Total() decimal.Decimal {
	return Total(s.Lines())
}

// Summary computes the derived totals over one consistent snapshot.
func (s *Store) Summary() models.CartSummary {
	return Summarize(s.Lines())
}

// Total sums price × quantity over lines.
func Total(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func Summarize(lines []models.CartLine) models.CartSummary {
	summary := models.CartSummary{
		Lines: make([]models.SummaryLine, 0, len(lines)),
		Total: decimal.Zero,
		Count: len(lines),
	}
	for _, line := range lines {
		subtotal := line.Subtotal()
		summary.Lines = append(summary.Lines, models.SummaryLine{
			Product:  line.Product,
			Quantity: line.Quantity,
			Subtotal: subtotal,
		})
		summary.Total = summary.Total.Add(subtotal)
		summary.Units += line.Quantity
	}
	return summary
}

func (s *Store) copyLines() []models.CartLine {
	next := make([]models.CartLine, len(s.lines))
	copy(next, s.lines)
	return next
}

func indexOf(lines []models.CartLine, id string) int {
	for i, line := range lines {
		if line.Product.ID == id {
			return i
		}
	}
	return -1
}
