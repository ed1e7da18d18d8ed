package cart

import (
	"sync"
	"testing"

	"github.com/drstein77/storefront/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, price string) models.Product {
	return models.Product{
		ID:       id,
		Name:     "Product " + id,
		Category: "Cake",
		Price:    decimal.RequireFromString(price),
	}
}

func TestStore_AddTwiceIncrementsSingleLine(t *testing.T) {
	s := NewStore()
	a := product("a", "5.00")

	s.Add(a)
	s.Add(a)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("10.00").Equal(s.Total()))
}

func TestStore_AddKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	a, b, c := product("a", "1"), product("b", "2"), product("c", "3")

	s.Add(a)
	s.Add(b)
	s.Add(c)
	s.Add(a)
	s.Increment(b)

	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "a", lines[0].Product.ID)
	assert.Equal(t, "b", lines[1].Product.ID)
	assert.Equal(t, "c", lines[2].Product.ID)
	assert.Equal(t, []int{2, 2, 1}, []int{lines[0].Quantity, lines[1].Quantity, lines[2].Quantity})
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	a, b := product("a", "1"), product("b", "2")
	s.Add(a)
	s.Add(a)
	s.Add(b)

	s.Remove(a)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "b", lines[0].Product.ID)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestStore_RemoveMissingIsNoop(t *testing.T) {
	s := NewStore()
	s.Add(product("a", "1"))
	before := s.Lines()

	s.Remove(product("zzz", "1"))

	assert.Equal(t, before, s.Lines())
}

func TestStore_IncrementMissingIsNoop(t *testing.T) {
	s := NewStore()
	s.Increment(product("a", "1"))

	assert.Empty(t, s.Lines())
	assert.False(t, s.Contains(product("a", "1")))
}

func TestStore_Decrement(t *testing.T) {
	tests := []struct {
		name     string
		adds     int
		wantQty  int
		wantLine bool
	}{
		{name: "three to two", adds: 3, wantQty: 2, wantLine: true},
		{name: "two to one", adds: 2, wantQty: 1, wantLine: true},
		{name: "one stays at one", adds: 1, wantQty: 1, wantLine: true},
		{name: "absent stays absent", adds: 0, wantQty: 0, wantLine: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			a := product("a", "1")
			for i := 0; i < tt.adds; i++ {
				s.Add(a)
			}

			s.Decrement(a)

			assert.Equal(t, tt.wantLine, s.Contains(a))
			assert.Equal(t, tt.wantQty, s.Quantity(a))
		})
	}
}

func TestStore_ClearResetsTotal(t *testing.T) {
	s := NewStore()
	s.Add(product("a", "1.50"))
	s.Add(product("b", "2.25"))

	s.Clear()

	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.Count())
	assert.True(t, s.Total().IsZero())
}

func TestStore_Summary(t *testing.T) {
	s := NewStore()
	a, b := product("a", "6.50"), product("b", "7.00")
	s.Add(a)
	s.Add(a)
	s.Add(b)

	sum := s.Summary()

	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, 3, sum.Units)
	require.Len(t, sum.Lines, 2)
	assert.Equal(t, "13", sum.Lines[0].Subtotal.String())
	assert.Equal(t, "20", sum.Total.String())
}

func TestStore_LinesIsSnapshot(t *testing.T) {
	s := NewStore()
	a := product("a", "1")
	s.Add(a)

	snapshot := s.Lines()
	s.Add(a)

	assert.Equal(t, 1, snapshot[0].Quantity)
	assert.Equal(t, 2, s.Quantity(a))
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := NewStore()
	a := product("a", "1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(a)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 50, s.Quantity(a))
}
