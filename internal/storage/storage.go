package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/drstein77/storefront/internal/cart"
	"github.com/drstein77/storefront/internal/catalog"
	"github.com/drstein77/storefront/internal/models"
	"go.uber.org/zap"
)

// ErrNotFound indicates an unknown product id.
var ErrNotFound = errors.New("not found")

type Log interface {
	Info(string, ...zap.Field)
}

// Keeper is the optional database behind the catalog.
type Keeper interface {
	Ping(context.Context) bool
	Close() bool
}

// MemoryStorage is the single source of truth shared by the catalog and cart views.
type MemoryStorage struct {
	mx        sync.RWMutex
	orderOpen bool

	catalog *catalog.Catalog
	cart    *cart.Store
	keeper  Keeper
	log     Log
}

// NewMemoryStorage creates a new MemoryStorage instance. keeper may be nil.
func NewMemoryStorage(products *catalog.Catalog, lines *cart.Store, keeper Keeper, log Log) *MemoryStorage {
	return &MemoryStorage{
		catalog: products,
		cart:    lines,
		keeper:  keeper,
		log:     log,
	}
}

func (s *MemoryStorage) Products() []models.Product {
	return s.catalog.Products()
}

func (s *MemoryStorage) ProductByID(id string) (models.Product, error) {
	p, ok := s.catalog.Product(id)
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

// Quantity returns how many units of the product are in the cart.
func (s *MemoryStorage) Quantity(id string) int {
	line, _ := s.cart.Line(id)
	return line.Quantity
}

func (s *MemoryStorage) Cart() models.CartSummary {
	return s.cart.Summary()
}

func (s *MemoryStorage) OrderOpen() bool {
	s.mx.RLock()
	defer s.mx.RUnlock()

	return s.orderOpen
}

func (s *MemoryStorage) AddToCart(id string) error {
	p, err := s.ProductByID(id)
	if err != nil {
		return err
	}
	s.cart.Add(p)
	return nil
}

func (s *MemoryStorage) RemoveFromCart(id string) error {
	p, err := s.lineProduct(id)
	if err != nil {
		return err
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	s.cart.Remove(p)
	// the confirmation modal only exists for a non-empty cart
	if s.cart.Count() == 0 {
		s.orderOpen = false
	}
	return nil
}

func (s *MemoryStorage) IncrementQuantity(id string) error {
	p, err := s.lineProduct(id)
	if err != nil {
		return err
	}
	s.cart.Increment(p)
	return nil
}

func (s *MemoryStorage) DecrementQuantity(id string) error {
	p, err := s.lineProduct(id)
	if err != nil {
		return err
	}
	s.cart.Decrement(p)
	return nil
}

// ConfirmOrder opens the order modal and returns what it shows.
// Confirming an empty cart leaves the modal closed.
func (s *MemoryStorage) ConfirmOrder() models.CartSummary {
	s.mx.Lock()
	defer s.mx.Unlock()

	summary := s.cart.Summary()
	if summary.Count == 0 {
		return summary
	}
	s.orderOpen = true
	s.log.Info("Order confirmed", zap.Int("lines", summary.Count), zap.String("total", summary.Total.StringFixed(2)))
	return summary
}

// StartNewOrder clears the cart and closes the modal.
func (s *MemoryStorage) StartNewOrder() {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.cart.Clear()
	s.orderOpen = false
}

func (s *MemoryStorage) Ping(ctx context.Context) bool {
	if s.keeper == nil {
		return true
	}
	return s.keeper.Ping(ctx)
}

// lineProduct prefers the catalog record and falls back to the cart line,
// so lines stay reachable if the catalog no longer lists the product.
func (s *MemoryStorage) lineProduct(id string) (models.Product, error) {
	if p, ok := s.catalog.Product(id); ok {
		return p, nil
	}
	if line, ok := s.cart.Line(id); ok {
		return line.Product, nil
	}
	return models.Product{}, ErrNotFound
}
