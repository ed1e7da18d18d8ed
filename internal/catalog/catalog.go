// Package catalog loads the product list once and keeps it for the views.
package catalog

import (
	"sync"

	"github.com/drstein77/storefront/internal/models"
)

// Catalog is the published, read-only product list.
type Catalog struct {
	mx       sync.RWMutex
	products []models.Product
	byID     map[string]int
	loaded   bool
}

func New() *Catalog {
	return &Catalog{byID: map[string]int{}}
}

// Publish replaces the product list. A repeated id is replaced with one
// derived from the product's position; the repeated ids are returned.
func (c *Catalog) Publish(products []models.Product) []string {
	list := make([]models.Product, len(products))
	copy(list, products)

	var duplicates []string
	byID := make(map[string]int, len(list))
	for i, p := range list {
		if _, dup := byID[p.ID]; dup {
			duplicates = append(duplicates, p.ID)
			list[i].ID = DeriveID(i, p.Name)
		}
		byID[list[i].ID] = i
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	c.products = list
	c.byID = byID
	c.loaded = true
	return duplicates
}

// Products returns a copy of the list; empty until a load is published.
func (c *Catalog) Products() []models.Product {
	c.mx.RLock()
	defer c.mx.RUnlock()

	list := make([]models.Product, len(c.products))
	copy(list, c.products)
	return list
}

func (c *Catalog) Product(id string) (models.Product, bool) {
	c.mx.RLock()
	defer c.mx.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

func (c *Catalog) Loaded() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()

	return c.loaded
}
