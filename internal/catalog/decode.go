package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/drstein77/storefront/internal/models"
	"github.com/google/uuid"
)

// productNamespace scopes derived product ids.
var productNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("storefront/products"))

// Decode parses a JSON array of products. Records without an id get one
// derived from their position and name, so products sharing a name stay distinct.
func Decode(r io.Reader) ([]models.Product, error) {
	var products []models.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	for i := range products {
		if products[i].ID == "" {
			products[i].ID = DeriveID(i, products[i].Name)
		}
	}
	return products, nil
}

// DeriveID returns a stable id for the product at position i.
func DeriveID(i int, name string) string {
	return uuid.NewSHA1(productNamespace, []byte(strconv.Itoa(i)+"/"+name)).String()
}
