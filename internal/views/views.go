// Package views renders the storefront pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/drstein77/storefront/internal/models"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// ProductCard is one catalog entry together with its cart state.
type ProductCard struct {
	models.Product
	Quantity int
}

func (c ProductCard) InCart() bool {
	return c.Quantity > 0
}

// Page is everything the storefront page shows.
type Page struct {
	Products  []ProductCard
	Cart      models.CartSummary
	OrderOpen bool
}

// Cards pairs every product with its quantity in the cart.
func Cards(products []models.Product, quantity func(id string) int) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, ProductCard{Product: p, Quantity: quantity(p.ID)})
	}
	return cards
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"money":  Money,
		"srcset": Srcset,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the full storefront page.
func (r *Renderer) Render(w io.Writer, page Page) error {
	return r.tmpl.ExecuteTemplate(w, "page", page)
}

// Static serves the embedded stylesheet; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// Money formats an amount the way the storefront shows prices.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func Srcset(img models.Image) string {
	return fmt.Sprintf("%s 480w, %s 768w, %s 1200w", img.Mobile, img.Tablet, img.Desktop)
}
