package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drstein77/storefront/internal/models"
	"github.com/drstein77/storefront/internal/storage"
	"github.com/drstein77/storefront/internal/views"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// Storage is the shop state the controllers dispatch intents into.
type Storage interface {
	Products() []models.Product
	Quantity(id string) int
	Cart() models.CartSummary
	OrderOpen() bool
	AddToCart(id string) error
	RemoveFromCart(id string) error
	IncrementQuantity(id string) error
	DecrementQuantity(id string) error
	ConfirmOrder() models.CartSummary
	StartNewOrder()
	Ping(context.Context) bool
}

type Log interface {
	Info(string, ...zap.Field)
	Error(string, ...zap.Field)
}

// BaseController struct for handling requests
type BaseController struct {
	storage   Storage
	renderer  *views.Renderer
	assetsDir string
	log       Log
}

// NewBaseController creates a new BaseController instance
func NewBaseController(store Storage, renderer *views.Renderer, assetsDir string, log Log) *BaseController {
	return &BaseController{
		storage:   store,
		renderer:  renderer,
		assetsDir: assetsDir,
		log:       log,
	}
}

// Route sets up the routes for the BaseController
func (h *BaseController) Route() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/", h.getPage)
	r.Get("/ping", h.ping)

	r.Post("/cart/{id}/{action}", h.postCartIntent)
	r.Post("/order/confirm", h.postConfirmOrder)
	r.Post("/order/new", h.postNewOrder)

	r.Route("/api/v0", func(r chi.Router) {
		r.Get("/products", h.getProducts)
		r.Get("/cart", h.getCart)
		r.Post("/cart/{id}/{action}", h.postCartIntentJSON)
		r.Post("/order/confirm", h.postConfirmOrderJSON)
		r.Post("/order/new", h.postNewOrderJSON)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", views.Static()))

	if h.assetsDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(h.assetsDir))))
	}

	return r
}

func (h *BaseController) getPage(w http.ResponseWriter, r *http.Request) {
	page := views.Page{
		Products:  views.Cards(h.storage.Products(), h.storage.Quantity),
		Cart:      h.storage.Cart(),
		OrderOpen: h.storage.OrderOpen(),
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page); err != nil {
		h.log.Error("Failed to render page", zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *BaseController) postCartIntent(w http.ResponseWriter, r *http.Request) {
	if !h.dispatch(w, r) {
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *BaseController) postConfirmOrder(w http.ResponseWriter, r *http.Request) {
	h.storage.ConfirmOrder()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *BaseController) postNewOrder(w http.ResponseWriter, r *http.Request) {
	h.storage.StartNewOrder()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *BaseController) getProducts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.storage.Products())
}

func (h *BaseController) getCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, h.storage.Cart())
}

func (h *BaseController) postCartIntentJSON(w http.ResponseWriter, r *http.Request) {
	if !h.dispatch(w, r) {
		return
	}
	h.writeCart(w, h.storage.Cart())
}

func (h *BaseController) postConfirmOrderJSON(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, h.storage.ConfirmOrder())
}

func (h *BaseController) postNewOrderJSON(w http.ResponseWriter, r *http.Request) {
	h.storage.StartNewOrder()
	h.writeCart(w, h.storage.Cart())
}

func (h *BaseController) ping(w http.ResponseWriter, r *http.Request) {
	if !h.storage.Ping(r.Context()) {
		http.Error(w, "Storage is unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// dispatch applies the cart intent named in the URL. It reports false
// after writing an error response.
func (h *BaseController) dispatch(w http.ResponseWriter, r *http.Request) bool {
	id := chi.URLParam(r, "id")

	var intent func(string) error
	switch chi.URLParam(r, "action") {
	case "add":
		intent = h.storage.AddToCart
	case "remove":
		intent = h.storage.RemoveFromCart
	case "increment":
		intent = h.storage.IncrementQuantity
	case "decrement":
		intent = h.storage.DecrementQuantity
	default:
		http.NotFound(w, r)
		return false
	}

	if err := intent(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return false
		}
		h.log.Error("Failed to update cart", zap.String("id", id), zap.Error(err))
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return false
	}
	return true
}

func (h *BaseController) writeCart(w http.ResponseWriter, summary models.CartSummary) {
	h.writeJSON(w, models.CartResponse{Cart: summary, OrderOpen: h.storage.OrderOpen()})
}

func (h *BaseController) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}
