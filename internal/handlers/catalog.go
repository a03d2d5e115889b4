package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CategoryData feeds category.html
type CategoryData struct {
	Title      string
	Cards      []Card
	Categories []CategoryLink
}

// CategoryHandler serves /catalog/ and /product-category/{slug}/
type CategoryHandler struct {
	shop *Shop
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(shop *Shop) *CategoryHandler {
	return &CategoryHandler{shop: shop}
}

// ServeHTTP renders the products grid of one category, or of the whole
// catalog when the route has no slug
func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	title := "Каталог"
	products := h.shop.Catalog.Products()

	if slug := chi.URLParam(r, "slug"); slug != "" {
		cat, err := h.shop.Catalog.Category(slug)
		if err != nil {
			h.shop.notFound(w, r, "Категория не найдена.")
			return
		}
		title = cat.Title
		products = h.shop.Catalog.InCategory(slug)
	}

	cart := SessionFrom(r.Context()).Snapshot().Cart
	data := CategoryData{
		Title:      title,
		Cards:      h.shop.cards(products, cart, r.URL.Path),
		Categories: h.shop.categoryLinks(),
	}
	h.shop.render(w, r, http.StatusOK, "category", title, "archive tax-product_cat", data)
}
