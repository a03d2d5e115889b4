package handlers

import (
	"net/http"
	"strings"
)

// NotFoundHandler renders the storefront 404 page
type NotFoundHandler struct {
	shop *Shop
}

// NewNotFoundHandler creates a new not found handler
func NewNotFoundHandler(shop *Shop) *NotFoundHandler {
	return &NotFoundHandler{shop: shop}
}

// ServeHTTP handles every unrouted path
func (h *NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.shop.Logger.WithField("path", r.URL.Path).Debug("page not found")
	h.shop.notFound(w, r, notFoundMessage(r.URL.Path))
}

// notFoundMessage returns a user-friendly message for a missing path
func notFoundMessage(path string) string {
	switch {
	case strings.HasPrefix(path, "/product/"):
		return "Похоже, такого товара больше нет в магазине."
	case strings.HasPrefix(path, "/product-category/"):
		return "Такой категории товаров нет."
	default:
		return "Похоже, здесь ничего нет. Попробуйте перейти на главную страницу."
	}
}
