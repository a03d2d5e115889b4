package handlers

import (
	"net/http"

	"github.com/skillbox-qa/intershop/internal/models"
)

const viewedWidgetSize = 5

// HomeData feeds home.html
type HomeData struct {
	Promos      []models.Promo
	Sales       []models.Product
	NewArrivals []models.Product
	Poster      models.Promo
	Viewed      []models.Product
}

// HomeHandler serves the main page
type HomeHandler struct {
	shop *Shop
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(shop *Shop) *HomeHandler {
	return &HomeHandler{shop: shop}
}

// ServeHTTP handles GET /
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	viewed := SessionFrom(r.Context()).Snapshot().Viewed
	if len(viewed) > viewedWidgetSize {
		viewed = viewed[:viewedWidgetSize]
	}

	c := h.shop.Catalog
	data := HomeData{
		Promos:      c.Promos,
		Sales:       c.BySlugs(c.Sales),
		NewArrivals: c.BySlugs(c.NewArrivals),
		Poster:      c.Poster,
		Viewed:      c.BySlugs(viewed),
	}
	h.shop.render(w, r, http.StatusOK, "home", "Главная", "home", data)
}
