package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/skillbox-qa/intershop/internal/models"
)

const (
	relatedLimit = 4
	goodsLimit   = 5
)

// ProductData feeds product.html
type ProductData struct {
	Product    models.Product
	Category   models.Category
	Reviews    []models.Review
	Related    []Card
	Categories []CategoryLink
	Goods      []models.Product
	Return     string
}

// ProductHandler serves the product card page
type ProductHandler struct {
	shop *Shop
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(shop *Shop) *ProductHandler {
	return &ProductHandler{shop: shop}
}

// ServeHTTP handles GET /product/{slug}/
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := h.shop.Catalog
	p, err := c.Product(chi.URLParam(r, "slug"))
	if err != nil {
		h.shop.notFound(w, r, "Товар не найден.")
		return
	}
	cat, _ := c.Category(p.Category)

	sess := SessionFrom(r.Context())
	sess.MarkViewed(p.Slug)

	goods := c.BySlugs(c.NewArrivals)
	if len(goods) > goodsLimit {
		goods = goods[:goodsLimit]
	}

	data := ProductData{
		Product:    p,
		Category:   cat,
		Reviews:    c.Reviews(p.Slug),
		Related:    h.shop.cards(c.Related(p, relatedLimit), sess.Snapshot().Cart, r.URL.Path),
		Categories: h.shop.categoryLinks(),
		Goods:      goods,
		Return:     r.URL.Path,
	}
	h.shop.render(w, r, http.StatusOK, "product", p.Name, "single-product", data)
}

// DieData feeds wp_die.html
type DieData struct {
	Lines   []template.HTML
	BackURL template.URL
}

// ReviewHandler accepts review submissions
type ReviewHandler struct {
	shop *Shop
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(shop *Shop) *ReviewHandler {
	return &ReviewHandler{shop: shop}
}

// ServeHTTP handles POST /product/{slug}/reviews
func (h *ReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := r.ParseForm(); err != nil {
		h.die(w, r, http.StatusBadRequest, "Некорректный запрос.")
		return
	}

	sess := SessionFrom(r.Context())
	author := sess.Snapshot().Username
	if author == "" {
		author = "guest-" + strings.SplitN(sess.ID, "-", 2)[0]
	}
	rating, _ := strconv.Atoi(r.PostForm.Get("rating"))

	err := h.shop.Catalog.AddReview(slug, models.Review{
		Author:  author,
		Rating:  rating,
		Comment: r.PostForm.Get("comment"),
	})
	switch {
	case err == nil:
		h.shop.Logger.WithField("product", slug).WithField("author", author).Info("review added")
		http.Redirect(w, r, "/product/"+slug+"/#tab-reviews", http.StatusSeeOther)
	case errors.Is(err, models.ErrProductNotFound):
		h.shop.notFound(w, r, "Товар не найден.")
	case errors.Is(err, models.ErrDuplicateComment):
		h.shop.Logger.WithField("product", slug).Warn("duplicate review rejected")
		h.die(w, r, http.StatusConflict, "Duplicate comment detected; it looks as though you’ve already said that!")
	case errors.Is(err, models.ErrEmptyComment):
		h.die(w, r, http.StatusBadRequest, "<strong>Ошибка</strong>: пожалуйста, введите комментарий.")
	case errors.Is(err, models.ErrInvalidRating):
		h.die(w, r, http.StatusBadRequest, "<strong>Ошибка</strong>: пожалуйста, поставьте оценку товару.")
	default:
		h.shop.serverError(w, err, "failed to add review")
	}
}

// die renders the bare comment failure page with a history-back link
func (h *ReviewHandler) die(w http.ResponseWriter, r *http.Request, status int, lines ...string) {
	data := DieData{BackURL: template.URL("javascript:history.back()")}
	for _, l := range lines {
		data.Lines = append(data.Lines, template.HTML(l))
	}
	h.shop.render(w, r, status, "wp_die", "Comment Submission Failure", "error-page", data)
}
