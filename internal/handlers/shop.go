package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/models"
)

// Shop holds what every storefront handler needs
type Shop struct {
	Site     string
	Catalog  *models.Catalog
	Renderer *Renderer
	Logger   *logrus.Logger
}

// Card is a product tile in a products grid
type Card struct {
	models.Product
	AddURL string
	Added  bool
}

// CategoryLink is a row of the product categories widget
type CategoryLink struct {
	Slug  string
	Title string
	Count int
}

// TotalsView feeds the "totals" partial
type TotalsView struct {
	models.Totals
	Return string
}

// view builds the layout data from the request session. Queued notices are
// consumed here, so each is shown exactly once.
func (s *Shop) view(r *http.Request, title, bodyClass string, data any) View {
	sess := SessionFrom(r.Context())
	notices := sess.TakeNotices()
	st := sess.Snapshot()
	return View{
		Site:      s.Site,
		Title:     title,
		BodyClass: bodyClass,
		CartCount: st.Cart.Count(),
		CartTotal: st.Cart.Totals().Total,
		LoggedIn:  st.CustomerID != "",
		Notices:   notices,
		Data:      data,
	}
}

func (s *Shop) render(w http.ResponseWriter, r *http.Request, status int, page, title, bodyClass string, data any) {
	s.Renderer.Render(w, status, page, s.view(r, title, bodyClass, data))
}

func (s *Shop) cards(products []models.Product, cart models.Cart, returnTo string) []Card {
	inCart := make(map[int]bool, len(cart.Items))
	for _, item := range cart.Items {
		inCart[item.ProductID] = true
	}

	out := make([]Card, 0, len(products))
	for _, p := range products {
		out = append(out, Card{
			Product: p,
			AddURL:  addToCartURL(p.ID, returnTo),
			Added:   inCart[p.ID],
		})
	}
	return out
}

func (s *Shop) categoryLinks() []CategoryLink {
	cats := s.Catalog.Categories()
	out := make([]CategoryLink, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryLink{Slug: c.Slug, Title: c.Title, Count: s.Catalog.CountInCategory(c.Slug)})
	}
	return out
}

func addToCartURL(productID int, returnTo string) string {
	q := url.Values{}
	q.Set("product_id", strconv.Itoa(productID))
	q.Set("return", returnTo)
	return "/cart/add?" + q.Encode()
}

// safeReturn keeps redirects on this site
func safeReturn(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	return target
}

func (s *Shop) notFound(w http.ResponseWriter, r *http.Request, message string) {
	s.render(w, r, http.StatusNotFound, "not_found", "Страница не найдена", "error404", message)
}

func (s *Shop) serverError(w http.ResponseWriter, err error, msg string) {
	s.Logger.WithError(err).Error(msg)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
