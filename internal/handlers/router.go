package handlers

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/skillbox-qa/intershop/internal/services"
)

// RouterDeps holds everything the storefront routes need
type RouterDeps struct {
	Shop     *Shop
	Sessions *SessionStore
	Checkout services.CheckoutService
	Orders   services.OrderService
	Accounts services.AccountService
	Static   fs.FS
}

// NewRouter wires the storefront pages onto a chi router
func NewRouter(deps RouterDeps) http.Handler {
	shop := deps.Shop

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(shop.Logger))
	r.Use(chimw.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(deps.Static))))

	r.Group(func(r chi.Router) {
		r.Use(deps.Sessions.Middleware)

		r.Method(http.MethodGet, "/", NewHomeHandler(shop))
		r.Method(http.MethodGet, "/catalog/", NewCategoryHandler(shop))
		r.Method(http.MethodGet, "/product-category/{slug}/", NewCategoryHandler(shop))
		r.Method(http.MethodGet, "/product/{slug}/", NewProductHandler(shop))
		r.Method(http.MethodPost, "/product/{slug}/reviews", NewReviewHandler(shop))

		r.Method(http.MethodGet, "/cart/", NewCartHandler(shop))
		cartAdd := NewCartAddHandler(shop)
		r.Method(http.MethodGet, "/cart/add", cartAdd)
		r.Method(http.MethodPost, "/cart/add", cartAdd)
		r.Method(http.MethodGet, "/cart/remove", NewCartRemoveHandler(shop))

		checkout := NewCheckoutHandler(shop, deps.Checkout, deps.Accounts)
		r.Method(http.MethodGet, "/checkout/", checkout)
		r.Method(http.MethodPost, "/checkout/", checkout)
		r.Method(http.MethodPost, "/checkout/coupon", NewCouponHandler(shop, deps.Checkout))
		r.Method(http.MethodGet, "/checkout/coupon/remove", NewCouponRemoveHandler(shop, deps.Checkout))
		r.Method(http.MethodGet, "/checkout/order-received/{number}/", NewConfirmationHandler(shop, deps.Orders))

		account := NewAccountHandler(shop, deps.Accounts)
		r.Method(http.MethodGet, "/my-account/", account)
		r.Method(http.MethodPost, "/my-account/", account)
		r.Method(http.MethodGet, "/my-account/orders/", NewOrdersHandler(shop, deps.Orders))
		r.Method(http.MethodGet, "/my-account/view-order/{number}/", NewViewOrderHandler(shop, deps.Orders))
		r.Method(http.MethodGet, "/my-account/logout", NewLogoutHandler(shop))

		r.NotFound(NewNotFoundHandler(shop).ServeHTTP)
	})

	return r
}

// requestLogger logs one line per request through logrus
func requestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start),
				"request_id": chimw.GetReqID(r.Context()),
			}).Debug("request served")
		})
	}
}
