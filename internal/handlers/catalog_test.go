package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestHomeHandler_Sections(t *testing.T) {
	shop := newTestShop(t)

	doc, resp := shop.get(t, "/")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if got := text(doc, "title"); got != "Главная — Skillbox" {
		t.Errorf("unexpected title %q", got)
	}

	for i, want := range []string{"Книги", "Планшеты", "Фотоаппараты"} {
		id := []string{"#accesspress_storemo-2", "#accesspress_storemo-3", "#accesspress_storemo-4"}[i]
		if got := text(doc, id+" .promo-widget-wrap h4"); got != want {
			t.Errorf("promo %s: expected %q, got %q", id, want, got)
		}
	}

	if got := doc.Find("#accesspress_store_product-2 ul.new-prod-slide > li").Length(); got != len(shop.catalog.Sales) {
		t.Errorf("expected %d sale slides, got %d", len(shop.catalog.Sales), got)
	}
	if got := doc.Find("#accesspress_store_product-3 ul.new-prod-slide > li").Length(); got != len(shop.catalog.NewArrivals) {
		t.Errorf("expected %d arrival slides, got %d", len(shop.catalog.NewArrivals), got)
	}
	if got := text(doc, "#accesspress_store_full_promo-2 h2.promo-title"); got != "Apple watch" {
		t.Errorf("unexpected poster title %q", got)
	}
	if href, _ := doc.Find("#accesspress_store_full_promo-2 a.promo-button").Attr("href"); href != "/product/apple-watch-6/" {
		t.Errorf("unexpected poster link %q", href)
	}
	if doc.Find(".widget_recently_viewed_products li").Length() != 0 {
		t.Error("expected no viewed products for a new visitor")
	}
}

func TestHomeHandler_RecentlyViewed(t *testing.T) {
	// GIVEN a visitor who opened two product cards
	shop := newTestShop(t)
	shop.get(t, "/product/ipad-air/")
	shop.get(t, "/product/honor-50/")

	// WHEN they return to the main page
	doc, _ := shop.get(t, "/")

	// THEN the most recent product is listed first
	titles := doc.Find(".widget_recently_viewed_products ul.product_list_widget li a span.product-title").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	want := []string{"Смартфон honor 50", "Планшет ipad air"}
	if strings.Join(titles, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v, got %v", want, titles)
	}
}

func TestCategoryHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantTitle  string
		wantCards  int
	}{
		{name: "category", path: "/product-category/knigi/", wantStatus: http.StatusOK, wantTitle: "Книги", wantCards: 4},
		{name: "all products", path: "/catalog/", wantStatus: http.StatusOK, wantTitle: "Каталог", wantCards: 20},
		{name: "unknown category", path: "/product-category/nope/", wantStatus: http.StatusNotFound},
	}

	shop := newTestShop(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, resp := shop.get(t, tt.path)

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if got := text(doc, "h1.page-title"); got != tt.wantTitle {
				t.Errorf("expected heading %q, got %q", tt.wantTitle, got)
			}
			if got := doc.Find("ul.products.columns-4 > li").Length(); got != tt.wantCards {
				t.Errorf("expected %d cards, got %d", tt.wantCards, got)
			}
		})
	}
}

func TestCategoryHandler_CardButtons(t *testing.T) {
	shop := newTestShop(t)

	doc, _ := shop.get(t, "/product-category/knigi/")

	doc.Find("ul.products > li").Each(func(_ int, card *goquery.Selection) {
		name := strings.TrimSpace(card.Find("h2").Text())
		button := strings.TrimSpace(card.Find("a.button.product_type_simple").Text())
		outOfStock := card.HasClass("outofstock")

		switch {
		case outOfStock && button != "Read more":
			t.Errorf("%s: out of stock card should offer 'Read more', got %q", name, button)
		case !outOfStock && button != "В корзину":
			t.Errorf("%s: expected add to cart button, got %q", name, button)
		}
		if !outOfStock && card.Find("a.add_to_cart_button").Length() != 1 {
			t.Errorf("%s: missing add_to_cart_button class", name)
		}
	})
}

func TestProductHandler_ServeHTTP(t *testing.T) {
	shop := newTestShop(t)

	t.Run("in stock product", func(t *testing.T) {
		doc, resp := shop.get(t, "/product/kniga-yazyk-go/")

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if got := text(doc, "title"); got != "Книга язык программирования go — Skillbox" {
			t.Errorf("unexpected title %q", got)
		}
		if got := text(doc, "h1.product_title.entry-title"); got != "Книга язык программирования go" {
			t.Errorf("unexpected heading %q", got)
		}
		if got := text(doc, "p.stock.in-stock"); got != "30 в наличии" {
			t.Errorf("unexpected stock text %q", got)
		}
		if doc.Find("form.cart input[name=quantity]").Length() != 1 {
			t.Error("expected a quantity input")
		}
		if doc.Find("p.stars a").Length() != 5 {
			t.Error("expected five star marks")
		}
		if got := doc.Find("section.related ul.products > li").Length(); got != relatedLimit {
			t.Errorf("expected %d related products, got %d", relatedLimit, got)
		}
		if doc.Find("section.related li.outofstock a.button").Text() != "Read more" {
			t.Error("expected an out of stock related product with 'Read more'")
		}
	})

	t.Run("out of stock product", func(t *testing.T) {
		doc, _ := shop.get(t, "/product/galaxy-tab-s7/")

		if got := text(doc, "p.stock.out-of-stock"); got != "Нет в наличии" {
			t.Errorf("unexpected stock text %q", got)
		}
		if doc.Find("form.cart").Length() != 0 {
			t.Error("out of stock product must not offer the cart form")
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		_, resp := shop.get(t, "/product/nope/")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", resp.StatusCode)
		}
	})
}

func TestReviewHandler_ServeHTTP(t *testing.T) {
	shop := newTestShop(t)
	review := url.Values{"rating": {"5"}, "comment": {"Отличная книга"}}

	// GIVEN a first review
	doc, resp := shop.post(t, "/product/kniga-yazyk-go/reviews", review)

	// THEN it is listed on the product page
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 after redirect, got %d", resp.StatusCode)
	}
	if !strings.HasSuffix(resp.Request.URL.Path, "/product/kniga-yazyk-go/") {
		t.Errorf("expected redirect back to the product, got %s", resp.Request.URL)
	}
	if got := text(doc, "ol.commentlist li div.description p"); got != "Отличная книга" {
		t.Errorf("expected review to be listed, got %q", got)
	}

	// WHEN the same review is posted again
	doc, resp = shop.post(t, "/product/kniga-yazyk-go/reviews", review)

	// THEN the duplicate page is shown
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.StatusCode)
	}
	if got := text(doc, "title"); got != "Comment Submission Failure" {
		t.Errorf("unexpected title %q", got)
	}
	if !strings.Contains(doc.Find("div.wp-die-message").Text(), "Duplicate comment detected") {
		t.Error("expected duplicate warning")
	}
	back := doc.Find("div.wp-die-message a")
	if strings.TrimSpace(back.Text()) != "« Back" {
		t.Errorf("expected back link, got %q", back.Text())
	}
	if href, _ := back.Attr("href"); href != "javascript:history.back()" {
		t.Errorf("unexpected back href %q", href)
	}
}

func TestReviewHandler_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		form       url.Values
		wantStatus int
	}{
		{name: "empty comment", path: "/product/ipad-air/reviews", form: url.Values{"rating": {"4"}, "comment": {"  "}}, wantStatus: http.StatusBadRequest},
		{name: "missing rating", path: "/product/ipad-air/reviews", form: url.Values{"comment": {"Хорошо"}}, wantStatus: http.StatusBadRequest},
		{name: "unknown product", path: "/product/nope/reviews", form: url.Values{"rating": {"4"}, "comment": {"Хорошо"}}, wantStatus: http.StatusNotFound},
	}

	shop := newTestShop(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp := shop.post(t, tt.path, tt.form)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestNotFoundHandler(t *testing.T) {
	shop := newTestShop(t)

	doc, resp := shop.get(t, "/wp-admin/")

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(text(doc, "h1.page-title"), "Страница не найдена") {
		t.Errorf("unexpected heading %q", text(doc, "h1.page-title"))
	}
}
