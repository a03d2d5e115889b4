package models

import "time"

// Category groups products on the storefront
type Category struct {
	Slug  string
	Title string
}

// Product is a catalog item. Prices are in kopecks.
type Product struct {
	ID          int
	Slug        string
	Name        string
	Category    string
	Price       int64
	SalePrice   int64
	Stock       int
	Description string
}

// OnSale reports whether a sale price is set below the regular price
func (p Product) OnSale() bool {
	return p.SalePrice > 0 && p.SalePrice < p.Price
}

// CurrentPrice returns the price a customer pays now
func (p Product) CurrentPrice() int64 {
	if p.OnSale() {
		return p.SalePrice
	}
	return p.Price
}

// InStock reports whether at least one unit can be bought
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Review is customer feedback left on a product page
type Review struct {
	Author    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
