package models

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// Catalog errors
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrEmptyComment     = errors.New("comment cannot be empty")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrDuplicateComment = errors.New("duplicate comment detected")
)

// Promo is a main page banner pointing at a category or a product
type Promo struct {
	Title string
	Link  string
}

// Catalog holds the products on sale and their reviews. Products are
// immutable once the catalog is built; reviews are appended concurrently.
type Catalog struct {
	categories []Category
	products   []Product
	bySlug     map[string]int
	byID       map[int]int

	// Sales, NewArrivals and Poster feed the main page sections
	Sales       []string
	NewArrivals []string
	Promos      []Promo
	Poster      Promo

	mu      sync.RWMutex
	reviews map[string][]Review
}

// NewCatalog indexes products and categories
func NewCatalog(categories []Category, products []Product) *Catalog {
	c := &Catalog{
		categories: categories,
		products:   products,
		bySlug:     make(map[string]int, len(products)),
		byID:       make(map[int]int, len(products)),
		reviews:    make(map[string][]Review),
	}
	for i, p := range products {
		c.bySlug[p.Slug] = i
		c.byID[p.ID] = i
	}
	return c
}

// Categories returns all categories in display order
func (c *Catalog) Categories() []Category {
	return c.categories
}

// Category finds a category by slug
func (c *Catalog) Category(slug string) (Category, error) {
	for _, cat := range c.categories {
		if cat.Slug == slug {
			return cat, nil
		}
	}
	return Category{}, ErrCategoryNotFound
}

// Products returns every product in catalog order
func (c *Catalog) Products() []Product {
	return c.products
}

// Product finds a product by slug
func (c *Catalog) Product(slug string) (Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// ProductByID finds a product by id
func (c *Catalog) ProductByID(id int) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// InCategory returns the products of a category
func (c *Catalog) InCategory(slug string) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Category == slug {
			out = append(out, p)
		}
	}
	return out
}

// CountInCategory returns the number of products in a category
func (c *Catalog) CountInCategory(slug string) int {
	return len(c.InCategory(slug))
}

// BySlugs resolves slugs, skipping unknown ones
func (c *Catalog) BySlugs(slugs []string) []Product {
	out := make([]Product, 0, len(slugs))
	for _, slug := range slugs {
		if p, err := c.Product(slug); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to limit products shown under p: its category
// neighbours first, then the rest of the catalog in order.
func (c *Catalog) Related(p Product, limit int) []Product {
	out := make([]Product, 0, limit)
	seen := map[int]bool{p.ID: true}
	add := func(match func(Product) bool) {
		for _, q := range c.products {
			if len(out) == limit {
				return
			}
			if seen[q.ID] || !match(q) {
				continue
			}
			seen[q.ID] = true
			out = append(out, q)
		}
	}
	add(func(q Product) bool { return q.Category == p.Category })
	add(func(Product) bool { return true })
	return out
}

// Reviews returns the reviews of a product, oldest first
func (c *Catalog) Reviews(slug string) []Review {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Review(nil), c.reviews[slug]...)
}

// AddReview appends a review. The same author posting the same comment
// twice on one product is rejected with ErrDuplicateComment.
func (c *Catalog) AddReview(slug string, r Review) error {
	if _, err := c.Product(slug); err != nil {
		return err
	}
	r.Comment = strings.TrimSpace(r.Comment)
	if r.Comment == "" {
		return ErrEmptyComment
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.reviews[slug] {
		if existing.Author == r.Author && existing.Comment == r.Comment {
			return ErrDuplicateComment
		}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	c.reviews[slug] = append(c.reviews[slug], r)
	return nil
}
