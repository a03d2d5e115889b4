package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed suite.yaml
var defaultSuite []byte

// Customer is an account on the shop under test
type Customer struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// BillingProfile is the data typed into the checkout form
type BillingProfile struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Address   string `yaml:"address"`
	City      string `yaml:"city"`
	State     string `yaml:"state"`
	Postcode  string `yaml:"postcode"`
	Phone     string `yaml:"phone"`
	Email     string `yaml:"email"`
}

// Messages are the site texts the suite asserts on
type Messages struct {
	CouponApplied    string `yaml:"coupon_applied"`
	CouponRemoved    string `yaml:"coupon_removed"`
	RequiredField    string `yaml:"required_field"`
	DuplicateComment string `yaml:"duplicate_comment"`
	AddedToCart      string `yaml:"added_to_cart"`
}

// MainPageData parametrises the main page suite
type MainPageData struct {
	CatalogBlocks    []int             `yaml:"catalog_blocks"`
	CatalogAliases   map[string]string `yaml:"catalog_aliases"`
	SalesProducts    []int             `yaml:"sales_products"`
	ArrivalsProducts []int             `yaml:"arrivals_products"`
	ViewedProducts   []int             `yaml:"viewed_products"`
}

// Review is the feedback left on product pages
type Review struct {
	Stars   int    `yaml:"stars"`
	Comment string `yaml:"comment"`
}

// SuiteData is the parametrisation of the end-to-end suite
type SuiteData struct {
	SiteName       string         `yaml:"site_name"`
	Customer       Customer       `yaml:"customer"`
	Billing        BillingProfile `yaml:"billing"`
	Coupons        []string       `yaml:"coupons"`
	PaymentMethods []string       `yaml:"payment_methods"`
	Messages       Messages       `yaml:"messages"`
	MainPage       MainPageData   `yaml:"main_page"`
	Review         Review         `yaml:"review"`
}

// LoadSuiteData reads suite data from path, or the embedded defaults when
// path is empty
func LoadSuiteData(path string) (*SuiteData, error) {
	raw := defaultSuite
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read suite data: %w", err)
		}
		raw = data
	}

	return ParseSuiteData(raw)
}

// ParseSuiteData decodes and validates suite data
func ParseSuiteData(raw []byte) (*SuiteData, error) {
	var data SuiteData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse suite data: %w", err)
	}

	if data.SiteName == "" {
		return nil, fmt.Errorf("site_name is required")
	}
	if len(data.Coupons) == 0 {
		return nil, fmt.Errorf("at least one coupon is required")
	}
	if len(data.PaymentMethods) == 0 {
		return nil, fmt.Errorf("at least one payment method is required")
	}
	if data.Review.Stars < 1 || data.Review.Stars > 5 {
		return nil, fmt.Errorf("review.stars must be between 1 and 5, got %d", data.Review.Stars)
	}

	return &data, nil
}
