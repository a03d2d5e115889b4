package models

// DefaultCategories is the category tree of the practice storefront
func DefaultCategories() []Category {
	return []Category{
		{Slug: "knigi", Title: "Книги"},
		{Slug: "planshety", Title: "Планшеты"},
		{Slug: "foto-video", Title: "Фото/видео"},
		{Slug: "telefony", Title: "Телефоны"},
		{Slug: "chasy", Title: "Часы"},
		{Slug: "televizory", Title: "Телевизоры"},
		{Slug: "bytovaya-tehnika", Title: "Бытовая техника"},
	}
}

func rub(r int64) int64 { return r * 100 }

// DefaultProducts is the product list of the practice storefront. Names
// are in sentence case so the upper-cased main page titles map back to them.
func DefaultProducts() []Product {
	return []Product{
		{ID: 101, Slug: "apple-watch-6", Name: "Apple watch 6", Category: "chasy", Price: rub(42990), SalePrice: rub(39990), Stock: 7, Description: "Умные часы с датчиком кислорода в крови."},
		{ID: 102, Slug: "galaxy-watch-4", Name: "Часы galaxy watch 4", Category: "chasy", Price: rub(24990), Stock: 12, Description: "Часы с измерением состава тела."},
		{ID: 103, Slug: "ipad-air", Name: "Планшет ipad air", Category: "planshety", Price: rub(59990), SalePrice: rub(54990), Stock: 5, Description: "Тонкий планшет с процессором A14."},
		{ID: 104, Slug: "galaxy-tab-s7", Name: "Планшет galaxy tab s7", Category: "planshety", Price: rub(45990), Stock: 0, Description: "Планшет с экраном 120 Гц."},
		{ID: 105, Slug: "canon-eos-250d", Name: "Фотоаппарат canon eos 250d", Category: "foto-video", Price: rub(52990), SalePrice: rub(47990), Stock: 3, Description: "Компактная зеркальная камера."},
		{ID: 106, Slug: "nikon-z50", Name: "Фотоаппарат nikon z50", Category: "foto-video", Price: rub(69990), Stock: 4, Description: "Беззеркальная камера формата DX."},
		{ID: 107, Slug: "gopro-hero-9", Name: "Экшн-камера gopro hero 9", Category: "foto-video", Price: rub(39990), SalePrice: rub(35990), Stock: 0, Description: "Камера для съемки в движении."},
		{ID: 108, Slug: "iphone-12", Name: "Смартфон iphone 12", Category: "telefony", Price: rub(79990), SalePrice: rub(74990), Stock: 9, Description: "Смартфон с экраном OLED."},
		{ID: 109, Slug: "redmi-note-10", Name: "Смартфон redmi note 10", Category: "telefony", Price: rub(19990), Stock: 20, Description: "Недорогой смартфон с AMOLED-экраном."},
		{ID: 110, Slug: "honor-50", Name: "Смартфон honor 50", Category: "telefony", Price: rub(29990), SalePrice: rub(27990), Stock: 6, Description: "Смартфон с камерой 108 Мп."},
		{ID: 111, Slug: "kniga-yazyk-go", Name: "Книга язык программирования go", Category: "knigi", Price: rub(1990), Stock: 30, Description: "Классический учебник по Go."},
		{ID: 112, Slug: "kniga-izuchaem-python", Name: "Книга изучаем python", Category: "knigi", Price: rub(2490), SalePrice: rub(1990), Stock: 25, Description: "Подробное введение в Python."},
		{ID: 113, Slug: "kniga-grokaem-algoritmy", Name: "Книга грокаем алгоритмы", Category: "knigi", Price: rub(1290), Stock: 0, Description: "Иллюстрированное пособие по алгоритмам."},
		{ID: 114, Slug: "lg-oled55", Name: "Телевизор lg oled55", Category: "televizory", Price: rub(119990), SalePrice: rub(109990), Stock: 2, Description: "OLED-телевизор 55 дюймов."},
		{ID: 115, Slug: "samsung-qled", Name: "Телевизор samsung qled", Category: "televizory", Price: rub(89990), Stock: 3, Description: "QLED-телевизор с HDR."},
		{ID: 116, Slug: "dyson-v11", Name: "Пылесос dyson v11", Category: "bytovaya-tehnika", Price: rub(49990), SalePrice: rub(44990), Stock: 5, Description: "Беспроводной пылесос."},
		{ID: 117, Slug: "bosch-serie-4", Name: "Стиральная машина bosch", Category: "bytovaya-tehnika", Price: rub(39990), Stock: 4, Description: "Стиральная машина на 8 кг."},
		{ID: 118, Slug: "delonghi-magnifica", Name: "Кофемашина delonghi magnifica", Category: "bytovaya-tehnika", Price: rub(34990), SalePrice: rub(31990), Stock: 8, Description: "Автоматическая кофемашина."},
		{ID: 119, Slug: "airpods-pro", Name: "Наушники airpods pro", Category: "telefony", Price: rub(19990), SalePrice: rub(17990), Stock: 15, Description: "Наушники с шумоподавлением."},
		{ID: 120, Slug: "kindle-paperwhite", Name: "Электронная книга kindle paperwhite", Category: "knigi", Price: rub(12990), Stock: 10, Description: "Ридер с подсветкой."},
	}
}

// DefaultCatalog builds the seeded catalog with its main page sections
func DefaultCatalog() *Catalog {
	c := NewCatalog(DefaultCategories(), DefaultProducts())

	for _, p := range c.products {
		if p.OnSale() {
			c.Sales = append(c.Sales, p.Slug)
		}
	}
	for i := len(c.products) - 1; i >= 0 && len(c.NewArrivals) < 10; i-- {
		c.NewArrivals = append(c.NewArrivals, c.products[i].Slug)
	}

	c.Promos = []Promo{
		{Title: "Книги", Link: "/product-category/knigi/"},
		{Title: "Планшеты", Link: "/product-category/planshety/"},
		{Title: "Фотоаппараты", Link: "/product-category/foto-video/"},
	}
	c.Poster = Promo{Title: "Apple watch", Link: "/product/apple-watch-6/"}

	return c
}

// Seeded customer credentials
const (
	DefaultCustomerUsername = "faridun"
	DefaultCustomerPassword = "Qwerty-12345"
)

// DefaultCustomers returns the accounts the practice storefront starts with
func DefaultCustomers() ([]*Customer, error) {
	c, err := NewCustomer("cust-1", DefaultCustomerUsername, "faridun@example.com", DefaultCustomerPassword, Billing{
		FirstName: "Faridun",
		LastName:  "Hushang-Mirzo",
		Address:   "ул. Бобожон Гафурова, 12",
		City:      "Ташкент",
		Postcode:  "100000",
		Phone:     "+998901234567",
		Email:     "faridun@example.com",
	})
	if err != nil {
		return nil, err
	}
	return []*Customer{c}, nil
}
