package catalog

// Product is a catalog entry. Price fields use the vendor's currency; a
// discount price, when present, is always below the list price.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Price          float64           `json:"price"`
	DiscountPrice  *float64          `json:"discountPrice,omitempty"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Images         []string          `json:"images"`
	VendorID       string            `json:"vendorId"`
	VendorName     string            `json:"vendorName"`
	VendorVerified bool              `json:"vendorVerified"`
	Rating         float64           `json:"rating"`
	ReviewsCount   int               `json:"reviewsCount"`
	Stock          int               `json:"stock"`
	Specifications map[string]string `json:"specifications"`
}

// EffectivePrice is the price a buyer actually pays.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

func (p Product) OutOfStock() bool {
	return p.Stock <= 0
}

// Category is static reference data; it is never persisted or mutated.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var categories = []Category{
	{ID: "1", Name: "Fashion", Icon: "👕"},
	{ID: "2", Name: "Groceries", Icon: "🛒"},
	{ID: "3", Name: "Electronics", Icon: "📱"},
	{ID: "4", Name: "Home Decor", Icon: "🏠"},
	{ID: "5", Name: "Beauty", Icon: "💄"},
	{ID: "6", Name: "Health", Icon: "💊"},
}

// Categories returns the static category list.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
