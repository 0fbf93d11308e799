package catalog

import (
	"fmt"
	"math/rand"

	"github.com/gofrs/uuid"
)

// seedCatalogSize is the number of products the generated catalog is padded
// up to by duplicating curated entries under fresh ids.
const seedCatalogSize = 45

const (
	seedVendorID   = "v-tracketo"
	seedVendorName = "Bangla Direct"
)

type seedItem struct {
	name     string
	price    float64
	discount float64 // 0 means no discount
	image    string
}

var seedFashion = []seedItem{
	{name: "Aarong Premium Cotton Panjabi", price: 3200, discount: 2800, image: "https://images.unsplash.com/photo-1621508650742-1e9d89998492?auto=format&fit=crop&q=80&w=600"},
	{name: "Dhakai Jamdani Saree (Sky Blue)", price: 9500, image: "https://images.unsplash.com/photo-1610030469614-2f2f7f185622?auto=format&fit=crop&q=80&w=600"},
	{name: "Traditional Tangail Silk Saree", price: 6500, discount: 5800, image: "https://images.unsplash.com/photo-1617627143750-d86bc21e42bb?auto=format&fit=crop&q=80&w=600"},
	{name: "Mens Slim Fit Chino Pant", price: 1450, image: "https://images.unsplash.com/photo-1473966968600-fa804b86820a?auto=format&fit=crop&q=80&w=600"},
	{name: "Semi-Long Designer Panjabi", price: 2100, image: "https://images.unsplash.com/photo-1597983073453-ef90a472c792?auto=format&fit=crop&q=80&w=600"},
	{name: "Handloom Cotton Lungi", price: 850, image: "https://images.unsplash.com/photo-1582533089852-02402220abd7?auto=format&fit=crop&q=80&w=600"},
	{name: "Designer Polo Shirt (Black)", price: 950, image: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?auto=format&fit=crop&q=80&w=600"},
	{name: "Embroidery Salwar Kameez", price: 4200, image: "https://images.unsplash.com/photo-1583391733956-3750e0ff4e8b?auto=format&fit=crop&q=80&w=600"},
	{name: "Classic Denim Jacket", price: 2400, image: "https://images.unsplash.com/photo-1551537482-f2075a1d41f2?auto=format&fit=crop&q=80&w=600"},
	{name: "Silk Hijab Collection", price: 450, image: "https://images.unsplash.com/photo-1563200774-4f0144f8f3a3?auto=format&fit=crop&q=80&w=600"},
}

var seedGroceries = []seedItem{
	{name: "Radhuni Biryani Masala 40g", price: 45, image: "https://images.unsplash.com/photo-1589302168068-964664d93dc0?auto=format&fit=crop&q=80&w=600"},
	{name: "Teer Soyabean Oil 5L", price: 820, image: "https://images.unsplash.com/photo-1474979266404-7eaacbcd87c5?auto=format&fit=crop&q=80&w=600"},
	{name: "Fresh Miniket Rice 25kg", price: 1650, image: "https://images.unsplash.com/photo-1586201375761-83865001e31c?auto=format&fit=crop&q=80&w=600"},
	{name: "Musur Dal (Premium) 1kg", price: 145, image: "https://images.unsplash.com/photo-1518013391915-e4435946320a?auto=format&fit=crop&q=80&w=600"},
	{name: "PRAN Frooto Mango 1L", price: 95, image: "https://images.unsplash.com/photo-1546173159-315724a31696?auto=format&fit=crop&q=80&w=600"},
	{name: "Ispahani Mirzapore Tea", price: 420, image: "https://images.unsplash.com/photo-1594631252845-29fc4cc8cde9?auto=format&fit=crop&q=80&w=600"},
	{name: "Aarong Ghee 400g", price: 680, image: "https://images.unsplash.com/photo-1589927986089-35812388d1f4?auto=format&fit=crop&q=80&w=600"},
	{name: "Molasses (Date Palm Gur)", price: 250, image: "https://images.unsplash.com/photo-1621996346565-e3dbc646d9a9?auto=format&fit=crop&q=80&w=600"},
	{name: "Chanachur Mix 500g", price: 140, image: "https://images.unsplash.com/photo-1601050633647-8f8f5f3a07b7?auto=format&fit=crop&q=80&w=600"},
	{name: "Banglar Mishti Roshogolla", price: 450, image: "https://images.unsplash.com/photo-1589113103503-4945391cadbb?auto=format&fit=crop&q=80&w=600"},
}

var seedElectronics = []seedItem{
	{name: "Walton Primo S8 Smartphone", price: 16500, image: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?auto=format&fit=crop&q=80&w=600"},
	{name: "Sony Bravia 43\" Smart TV", price: 48000, image: "https://images.unsplash.com/photo-1593359677879-a4bb92f829d1?auto=format&fit=crop&q=80&w=600"},
	{name: "HP Core i5 Laptop", price: 62000, image: "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?auto=format&fit=crop&q=80&w=600"},
	{name: "Wireless Noise Canceling HP", price: 3500, image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&q=80&w=600"},
	{name: "Gaming Mechanical Keyboard", price: 4200, image: "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae?auto=format&fit=crop&q=80&w=600"},
}

// SeedCatalog generates the default product catalog: the curated items of
// three categories, padded by duplicating existing products under fresh ids
// until the catalog holds seedCatalogSize entries.
func SeedCatalog() []Product {
	products := make([]Product, 0, seedCatalogSize)

	for _, item := range seedFashion {
		products = append(products, seedProduct(item, "Fashion"))
	}
	for _, item := range seedGroceries {
		products = append(products, seedProduct(item, "Groceries"))
	}
	for _, item := range seedElectronics {
		products = append(products, seedProduct(item, "Electronics"))
	}

	for len(products) < seedCatalogSize {
		base := products[rand.Intn(len(products))]
		base.ID = fmt.Sprintf("extra-%d", len(products))
		products = append(products, base)
	}

	return products
}

func seedProduct(item seedItem, category string) Product {
	p := Product{
		ID:             newProductID(),
		Name:           item.name,
		Price:          item.price,
		Description:    fmt.Sprintf("High-quality %s from Tracketo's verified merchants. Authentic Bangladeshi product with nationwide delivery from Mohammadpur.", item.name),
		Category:       category,
		Images:         []string{item.image},
		VendorID:       seedVendorID,
		VendorName:     seedVendorName,
		VendorVerified: true,
		Rating:         4.2 + rand.Float64()*0.8,
		ReviewsCount:   rand.Intn(500),
		Stock:          20 + rand.Intn(30),
		Specifications: map[string]string{"Origin": "Bangladesh", "Dispatch": "Dhaka Mohammadpur"},
	}

	if item.discount > 0 {
		discount := item.discount
		p.DiscountPrice = &discount
	}

	return p
}

func newProductID() string {
	return "prod-" + uuid.Must(uuid.NewV4()).String()
}
