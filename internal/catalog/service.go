package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/simulate"
	"github.com/tracketo/storefront/internal/storage"
)

const productsKey = "products"

var ErrNotFound = errors.New("catalog: product not found")

// Service owns the persisted product collection. The first read seeds the
// catalog; every mutation rewrites the whole collection (single-writer model).
type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	ListByVendor(ctx context.Context, vendorID string) ([]Product, error)
	Add(ctx context.Context, input AddProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

// AddProductInput is a product without the server-assigned fields: id,
// rating and review count are set on creation.
type AddProductInput struct {
	Name           string
	Price          float64
	DiscountPrice  *float64
	Description    string
	Category       string
	Images         []string
	VendorID       string
	VendorName     string
	VendorVerified bool
	Stock          int
	Specifications map[string]string
}

type service struct {
	store   storage.Store
	latency time.Duration
}

func NewService(store storage.Store, latency time.Duration) Service {
	return &service{store: store, latency: latency}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	if err := simulate.Latency(ctx, s.latency); err != nil {
		return nil, err
	}

	return s.load(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	return nil, ErrNotFound
}

func (s *service) ListByVendor(ctx context.Context, vendorID string) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	vendorProducts := make([]Product, 0)
	for _, p := range products {
		if p.VendorID == vendorID {
			vendorProducts = append(vendorProducts, p)
		}
	}

	return vendorProducts, nil
}

func (s *service) Add(ctx context.Context, input AddProductInput) (*Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	product := Product{
		ID:             newProductID(),
		Name:           input.Name,
		Price:          input.Price,
		DiscountPrice:  input.DiscountPrice,
		Description:    input.Description,
		Category:       input.Category,
		Images:         input.Images,
		VendorID:       input.VendorID,
		VendorName:     input.VendorName,
		VendorVerified: input.VendorVerified,
		Rating:         0,
		ReviewsCount:   0,
		Stock:          input.Stock,
		Specifications: input.Specifications,
	}

	updated := append([]Product{product}, products...)
	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}

	log.Info().Str("product_id", product.ID).Str("vendor_id", product.VendorID).Msg("catalog: product added")
	return &product, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	products, err := s.List(ctx)
	if err != nil {
		return err
	}

	remaining := make([]Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == len(products) {
		return ErrNotFound
	}

	if err := s.save(ctx, remaining); err != nil {
		return err
	}

	log.Info().Str("product_id", id).Msg("catalog: product deleted")
	return nil
}

// load reads the persisted catalog. An absent collection is seeded; a
// corrupted one is discarded and reseeded with a non-fatal diagnostic, so a
// bad blob never takes the storefront down.
func (s *service) load(ctx context.Context) ([]Product, error) {
	var products []Product

	err := storage.GetJSON(ctx, s.store, storage.Namespace, productsKey, &products)
	switch {
	case err == nil:
		return products, nil
	case errors.Is(err, storage.ErrKeyNotFound):
		log.Info().Msg("catalog: no persisted products, seeding catalog")
	case errors.Is(err, storage.ErrCorrupted):
		log.Warn().Err(err).Msg("catalog: persisted products corrupted, discarding and reseeding")
	default:
		return nil, fmt.Errorf("catalog: failed to load products: %w", err)
	}

	products = SeedCatalog()
	if err := s.save(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

func (s *service) save(ctx context.Context, products []Product) error {
	if err := storage.PutJSON(ctx, s.store, storage.Namespace, productsKey, products); err != nil {
		return fmt.Errorf("catalog: failed to persist products: %w", err)
	}
	return nil
}
