package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracketo/storefront/internal/cart"
	"github.com/tracketo/storefront/internal/catalog"
	"github.com/tracketo/storefront/internal/order"
	"github.com/tracketo/storefront/internal/session"
	"github.com/tracketo/storefront/internal/storage"
)

func item(productID, vendorID string, price float64, quantity int) cart.Item {
	return cart.Item{
		Product: catalog.Product{
			ID:       productID,
			Name:     "Product " + productID,
			Price:    price,
			VendorID: vendorID,
			Stock:    10,
		},
		Quantity: quantity,
	}
}

func details() order.CustomerDetails {
	return order.CustomerDetails{
		Name:    "Buyer",
		Email:   "buyer@x.com",
		Phone:   "01711111111",
		Address: "House 7, Mohammadpur, Dhaka",
	}
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		input      order.CreateInput
		wantErr    bool
		wantErrIs  error
		wantUser   string
		wantVendor string
		wantTotal  float64
	}{
		{
			name: "single_item",
			input: order.CreateInput{
				UserID:          "u-1",
				Items:           []cart.Item{item("p1", "v-1", 120, 2)},
				CustomerDetails: details(),
			},
			wantUser:   "u-1",
			wantVendor: "v-1",
			wantTotal:  240,
		},
		{
			name: "vendor_taken_from_first_item",
			input: order.CreateInput{
				UserID: "u-1",
				Items: []cart.Item{
					item("p1", "v-1", 100, 1),
					item("p2", "v-2", 50, 2),
				},
				CustomerDetails: details(),
			},
			wantUser:   "u-1",
			wantVendor: "v-1",
			wantTotal:  200,
		},
		{
			name: "empty_user_defaults_to_guest",
			input: order.CreateInput{
				Items:           []cart.Item{item("p1", "v-1", 10, 1)},
				CustomerDetails: details(),
			},
			wantUser:   order.GuestUserID,
			wantVendor: "v-1",
			wantTotal:  10,
		},
		{
			name:      "no_items",
			input:     order.CreateInput{UserID: "u-1", CustomerDetails: details()},
			wantErr:   true,
			wantErrIs: order.ErrNoItems,
		},
		{
			name: "non_positive_quantity",
			input: order.CreateInput{
				UserID:          "u-1",
				Items:           []cart.Item{item("p1", "v-1", 10, 0)},
				CustomerDetails: details(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := order.NewService(storage.NewMemory(), 0)

			ord, err := svc.Create(context.Background(), tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrIs != nil {
					assert.True(t, errors.Is(err, tt.wantErrIs))
				}
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, ord.ID)
			assert.Equal(t, order.StatusPending, ord.Status)
			assert.Equal(t, tt.wantUser, ord.UserID)
			assert.Equal(t, tt.wantVendor, ord.VendorID)
			assert.InDelta(t, tt.wantTotal, ord.Total, 1e-9)
			assert.False(t, ord.CreatedAt.IsZero())
		})
	}
}

func TestService_Create_DiscountedTotal(t *testing.T) {
	svc := order.NewService(storage.NewMemory(), 0)

	discounted := item("p1", "v-1", 100, 2)
	discount := 80.0
	discounted.DiscountPrice = &discount

	ord, err := svc.Create(context.Background(), order.CreateInput{
		UserID: "u-1", Items: []cart.Item{discounted}, CustomerDetails: details(),
	})
	require.NoError(t, err)
	assert.InDelta(t, 160, ord.Total, 1e-9)
}

func TestService_Create_IdenticalInputsMakeDistinctOrders(t *testing.T) {
	ctx := context.Background()
	svc := order.NewService(storage.NewMemory(), 0)

	input := order.CreateInput{
		UserID:          "u-1",
		Items:           []cart.Item{item("p1", "v-1", 120, 2)},
		CustomerDetails: details(),
	}

	first, err := svc.Create(ctx, input)
	require.NoError(t, err)
	second, err := svc.Create(ctx, input)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	// Both are independently retrievable; nothing is deduplicated.
	for _, id := range []string{first.ID, second.ID} {
		found, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, found.ID)
	}
}

func TestService_Get_NotFound(t *testing.T) {
	svc := order.NewService(storage.NewMemory(), 0)

	_, err := svc.Get(context.Background(), "ORD-MISSING")
	assert.True(t, errors.Is(err, order.ErrNotFound))
}

func TestService_ListForActor(t *testing.T) {
	ctx := context.Background()
	svc := order.NewService(storage.NewMemory(), 0)

	mk := func(userID string, items ...cart.Item) *order.Order {
		ord, err := svc.Create(ctx, order.CreateInput{UserID: userID, Items: items, CustomerDetails: details()})
		require.NoError(t, err)
		return ord
	}

	buyers := mk("u-1", item("p1", "v-1", 10, 1))
	mk("u-2", item("p2", "v-2", 20, 1))
	mixed := mk("u-2", item("p3", "v-1", 30, 1), item("p4", "v-2", 40, 1))

	all, err := svc.ListForActor(ctx, session.RoleAdmin, "whoever")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	vendor1, err := svc.ListForActor(ctx, session.RoleVendor, "v-1")
	require.NoError(t, err)
	require.Len(t, vendor1, 2)
	assert.Equal(t, buyers.ID, vendor1[0].ID)
	assert.Equal(t, mixed.ID, vendor1[1].ID)

	user2, err := svc.ListForActor(ctx, session.RoleUser, "u-2")
	require.NoError(t, err)
	assert.Len(t, user2, 2)

	guest, err := svc.ListForActor(ctx, session.RoleGuest, "")
	require.NoError(t, err)
	assert.Empty(t, guest)

	// Admin view is a superset of every scoped view.
	ids := make(map[string]bool, len(all))
	for _, ord := range all {
		ids[ord.ID] = true
	}
	for _, scoped := range [][]order.Order{vendor1, user2} {
		for _, ord := range scoped {
			assert.True(t, ids[ord.ID])
		}
	}
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc := order.NewService(storage.NewMemory(), 0)

	ord, err := svc.Create(ctx, order.CreateInput{
		UserID: "u-1", Items: []cart.Item{item("p1", "v-1", 10, 1)}, CustomerDetails: details(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, ord.ID, order.StatusOnTheWay))

	updated, err := svc.Get(ctx, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusOnTheWay, updated.Status)

	// Any known status may follow any other, including going backwards.
	require.NoError(t, svc.UpdateStatus(ctx, ord.ID, order.StatusPending))

	// Setting the current status again is a no-op, not an error.
	require.NoError(t, svc.UpdateStatus(ctx, ord.ID, order.StatusPending))

	err = svc.UpdateStatus(ctx, ord.ID, order.Status("SHIPPED"))
	assert.True(t, errors.Is(err, order.ErrInvalidStatus))

	err = svc.UpdateStatus(ctx, "ORD-MISSING", order.StatusConfirm)
	assert.True(t, errors.Is(err, order.ErrNotFound))
}

func TestService_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	first := order.NewService(store, 0)
	created, err := first.Create(ctx, order.CreateInput{
		UserID: "u-1", Items: []cart.Item{item("p1", "v-1", 10, 2)}, CustomerDetails: details(),
	})
	require.NoError(t, err)

	// A fresh service over the same store sees the identical record.
	second := order.NewService(store, 0)
	reloaded, err := second.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(*created, *reloaded))
}

func TestService_CorruptedOrdersSurfaceError(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	require.NoError(t, store.Put(ctx, storage.Namespace, "orders", []byte(`[{broken`)))

	svc := order.NewService(store, 0)

	_, err := svc.ListForActor(ctx, session.RoleAdmin, "")
	assert.True(t, errors.Is(err, storage.ErrCorrupted))
}
