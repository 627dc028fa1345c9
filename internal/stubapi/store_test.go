// internal/stubapi/store_test.go
package stubapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediastore/internal/catalog"
	"mediastore/internal/identity"
	"mediastore/internal/ordering"
)

func newUser(t *testing.T, s *Store, username string) *identity.User {
	t.Helper()
	user, err := s.CreateUser(identity.Registration{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
		FullName: username,
	})
	require.NoError(t, err)
	return user
}

func newProduct(t *testing.T, s *Store, title, barcode string, price, weight float64, stock int) *catalog.Product {
	t.Helper()
	p, err := s.CreateProduct(catalog.Product{
		Title:         title,
		Barcode:       barcode,
		ProductType:   catalog.TypeBook,
		OriginalValue: price,
		CurrentPrice:  price,
		Quantity:      stock,
		Weight:        weight,
	}, "admin")
	require.NoError(t, err)
	return p
}

func TestFirstUserGetsAdminRole(t *testing.T) {
	s := NewStore()

	first := newUser(t, s, "first")
	second := newUser(t, s, "second")

	assert.Contains(t, first.Roles, identity.RoleAdmin)
	assert.NotContains(t, second.Roles, identity.RoleAdmin)
}

func TestOrderPricing(t *testing.T) {
	s := NewStore()
	user := newUser(t, s, "alice")
	p := newProduct(t, s, "Heavy Book", "B1", 100000, 1.2, 10)

	require.NoError(t, s.AddToCart(user.ID, p.ID, 2))

	order, err := s.PlaceOrder(user.ID, ordering.DeliveryInfo{CustomerName: "Alice"}, ordering.MethodVietQR)
	require.NoError(t, err)

	// subtotal 200000, VAT 10%, shipping 20000 base + 5000 per started kilo
	// of the 2.4kg total.
	assert.Equal(t, 200000.0, order.Subtotal)
	assert.Equal(t, 20000.0, order.VATAmount)
	assert.Equal(t, 35000.0, order.ShippingFee)
	assert.Equal(t, 255000.0, order.TotalAmount)
}

func TestCartIsBoundedByStock(t *testing.T) {
	s := NewStore()
	user := newUser(t, s, "alice")
	p := newProduct(t, s, "Scarce", "B2", 50000, 0.5, 3)

	require.NoError(t, s.AddToCart(user.ID, p.ID, 2))
	assert.Error(t, s.AddToCart(user.ID, p.ID, 2), "cumulative quantity exceeds stock")
	assert.Error(t, s.UpdateCartItem(user.ID, p.ID, 4))
	require.NoError(t, s.UpdateCartItem(user.ID, p.ID, 3))

	assert.Error(t, s.AddToCart(user.ID, p.ID, 0))
	assert.Error(t, s.UpdateCartItem(user.ID, 999, 1))
	assert.Error(t, s.RemoveCartItem(user.ID, 999))
}

func TestDeactivatedProductCannotBeAdded(t *testing.T) {
	s := NewStore()
	user := newUser(t, s, "alice")
	p := newProduct(t, s, "Gone", "B3", 50000, 0.5, 3)

	require.NoError(t, s.DeactivateProduct(p.ID, "admin"))
	assert.Error(t, s.AddToCart(user.ID, p.ID, 1))
}

func TestPlaceOrderReservesAndRejectRestores(t *testing.T) {
	s := NewStore()
	user := newUser(t, s, "alice")
	p := newProduct(t, s, "Reserved", "B4", 50000, 0.5, 5)

	require.NoError(t, s.AddToCart(user.ID, p.ID, 3))
	order, err := s.PlaceOrder(user.ID, ordering.DeliveryInfo{CustomerName: "Alice"}, ordering.MethodVietQR)
	require.NoError(t, err)

	got, _ := s.Product(p.ID)
	assert.Equal(t, 2, got.Quantity)

	// The stock movement is journaled.
	history := s.History(p.ID)
	require.NotEmpty(t, history)
	assert.Equal(t, "STOCK_ADJUSTED", history[0].ActionType)

	require.NoError(t, s.RejectOrder(order.ID, "out of delivery area"))
	got, _ = s.Product(p.ID)
	assert.Equal(t, 5, got.Quantity)

	// Placing with an empty cart fails.
	_, err = s.PlaceOrder(user.ID, ordering.DeliveryInfo{}, ordering.MethodVietQR)
	assert.Error(t, err)
}

func TestRejectRequiresReason(t *testing.T) {
	s := NewStore()
	user := newUser(t, s, "alice")
	p := newProduct(t, s, "Any", "B5", 50000, 0.5, 5)

	require.NoError(t, s.AddToCart(user.ID, p.ID, 1))
	order, err := s.PlaceOrder(user.ID, ordering.DeliveryInfo{CustomerName: "Alice"}, ordering.MethodVietQR)
	require.NoError(t, err)

	assert.Error(t, s.RejectOrder(order.ID, ""))
	assert.Equal(t, ordering.StatusPending, order.Status)
}

func TestCreateTransactionIsIdempotentPerOrder(t *testing.T) {
	s := NewStore()
	user := newUser(t, s, "alice")
	p := newProduct(t, s, "Paid", "B6", 50000, 0.5, 5)

	require.NoError(t, s.AddToCart(user.ID, p.ID, 1))
	order, err := s.PlaceOrder(user.ID, ordering.DeliveryInfo{CustomerName: "Alice"}, ordering.MethodVietQR)
	require.NoError(t, err)

	first, err := s.CreateTransaction(order.ID)
	require.NoError(t, err)
	second, err := s.CreateTransaction(order.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ProviderTransactionID, second.ProviderTransactionID)

	// Confirmation is keyed by the provider reference only.
	assert.Error(t, s.ConfirmTransaction(first.TransactionID))
	require.NoError(t, s.ConfirmTransaction(first.ProviderTransactionID))

	orders := s.OrdersByUser(user.ID)
	require.Len(t, orders, 1)
	assert.Equal(t, ordering.StatusCompleted, orders[0].Status)
}

func TestRandomProductsClampsCount(t *testing.T) {
	s := NewStore()
	newProduct(t, s, "Only One", "B7", 50000, 0.5, 1)

	assert.Empty(t, s.RandomProducts(-3))
	assert.Empty(t, s.RandomProducts(0))
	assert.Len(t, s.RandomProducts(10), 1)
}

func TestPasswordHashing(t *testing.T) {
	hash, salt, err := hashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEmpty(t, salt)

	match, err := verifyPassword("correct horse battery staple", salt, hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = verifyPassword("wrong password", salt, hash)
	require.NoError(t, err)
	assert.False(t, match)

	// Two hashes of the same password differ because the salt is random.
	hash2, salt2, err := hashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
	assert.NotEqual(t, salt, salt2)
}
