// internal/stubapi/server_test.go
package stubapi_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediastore/internal/api"
	"mediastore/internal/cart"
	"mediastore/internal/catalog"
	"mediastore/internal/identity"
	"mediastore/internal/ordering"
	"mediastore/internal/payment"
	"mediastore/internal/stubapi"
)

// staticToken is a fixed-token api.TokenSource for tests.
type staticToken string

func (t staticToken) Token() string { return string(t) }

// env is one running stub with a client for each seeded login.
type env struct {
	baseURL   string
	anonymous *api.Client
	admin     *api.Client
	customer  *api.Client
}

func setup(t *testing.T) *env {
	t.Helper()

	store := stubapi.NewStore()
	require.NoError(t, stubapi.Seed(store))

	server := httptest.NewServer(stubapi.NewServer(store, "test-secret").Handler())
	t.Cleanup(server.Close)

	e := &env{baseURL: server.URL}
	e.anonymous = api.NewClient(server.URL, nil)
	e.admin = e.login(t, "admin", "admin123")
	e.customer = e.login(t, "alice", "alice123")
	return e
}

func (e *env) login(t *testing.T, username, password string) *api.Client {
	t.Helper()
	result, err := identity.NewClient(e.anonymous).Login(context.Background(), username, password)
	require.NoError(t, err)
	return api.NewClient(e.baseURL, staticToken(result.Token))
}

func TestCheckoutFlow(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	products := catalog.NewClient(e.anonymous)
	carts := cart.NewClient(e.customer)
	orders := ordering.NewClient(e.customer)
	payments := payment.NewClient(e.customer)

	// The seed catalog is browsable anonymously.
	sample, err := products.Random(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, sample)

	book, err := products.Get(ctx, 1)
	require.NoError(t, err)
	stockBefore := book.Quantity

	// Two copies into the cart.
	require.NoError(t, carts.AddItem(ctx, book.ID, 2))
	c, err := carts.Get(ctx)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, book.CurrentPrice*2, c.Subtotal)
	assert.InDelta(t, c.Subtotal*1.10, c.TotalWithVAT, 0.01)

	// Place the order.
	order, err := orders.Place(ctx, ordering.DeliveryInfo{
		CustomerName:    "Alice Nguyen",
		CustomerEmail:   "alice@example.com",
		CustomerPhone:   "0900000001",
		ShippingAddress: "1 Tran Hung Dao",
		ShippingCity:    "Hanoi",
	}, ordering.MethodVietQR)
	require.NoError(t, err)
	assert.Equal(t, ordering.StatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, order.Subtotal+order.VATAmount+order.ShippingFee, order.TotalAmount)

	// Stock is reserved at placement and the cart is emptied.
	book, err = products.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, stockBefore-2, book.Quantity)
	c, err = carts.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	// Pay via the mock VietQR callback.
	txn, err := payments.Create(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalAmount, txn.Amount)
	assert.NotEmpty(t, txn.QRString)
	require.NoError(t, payments.ConfirmVietQR(ctx, txn.ProviderTransactionID))

	// Confirming with the wrong reference is rejected.
	assert.Error(t, payments.ConfirmVietQR(ctx, txn.TransactionID))

	mine, err := orders.MyOrders(ctx, 0, 10)
	require.NoError(t, err)
	require.NotEmpty(t, mine.Content)
	assert.Equal(t, ordering.StatusCompleted, mine.Content[0].Status)
}

func TestPayPalFlow(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	carts := cart.NewClient(e.customer)
	orders := ordering.NewClient(e.customer)
	payments := payment.NewClient(e.customer)

	require.NoError(t, carts.AddItem(ctx, 2, 1))
	order, err := orders.Place(ctx, ordering.DeliveryInfo{CustomerName: "Alice Nguyen"}, ordering.MethodPayPal)
	require.NoError(t, err)

	txn, err := payments.Create(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, ordering.MethodPayPal, txn.PaymentMethod)

	paypal, err := payments.CreatePayPal(ctx, order.ID, txn.Amount)
	require.NoError(t, err)
	assert.Contains(t, paypal.ApprovalLink, txn.ProviderTransactionID)

	require.NoError(t, orders.Confirm(ctx, order.ID, txn.ProviderTransactionID))

	mine, err := orders.MyOrders(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, ordering.StatusCompleted, mine.Content[0].Status)
}

func TestOrderReview(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	products := catalog.NewClient(e.anonymous)
	carts := cart.NewClient(e.customer)
	customerOrders := ordering.NewClient(e.customer)
	adminOrders := ordering.NewClient(e.admin)

	cd, err := products.Get(ctx, 2)
	require.NoError(t, err)
	stockBefore := cd.Quantity

	require.NoError(t, carts.AddItem(ctx, cd.ID, 1))
	order, err := customerOrders.Place(ctx, ordering.DeliveryInfo{CustomerName: "Alice Nguyen"}, ordering.MethodVietQR)
	require.NoError(t, err)

	pending, err := adminOrders.Pending(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, pending.Content, 1)
	assert.Equal(t, order.OrderNumber, pending.Content[0].OrderNumber)

	// A reason is mandatory; the check fires before any request is made.
	err = adminOrders.Reject(ctx, order.ID, "")
	assert.ErrorIs(t, err, ordering.ErrEmptyReason)

	require.NoError(t, adminOrders.Reject(ctx, order.ID, "address could not be verified"))

	// Rejection returns the reserved stock.
	cd, err = products.Get(ctx, cd.ID)
	require.NoError(t, err)
	assert.Equal(t, stockBefore, cd.Quantity)

	mine, err := customerOrders.MyOrders(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, ordering.StatusRejected, mine.Content[0].Status)
	assert.Equal(t, "address could not be verified", mine.Content[0].RejectionReason)

	// A rejected order cannot be approved or paid anymore.
	assert.Error(t, adminOrders.Approve(ctx, order.ID))
}

func TestProductLifecycle(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	admin := catalog.NewClient(e.admin)
	public := catalog.NewClient(e.anonymous)

	draft := catalog.NewDraft(catalog.TypeDVD)
	for field, value := range map[string]any{
		"title":         "Seven Samurai",
		"barcode":       "4988104050861",
		"category":      "Movies",
		"originalValue": 200000.0,
		"currentPrice":  250000.0,
		"quantity":      5,
		"weight":        0.1,
		"director":      "Akira Kurosawa",
		"discType":      catalog.DiscBluRay,
		"runtime":       207,
		"studio":        "Toho",
		"language":      "Japanese",
	} {
		require.NoError(t, draft.UpdateField(field, value))
	}
	require.NoError(t, draft.ValidateForSubmit())

	created, err := admin.Create(ctx, draft.BuildPayload())
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusActive, created.Status)
	assert.Equal(t, "admin", created.CreatedBy)

	// A duplicate barcode is refused.
	_, err = admin.Create(ctx, draft.BuildPayload())
	apiErr, ok := api.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 409, apiErr.HTTPStatus)

	// Price changes are journaled with old and new values.
	edit := catalog.EditDraft(created)
	require.NoError(t, edit.UpdateField("currentPrice", 220000.0))
	updated, err := admin.Update(ctx, created.ID, edit.BuildPayload())
	require.NoError(t, err)
	assert.Equal(t, 220000.0, updated.CurrentPrice)
	assert.Equal(t, created.Barcode, updated.Barcode, "barcode is immutable")

	history, err := admin.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "UPDATED", history[0].ActionType)
	assert.Equal(t, "250000", history[0].OldValue)
	assert.Equal(t, "220000", history[0].NewValue)
	assert.Equal(t, "ADDED", history[1].ActionType)

	// Deactivation keeps the record but hides it from the storefront sample.
	require.NoError(t, admin.Deactivate(ctx, created.ID))
	got, err := public.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusDeactivated, got.Status)

	sample, err := public.Random(ctx, 100)
	require.NoError(t, err)
	for _, p := range sample {
		assert.NotEqual(t, created.ID, p.ID)
	}

	// Reactivation is a full resubmission with ACTIVE status.
	revive := catalog.EditDraft(got)
	revive.Status = catalog.StatusActive
	updated, err = admin.Update(ctx, created.ID, revive.BuildPayload())
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusActive, updated.Status)
}

func TestServerEnforcesPriceBand(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	// A payload assembled without the local validation step is still refused.
	draft := catalog.NewDraft(catalog.TypeBook)
	require.NoError(t, draft.UpdateField("title", "Overpriced"))
	require.NoError(t, draft.UpdateField("barcode", "0000000000001"))
	require.NoError(t, draft.UpdateField("originalValue", 100000.0))
	require.NoError(t, draft.UpdateField("currentPrice", 29000.0))

	_, err := catalog.NewClient(e.admin).Create(ctx, draft.BuildPayload())
	apiErr, ok := api.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.HTTPStatus)
}

func TestNegativePaginationParamsFallBack(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	products := catalog.NewClient(e.anonymous)

	// Out-of-range paging must degrade to the defaults, never blow up the
	// handler.
	result, err := products.Search(ctx, "", "", -1, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Number)
	assert.NotEmpty(t, result.Content)

	result, err = products.Search(ctx, "", "", 0, -5)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Content)

	sample, err := products.Random(ctx, -1)
	require.NoError(t, err)
	assert.NotEmpty(t, sample, "a negative count falls back to the default sample size")
}

func TestAuthorization(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	draft := catalog.NewDraft(catalog.TypeBook)

	// Catalog writes need a token with the ADMIN role.
	_, err := catalog.NewClient(e.anonymous).Create(ctx, draft.BuildPayload())
	assert.True(t, api.IsUnauthorized(err))

	_, err = catalog.NewClient(e.customer).Create(ctx, draft.BuildPayload())
	assert.True(t, api.IsUnauthorized(err))

	_, err = ordering.NewClient(e.customer).Pending(ctx, 0, 10)
	assert.True(t, api.IsUnauthorized(err))

	// A garbage token is a plain 401.
	bogus := api.NewClient(e.baseURL, staticToken("not-a-jwt"))
	_, err = cart.NewClient(bogus).Get(ctx)
	assert.True(t, api.IsUnauthorized(err))
}

func TestAccountManagement(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	anonymous := identity.NewClient(e.anonymous)
	adminUsers := identity.NewClient(e.admin)

	// Register and log in as a fresh customer.
	require.NoError(t, anonymous.Register(ctx, identity.Registration{
		Username: "bob", Email: "bob@example.com", Password: "bob-secret",
		FullName: "Bob Tran", PhoneNumber: "0900000002",
	}))
	result, err := anonymous.Login(ctx, "bob", "bob-secret")
	require.NoError(t, err)
	assert.Equal(t, []string{"CUSTOMER"}, result.User.Roles, "only the first account is an admin")

	// Duplicate usernames are refused.
	err = anonymous.Register(ctx, identity.Registration{Username: "bob", Password: "x"})
	assert.Error(t, err)

	// Change the password; the old one stops working.
	bob := api.NewClient(e.baseURL, staticToken(result.Token))
	require.NoError(t, identity.NewClient(bob).ChangePassword(ctx, "bob-secret", "new-secret"))
	_, err = anonymous.Login(ctx, "bob", "bob-secret")
	assert.Error(t, err)
	_, err = anonymous.Login(ctx, "bob", "new-secret")
	require.NoError(t, err)

	// Block the account; login fails until it is unblocked.
	users, err := adminUsers.Users(ctx, 0, 50)
	require.NoError(t, err)
	var bobID int
	for _, u := range users.Content {
		if u.Username == "bob" {
			bobID = u.ID
		}
	}
	require.NotZero(t, bobID)

	require.NoError(t, adminUsers.Block(ctx, bobID))
	_, err = anonymous.Login(ctx, "bob", "new-secret")
	assert.Error(t, err)

	require.NoError(t, adminUsers.Unblock(ctx, bobID))
	_, err = anonymous.Login(ctx, "bob", "new-secret")
	assert.NoError(t, err)
}
