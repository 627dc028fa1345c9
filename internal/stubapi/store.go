// internal/stubapi/store.go
package stubapi

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mediastore/internal/cart"
	"mediastore/internal/catalog"
	"mediastore/internal/identity"
	"mediastore/internal/ordering"
	"mediastore/internal/payment"
)

// Pricing constants for the mock backend. The real backend owns these
// numbers; the stub only needs plausible ones so the consoles can exercise
// the full checkout flow.
const (
	vatRate         = 0.10
	shippingBaseFee = 20000
	shippingPerKilo = 5000
)

// credential is a stored argon2 hash plus its salt, per user.
type credential struct {
	userID       int
	passwordHash string
	salt         string
}

// Store holds the whole mock backend state in memory. It plays the role the
// real backend's database and stock ledger play; nothing survives a restart,
// which is the point of a stub.
type Store struct {
	mu sync.Mutex

	nextUserID    int
	nextProductID int
	nextOrderID   int
	nextHistoryID int

	users        map[int]*identity.User
	credentials  map[string]*credential // keyed by username
	products     map[int]*catalog.Product
	history      map[int][]catalog.HistoryEntry // keyed by product id
	carts        map[int]map[int]int            // user id -> product id -> quantity
	orders       map[int]*ordering.Order
	orderOwners  map[int]int // order id -> user id
	transactions map[string]*payment.Transaction // keyed by provider transaction id
	txnByOrder   map[int]*payment.Transaction
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		nextUserID:    1,
		nextProductID: 1,
		nextOrderID:   1,
		nextHistoryID: 1,
		users:         make(map[int]*identity.User),
		credentials:   make(map[string]*credential),
		products:      make(map[int]*catalog.Product),
		history:       make(map[int][]catalog.HistoryEntry),
		carts:         make(map[int]map[int]int),
		orders:        make(map[int]*ordering.Order),
		orderOwners:   make(map[int]int),
		transactions:  make(map[string]*payment.Transaction),
		txnByOrder:    make(map[int]*payment.Transaction),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// --- users ---

// CreateUser registers an account with a hashed password. The first account
// ever created gets the ADMIN role so a fresh stub is immediately usable.
func (s *Store) CreateUser(reg identity.Registration) (*identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.credentials[reg.Username]; exists {
		return nil, fmt.Errorf("username %q is already taken", reg.Username)
	}

	hash, salt, err := hashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roles := []string{"CUSTOMER"}
	if len(s.users) == 0 {
		roles = append(roles, identity.RoleAdmin)
	}

	user := &identity.User{
		ID:       s.nextUserID,
		Username: reg.Username,
		Email:    reg.Email,
		FullName: reg.FullName,
		Status:   identity.StatusActive,
		Roles:    roles,
	}
	s.nextUserID++
	s.users[user.ID] = user
	s.credentials[reg.Username] = &credential{userID: user.ID, passwordHash: hash, salt: salt}
	return user, nil
}

// Authenticate verifies username/password and returns the user. Blocked
// accounts fail even with correct credentials.
func (s *Store) Authenticate(username, password string) (*identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.credentials[username]
	if !ok {
		return nil, fmt.Errorf("unknown username or wrong password")
	}
	match, err := verifyPassword(password, cred.salt, cred.passwordHash)
	if err != nil || !match {
		return nil, fmt.Errorf("unknown username or wrong password")
	}
	user := s.users[cred.userID]
	if user.Status == identity.StatusBlocked {
		return nil, fmt.Errorf("account is blocked")
	}
	return user, nil
}

// ChangePassword swaps a user's credential after checking the old password.
func (s *Store) ChangePassword(userID int, oldPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %d not found", userID)
	}
	cred := s.credentials[user.Username]
	match, err := verifyPassword(oldPassword, cred.salt, cred.passwordHash)
	if err != nil || !match {
		return fmt.Errorf("old password does not match")
	}
	hash, salt, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	cred.passwordHash = hash
	cred.salt = salt
	return nil
}

// User returns an account by id.
func (s *Store) User(id int) (*identity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// Users returns all accounts ordered by id.
func (s *Store) Users() []identity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]identity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetUserStatus blocks or unblocks an account.
func (s *Store) SetUserStatus(id int, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	user.Status = status
	return nil
}

// --- products ---

// CreateProduct stores a new record, assigns audit fields and journals the
// creation.
func (s *Store) CreateProduct(p catalog.Product, createdBy string) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.products {
		if existing.Barcode == p.Barcode {
			return nil, fmt.Errorf("barcode %q already exists", p.Barcode)
		}
	}

	p.ID = s.nextProductID
	s.nextProductID++
	if p.Status == "" {
		p.Status = catalog.StatusActive
	}
	p.CreatedBy = createdBy
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	s.products[p.ID] = &p
	s.journal(p.ID, "ADDED", createdBy, fmt.Sprintf("Created product %q", p.Title), "", "")
	return &p, nil
}

// UpdateProduct replaces the stored record wholesale, keeping the immutable
// and audit fields, and journals the change.
func (s *Store) UpdateProduct(id int, p catalog.Product, updatedBy string) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d not found", id)
	}

	// Barcode and productType are fixed at creation.
	p.ID = id
	p.Barcode = existing.Barcode
	p.ProductType = existing.ProductType
	p.CreatedBy = existing.CreatedBy
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = now()
	if p.Status == "" {
		p.Status = existing.Status
	}

	oldPrice := existing.CurrentPrice
	s.products[id] = &p
	if oldPrice != p.CurrentPrice {
		s.journal(id, "UPDATED", updatedBy, "Changed current price",
			fmt.Sprintf("%g", oldPrice), fmt.Sprintf("%g", p.CurrentPrice))
	} else {
		s.journal(id, "UPDATED", updatedBy, fmt.Sprintf("Updated product %q", p.Title), "", "")
	}
	return &p, nil
}

// DeactivateProduct flips a product to DEACTIVATED; the record and its stock
// stay in place.
func (s *Store) DeactivateProduct(id int, by string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("product %d not found", id)
	}
	old := p.Status
	p.Status = catalog.StatusDeactivated
	p.UpdatedAt = now()
	s.journal(id, "DELETED", by, "Deactivated product", old, catalog.StatusDeactivated)
	return nil
}

// Product returns a record by id.
func (s *Store) Product(id int) (*catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, false
	}
	clone := *p
	return &clone, true
}

// SearchProducts filters by free-text query (title, barcode, category) and
// category, ordered by id.
func (s *Store) SearchProducts(query, category string) []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(query)
	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Barcode), query) &&
			!strings.Contains(strings.ToLower(p.Category), query) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RandomProducts returns up to count active products. The stub does not
// bother shuffling; callers only need a storefront sample.
func (s *Store) RandomProducts(count int) []catalog.Product {
	if count <= 0 {
		return []catalog.Product{}
	}
	all := s.SearchProducts("", "")
	out := make([]catalog.Product, 0, count)
	for _, p := range all {
		if p.Status != catalog.StatusActive {
			continue
		}
		out = append(out, p)
		if len(out) == count {
			break
		}
	}
	return out
}

// History returns a product's journal, newest first.
func (s *Store) History(productID int) []catalog.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.history[productID]
	out := make([]catalog.HistoryEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// journal appends a history entry. Caller must hold s.mu.
func (s *Store) journal(productID int, action, by, description, oldValue, newValue string) {
	entry := catalog.HistoryEntry{
		ID:          s.nextHistoryID,
		ActionType:  action,
		ActionDate:  now(),
		PerformedBy: by,
		Description: description,
		OldValue:    oldValue,
		NewValue:    newValue,
	}
	s.nextHistoryID++
	s.history[productID] = append(s.history[productID], entry)
}

// --- cart ---

// Cart materializes a user's cart with current prices, stock and totals.
func (s *Store) Cart(userID int) *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked(userID)
}

func (s *Store) cartLocked(userID int) *cart.Cart {
	lines := s.carts[userID]
	c := &cart.Cart{ID: userID, Items: []cart.Item{}}

	ids := make([]int, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, productID := range ids {
		qty := lines[productID]
		p, ok := s.products[productID]
		if !ok {
			continue
		}
		available := p.Status == catalog.StatusActive && p.Quantity >= qty
		item := cart.Item{
			ProductID:      p.ID,
			ProductTitle:   p.Title,
			ProductType:    string(p.ProductType),
			Quantity:       qty,
			Price:          p.CurrentPrice,
			Subtotal:       p.CurrentPrice * float64(qty),
			AvailableStock: p.Quantity,
			Available:      &available,
		}
		c.Items = append(c.Items, item)
		c.Subtotal += item.Subtotal
		c.TotalWeight += p.Weight * float64(qty)
	}
	c.TotalWithVAT = c.Subtotal * (1 + vatRate)
	return c
}

// AddToCart puts quantity units of a product into the user's cart, bounded
// by the remaining stock.
func (s *Store) AddToCart(userID, productID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	p, ok := s.products[productID]
	if !ok || p.Status != catalog.StatusActive {
		return fmt.Errorf("product %d is not available", productID)
	}
	if s.carts[userID] == nil {
		s.carts[userID] = make(map[int]int)
	}
	if s.carts[userID][productID]+quantity > p.Quantity {
		return fmt.Errorf("only %d units of %q in stock", p.Quantity, p.Title)
	}
	s.carts[userID][productID] += quantity
	return nil
}

// UpdateCartItem sets the quantity of an existing line.
func (s *Store) UpdateCartItem(userID, productID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	if _, ok := lines[productID]; !ok {
		return fmt.Errorf("product %d is not in the cart", productID)
	}
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	p := s.products[productID]
	if p != nil && quantity > p.Quantity {
		return fmt.Errorf("only %d units of %q in stock", p.Quantity, p.Title)
	}
	lines[productID] = quantity
	return nil
}

// RemoveCartItem deletes a line.
func (s *Store) RemoveCartItem(userID, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	if _, ok := lines[productID]; !ok {
		return fmt.Errorf("product %d is not in the cart", productID)
	}
	delete(lines, productID)
	return nil
}

// --- orders ---

// PlaceOrder prices the user's cart, reserves stock, empties the cart and
// stores the order in PENDING state.
func (s *Store) PlaceOrder(userID int, info ordering.DeliveryInfo, paymentMethod string) (*ordering.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartLocked(userID)
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}
	for _, item := range c.Items {
		p := s.products[item.ProductID]
		if p == nil || p.Status != catalog.StatusActive || p.Quantity < item.Quantity {
			return nil, fmt.Errorf("product %q no longer has enough stock", item.ProductTitle)
		}
	}
	// Reserve stock at placement; rejection returns it.
	for _, item := range c.Items {
		p := s.products[item.ProductID]
		p.Quantity -= item.Quantity
		s.journal(p.ID, "STOCK_ADJUSTED", info.CustomerName,
			fmt.Sprintf("Reserved %d units for a new order", item.Quantity),
			fmt.Sprintf("%d", p.Quantity+item.Quantity), fmt.Sprintf("%d", p.Quantity))
	}

	vat := c.Subtotal * vatRate
	shipping := shippingBaseFee + shippingPerKilo*math.Ceil(c.TotalWeight)
	order := &ordering.Order{
		ID:            s.nextOrderID,
		OrderNumber:   fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.NewString()[:8])),
		Status:        ordering.StatusPending,
		Items:         c.Items,
		Subtotal:      c.Subtotal,
		VATAmount:     vat,
		ShippingFee:   shipping,
		TotalAmount:   c.Subtotal + vat + shipping,
		PaymentMethod: paymentMethod,
		DeliveryInfo:  &info,
		CreatedAt:     now(),
	}
	s.nextOrderID++
	s.orders[order.ID] = order
	s.orderOwners[order.ID] = userID
	delete(s.carts, userID)
	return order, nil
}

// OrdersByUser lists a user's orders, newest first.
func (s *Store) OrdersByUser(userID int) []ordering.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []ordering.Order{}
	for id, order := range s.orders {
		if s.orderOwners[id] == userID {
			out = append(out, *order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// PendingOrders lists orders awaiting an admin decision, oldest first.
func (s *Store) PendingOrders() []ordering.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []ordering.Order{}
	for _, order := range s.orders {
		if order.Status == ordering.StatusPending {
			out = append(out, *order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ApproveOrder moves a pending order to APPROVED.
func (s *Store) ApproveOrder(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("order %d not found", id)
	}
	if order.Status != ordering.StatusPending {
		return fmt.Errorf("order %d is not pending", id)
	}
	order.Status = ordering.StatusApproved
	return nil
}

// RejectOrder refuses a pending order and returns the reserved stock.
func (s *Store) RejectOrder(id int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reason == "" {
		return fmt.Errorf("rejection reason is required")
	}
	order, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("order %d not found", id)
	}
	if order.Status != ordering.StatusPending {
		return fmt.Errorf("order %d is not pending", id)
	}
	order.Status = ordering.StatusRejected
	order.RejectionReason = reason
	for _, item := range order.Items {
		if p := s.products[item.ProductID]; p != nil {
			p.Quantity += item.Quantity
		}
	}
	return nil
}

// CompleteOrder marks an order paid.
func (s *Store) CompleteOrder(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeOrderLocked(id)
}

func (s *Store) completeOrderLocked(id int) error {
	order, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("order %d not found", id)
	}
	if order.Status == ordering.StatusRejected {
		return fmt.Errorf("order %d was rejected", id)
	}
	order.Status = ordering.StatusCompleted
	return nil
}

// --- payments ---

// CreateTransaction opens a mock payment transaction for an order.
func (s *Store) CreateTransaction(orderID int) (*payment.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %d not found", orderID)
	}
	if existing, ok := s.txnByOrder[orderID]; ok {
		return existing, nil
	}

	txn := &payment.Transaction{
		TransactionID:         uuid.NewString(),
		ProviderTransactionID: fmt.Sprintf("VQR-%s", strings.ToUpper(uuid.NewString()[:12])),
		OrderID:               orderID,
		PaymentMethod:         order.PaymentMethod,
		Amount:                order.TotalAmount,
		QRString:              fmt.Sprintf("00020101MEDIASTORE|%s|%0.f", order.OrderNumber, order.TotalAmount),
	}
	s.transactions[txn.ProviderTransactionID] = txn
	s.txnByOrder[orderID] = txn
	return txn, nil
}

// ConfirmTransaction processes the provider callback: it completes the
// transaction's order. Unknown references are rejected, which is exactly what
// happens when a caller confuses transactionId with providerTransactionId.
func (s *Store) ConfirmTransaction(providerTransactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[providerTransactionID]
	if !ok {
		return fmt.Errorf("unknown transaction reference %q", providerTransactionID)
	}
	return s.completeOrderLocked(txn.OrderID)
}
