// internal/stubapi/handlers.go
package stubapi

import (
	"encoding/json"
	"net/http"

	"mediastore/internal/catalog"
	"mediastore/internal/identity"
	"mediastore/internal/ordering"
)

// --- auth & users ---

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg identity.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	if reg.Username == "" || reg.Password == "" || reg.Email == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "username, email and password are required")
		return
	}

	user, err := s.store.CreateUser(reg)
	if err != nil {
		writeError(w, http.StatusConflict, codeConflict, err.Error())
		return
	}
	writeOK(w, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow() {
		writeError(w, http.StatusTooManyRequests, codeBadRequest, "too many login attempts")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}

	user, err := s.store.Authenticate(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, err.Error())
		return
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeBadRequest, "failed to issue token")
		return
	}
	writeOK(w, identity.LoginResult{Token: token, User: *user})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	if err := s.store.ChangePassword(claimsFrom(r).UserID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeOK(w, nil)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 50)
	writeOK(w, pageOf(s.store.Users(), page, size))
}

func (s *Server) handleBlockUser(w http.ResponseWriter, r *http.Request) {
	s.setUserStatus(w, r, identity.StatusBlocked)
}

func (s *Server) handleUnblockUser(w http.ResponseWriter, r *http.Request) {
	s.setUserStatus(w, r, identity.StatusActive)
}

func (s *Server) setUserStatus(w http.ResponseWriter, r *http.Request, status string) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid user id")
		return
	}
	if err := s.store.SetUserStatus(id, status); err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
		return
	}
	writeOK(w, nil)
}

// --- products ---

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	if !p.ProductType.Valid() {
		writeError(w, http.StatusBadRequest, codeBadRequest, "unknown productType")
		return
	}
	if p.Title == "" || p.Barcode == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "title and barcode are required")
		return
	}
	if p.CurrentPrice < 0.3*p.OriginalValue || p.CurrentPrice > 1.5*p.OriginalValue {
		writeError(w, http.StatusBadRequest, codeBadRequest, "currentPrice outside the allowed price band")
		return
	}

	created, err := s.store.CreateProduct(p, claimsFrom(r).Username)
	if err != nil {
		writeError(w, http.StatusConflict, codeConflict, err.Error())
		return
	}
	writeOK(w, created)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid product id")
		return
	}
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	if p.CurrentPrice < 0.3*p.OriginalValue || p.CurrentPrice > 1.5*p.OriginalValue {
		writeError(w, http.StatusBadRequest, codeBadRequest, "currentPrice outside the allowed price band")
		return
	}

	updated, err := s.store.UpdateProduct(id, p, claimsFrom(r).Username)
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
		return
	}
	writeOK(w, updated)
}

func (s *Server) handleDeactivateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid product id")
		return
	}
	if err := s.store.DeactivateProduct(id, claimsFrom(r).Username); err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
		return
	}
	writeOK(w, nil)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid product id")
		return
	}
	product, ok := s.store.Product(id)
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "product not found")
		return
	}
	writeOK(w, product)
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	category := r.URL.Query().Get("category")
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 20)

	writeOK(w, pageOf(s.store.SearchProducts(query, category), page, size))
}

func (s *Server) handleRandomProducts(w http.ResponseWriter, r *http.Request) {
	writeOK(w, s.store.RandomProducts(queryInt(r, "count", 20)))
}

func (s *Server) handleProductHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid product id")
		return
	}
	writeOK(w, s.store.History(id))
}

// --- cart ---

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	writeOK(w, s.store.Cart(claimsFrom(r).UserID))
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	if err := s.store.AddToCart(claimsFrom(r).UserID, req.ProductID, req.Quantity); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeOK(w, s.store.Cart(claimsFrom(r).UserID))
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt(r, "productId")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid product id")
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	if err := s.store.UpdateCartItem(claimsFrom(r).UserID, productID, req.Quantity); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeOK(w, s.store.Cart(claimsFrom(r).UserID))
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathInt(r, "productId")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid product id")
		return
	}
	if err := s.store.RemoveCartItem(claimsFrom(r).UserID, productID); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeOK(w, s.store.Cart(claimsFrom(r).UserID))
}

// --- orders ---

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeliveryInfo  ordering.DeliveryInfo `json:"deliveryInfo"`
		PaymentMethod string                `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	if req.PaymentMethod != ordering.MethodVietQR && req.PaymentMethod != ordering.MethodPayPal {
		writeError(w, http.StatusBadRequest, codeBadRequest, "unsupported payment method")
		return
	}

	order, err := s.store.PlaceOrder(claimsFrom(r).UserID, req.DeliveryInfo, req.PaymentMethod)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeOK(w, order)
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 20)
	writeOK(w, pageOf(s.store.OrdersByUser(claimsFrom(r).UserID), page, size))
}

func (s *Server) handlePendingOrders(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 20)
	writeOK(w, pageOf(s.store.PendingOrders(), page, size))
}

func (s *Server) handleApproveOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid order id")
		return
	}
	if err := s.store.ApproveOrder(id); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeOK(w, nil)
}

func (s *Server) handleRejectOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid order id")
		return
	}
	var req struct {
		RejectionReason string `json:"rejectionReason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	if err := s.store.RejectOrder(id, req.RejectionReason); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeOK(w, nil)
}

func (s *Server) handleConfirmOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid order id")
		return
	}
	if err := s.store.CompleteOrder(id); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeOK(w, nil)
}

// --- payments ---

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID int `json:"orderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	txn, err := s.store.CreateTransaction(req.OrderID)
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
		return
	}
	writeOK(w, txn)
}

func (s *Server) handleVietQRCallback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TransactionID string `json:"transactionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	if err := s.store.ConfirmTransaction(req.TransactionID); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	writeOK(w, nil)
}

func (s *Server) handleCreatePayPal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID int `json:"orderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed request body")
		return
	}
	txn, err := s.store.CreateTransaction(req.OrderID)
	if err != nil {
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
		return
	}
	writeOK(w, struct {
		ApprovalLink string `json:"approvalLink"`
	}{ApprovalLink: "https://paypal.example.com/checkoutnow?token=" + txn.ProviderTransactionID})
}
