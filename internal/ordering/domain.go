// internal/ordering/domain.go
package ordering

import "mediastore/internal/cart"

// Order statuses the backend moves an order through. PENDING orders wait for
// an admin decision; payment confirmation completes an approved order.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusCompleted = "COMPLETED"
	StatusRejected  = "REJECTED"
)

// Payment methods accepted at checkout.
const (
	MethodVietQR = "VIETQR"
	MethodPayPal = "PAYPAL"
)

// DeliveryInfo is the shipping contact block collected at checkout.
type DeliveryInfo struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	ShippingAddress string `json:"shippingAddress"`
	ShippingCity    string `json:"shippingCity"`
}

// Order is a placed order as the backend returns it. Every money figure
// (subtotal, VAT, shipping fee, total) is computed server-side from the cart
// at placement time.
type Order struct {
	ID              int          `json:"id"`
	OrderNumber     string       `json:"orderNumber"`
	Status          string       `json:"status"`
	Items           []cart.Item  `json:"items,omitempty"`
	Subtotal        float64      `json:"subtotal,omitempty"`
	VATAmount       float64      `json:"vatAmount,omitempty"`
	ShippingFee     float64      `json:"shippingFee,omitempty"`
	TotalAmount     float64      `json:"totalAmount"`
	PaymentMethod   string       `json:"paymentMethod,omitempty"`
	DeliveryInfo    *DeliveryInfo `json:"deliveryInfo,omitempty"`
	RejectionReason string       `json:"rejectionReason,omitempty"`
	CreatedAt       string       `json:"createdAt,omitempty"`
}
