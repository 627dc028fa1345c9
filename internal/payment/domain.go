// internal/payment/domain.go
package payment

// Transaction is what the backend returns for a newly created payment.
// ProviderTransactionID is the reference the payment provider (or the mock
// confirmation) must echo back through the callback; QRString is the VietQR
// payload to render for the customer.
type Transaction struct {
	TransactionID         string  `json:"transactionId"`
	ProviderTransactionID string  `json:"providerTransactionId"`
	OrderID               int     `json:"orderId"`
	PaymentMethod         string  `json:"paymentMethod"`
	Amount                float64 `json:"amount"`
	QRString              string  `json:"qrString,omitempty"`
}

// PayPalOrder is the backend's answer to a PayPal create call: the link the
// customer would be sent to for approval.
type PayPalOrder struct {
	ApprovalLink string `json:"approvalLink"`
}
