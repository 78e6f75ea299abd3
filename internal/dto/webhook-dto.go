package dto

// WebhookEvent mirrors the Razorpay webhook envelope. Only the fields the
// verification flow reads are declared; the rest of the payload is ignored.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity PaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type PaymentEntity struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	// Amount arrives in the smallest currency unit (paise).
	Amount  int64  `json:"amount"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type WebhookAck struct {
	Received bool   `json:"received"`
	Message  string `json:"message,omitempty"`
	UserID   uint   `json:"userId,omitempty"`
}
