package requests

// PaymentIntent is the body sent to the payment gateway. Amount is in the
// smallest currency unit.
type PaymentIntent struct {
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	PaymentMethod string            `json:"payment_method"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}
