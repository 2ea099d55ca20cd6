package responses

type PaymentIntent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
