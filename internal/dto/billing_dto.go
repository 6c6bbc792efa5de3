package dto

type CheckoutRequest struct {
	Plan string `json:"plan"`
}

type CheckoutResponse struct {
	SessionId string `json:"sessionId"`
	URL       string `json:"url"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}
