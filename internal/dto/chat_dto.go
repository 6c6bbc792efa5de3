package dto

type ChatRequest struct {
	Legend         string `json:"legend"`
	Message        string `json:"message"`
	ConversationId string `json:"conversationId"`
}

type ChatResponse struct {
	Response       string `json:"response"`
	ConversationId string `json:"conversationId"`
}

type VoiceRequest struct {
	Legend string `json:"legend"`
	Text   string `json:"text"`
}

// LegendResponse is the public part of a persona.
type LegendResponse struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Era         string   `json:"era"`
	Description string   `json:"description"`
	Expertise   []string `json:"expertise"`
	Greeting    string   `json:"greeting"`
}

type LegendsResponse struct {
	Legends []LegendResponse `json:"legends"`
}
