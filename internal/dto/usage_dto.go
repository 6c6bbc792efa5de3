package dto

import "talk-to-legends-be/pkg/plan"

type UsageStats struct {
	ConversationsToday       int `json:"conversationsToday"`
	MessagesToday            int `json:"messagesToday"`
	TotalActiveConversations int `json:"totalActiveConversations"`
}

// RemainingUsage uses -1 for unlimited limits.
type RemainingUsage struct {
	ConversationsRemaining       int `json:"conversationsRemaining"`
	MessagesRemaining            int `json:"messagesRemaining"`
	ActiveConversationsRemaining int `json:"activeConversationsRemaining"`
}

type UsageResponse struct {
	Plan      plan.Tier      `json:"plan"`
	Limits    plan.Limits    `json:"limits"`
	Usage     UsageStats     `json:"usage"`
	Remaining RemainingUsage `json:"remaining"`
}

// Decision is the answer of the usage gate.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type PlanResponse struct {
	Id string `json:"id"`
	plan.Limits
}
