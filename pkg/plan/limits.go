package plan

import "strings"

// Unlimited marks a limit that is never enforced.
const Unlimited = -1

type Tier string

const (
	Free    Tier = "FREE"
	Pro     Tier = "PRO"
	Premium Tier = "PREMIUM"
)

// Parse returns the tier for s. Unknown values resolve to Free.
func Parse(s string) Tier {
	switch Tier(strings.ToUpper(strings.TrimSpace(s))) {
	case Pro:
		return Pro
	case Premium:
		return Premium
	default:
		return Free
	}
}

// Rank orders tiers for upgrade checks.
func (t Tier) Rank() int {
	switch t {
	case Pro:
		return 1
	case Premium:
		return 2
	default:
		return 0
	}
}

// Paid reports whether t can be bought through checkout.
func (t Tier) Paid() bool {
	return t == Pro || t == Premium
}

type Limits struct {
	Name                string   `json:"name"`
	ConversationsPerDay int      `json:"conversationsPerDay"`
	MessagesPerDay      int      `json:"messagesPerDay"`
	ActiveConversations int      `json:"maxActiveConversations"`
	Voice               bool     `json:"voiceGeneration"`
	PrioritySupport     bool     `json:"prioritySupport"`
	Features            []string `json:"features"`
}

var table = map[Tier]Limits{
	Free: {
		Name:                "Free",
		ConversationsPerDay: 2,
		MessagesPerDay:      20,
		ActiveConversations: 5,
		Features: []string{
			"2 conversations per day",
			"20 messages per day",
			"Access to 3 legends",
			"Basic conversation history",
		},
	},
	Pro: {
		Name:                "Pro",
		ConversationsPerDay: Unlimited,
		MessagesPerDay:      Unlimited,
		ActiveConversations: 50,
		Voice:               true,
		Features: []string{
			"Unlimited conversations",
			"Unlimited messages",
			"Access to all legends",
			"Voice generation",
			"Extended conversation history",
		},
	},
	Premium: {
		Name:                "Premium",
		ConversationsPerDay: Unlimited,
		MessagesPerDay:      Unlimited,
		ActiveConversations: Unlimited,
		Voice:               true,
		PrioritySupport:     true,
		Features: []string{
			"Everything in Pro",
			"Custom legend requests",
			"Advanced voice customization",
			"Priority support",
			"API access",
		},
	},
}

// For returns the limits of t. Unknown tiers get the Free limits.
func For(t Tier) Limits {
	if l, ok := table[t]; ok {
		return l
	}
	return table[Free]
}

// Tiers lists tiers from cheapest to most expensive.
func Tiers() []Tier {
	return []Tier{Free, Pro, Premium}
}

func IsUnlimited(limit int) bool {
	return limit == Unlimited
}

// Exceeded reports whether used has reached limit.
func Exceeded(used, limit int) bool {
	return !IsUnlimited(limit) && used >= limit
}

// Remaining returns Unlimited for unlimited limits and never goes below zero.
func Remaining(used, limit int) int {
	if IsUnlimited(limit) {
		return Unlimited
	}
	if used >= limit {
		return 0
	}
	return limit - used
}
