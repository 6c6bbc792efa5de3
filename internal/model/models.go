package model

// All lists every table in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Conversation{},
		&Message{},
		&LegendRequest{},
		&LegendRequestVote{},
		&BillingEvent{},
	}
}
