package specification

import "gorm.io/gorm"

type ByProviderEvent struct {
	Provider string
	EventID  string
}

func (s ByProviderEvent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider = ? AND provider_event_id = ?", s.Provider, s.EventID)
}
