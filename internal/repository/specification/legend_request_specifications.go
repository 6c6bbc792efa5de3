package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByLegendName matches case-insensitively.
type ByLegendName struct {
	Name string
}

func (s ByLegendName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(legend_name) = ?", strings.ToLower(strings.TrimSpace(s.Name)))
}

type ByLegendRequestID struct {
	LegendRequestID uuid.UUID
}

func (s ByLegendRequestID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("legend_request_id = ?", s.LegendRequestID)
}
