package specification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// CreatedBetween keeps rows created in [From, To). Column defaults to created_at.
type CreatedBetween struct {
	Column string
	From   time.Time
	To     time.Time
}

func (s CreatedBetween) Apply(db *gorm.DB) *gorm.DB {
	col := s.Column
	if col == "" {
		col = "created_at"
	}
	return db.Where(fmt.Sprintf("%s >= ? AND %s < ?", col, col), s.From.UTC(), s.To.UTC())
}
