package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Space is the top level of the two-tier merchandising taxonomy (e.g.
// "Living Room"). Deleting a Space cascades to its Subcategories.
type Space struct {
	ID            uuid.UUID     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string        `gorm:"column:name;not null" json:"name"`
	Slug          string        `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Description   *string       `gorm:"column:description" json:"description,omitempty"`
	SortOrder     int           `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	IsActive      bool          `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Subcategories []Subcategory `gorm:"foreignKey:SpaceID;constraint:OnDelete:CASCADE" json:"subcategories,omitempty"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (s *Space) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Subcategory is a leaf of the taxonomy, owned by exactly one Space.
type Subcategory struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SpaceID   uuid.UUID `gorm:"column:space_id;type:uuid;not null;index" json:"space_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Slug      string    `gorm:"column:slug;not null" json:"slug"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (s *Subcategory) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
