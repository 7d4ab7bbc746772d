package models

import (
	"time"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer mirrors the back-office customer record. TotalOrders, TotalSpent
// and AverageOrderValue are rollups maintained by the data source; the
// service passes them through and never recomputes them.
type Customer struct {
	ID                uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name              string               `gorm:"column:name;not null" json:"name"`
	Email             string               `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Phone             string               `gorm:"column:phone" json:"phone"`
	Address           *string              `gorm:"column:address" json:"address,omitempty"`
	CustomerType      enums.CustomerType   `gorm:"column:customer_type;not null" json:"customer_type"`
	Status            enums.CustomerStatus `gorm:"column:status;not null" json:"status"`
	TotalOrders       int                  `gorm:"column:total_orders;not null;default:0" json:"total_orders"`
	TotalSpent        decimal.Decimal      `gorm:"column:total_spent;type:numeric(14,2);not null;default:0" json:"total_spent"`
	AverageOrderValue decimal.Decimal      `gorm:"column:average_order_value;type:numeric(14,2);not null;default:0" json:"average_order_value"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
