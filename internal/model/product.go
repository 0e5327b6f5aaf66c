package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stocked item. Quantity is the current quantity on hand and
// never goes negative: the only decrement path is the guarded update inside
// the sale transaction.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string          `gorm:"index;not null"`
	Quantity  int             `gorm:"not null;default:0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// A product cannot exist without a category.
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}
