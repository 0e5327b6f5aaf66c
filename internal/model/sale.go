package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an immutable log entry of one completed sale. There is no update or
// delete path: once committed the record is a historical fact.
//
// ProductID deliberately has no foreign key constraint — deleting a product
// keeps its sales, so the reference may dangle. ProductName and UnitPrice are
// snapshots taken at commit time; later renames or price changes never alter
// historical records.
type Sale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Total = Quantity × UnitPrice, captured as a fact, never recomputed.
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}
