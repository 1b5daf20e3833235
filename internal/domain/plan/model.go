package plan

import (
	"github.com/shopspring/decimal"
	"github.com/subflow/subflow/internal/types"
)

// Plan is a named, priced subscription tier. Plan names are unique across the
// catalog and plans are never hard-deleted.
type Plan struct {
	ID    string          `db:"id" json:"id"`
	Name  string          `db:"name" json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
	types.BaseModel
}
