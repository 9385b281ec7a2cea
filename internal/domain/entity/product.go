package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de venta.
const (
	UnitUN = "UN" // unidad
	UnitKG = "KG" // peso (buffet por kilo)
)

// Product representa un ítem del catálogo del restaurante.
type Product struct {
	ID        string
	Code      string
	Name      string
	Category  string
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Stock     decimal.Decimal
	Active    bool
	Unit      string // UN | KG
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
