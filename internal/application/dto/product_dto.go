package dto

import "github.com/shopspring/decimal"

// UpsertProductRequest body para POST /api/products.
type UpsertProductRequest struct {
	ID       string          `json:"id,omitempty"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    decimal.Decimal `json:"stock"`
	Active   bool            `json:"active"`
	Unit     string          `json:"unit"` // UN | KG
	Image    string          `json:"image,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID       string          `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    decimal.Decimal `json:"stock"`
	Active   bool            `json:"active"`
	Unit     string          `json:"unit"`
	Image    string          `json:"image,omitempty"`
}
