package entity

import "time"

// Sale es una venta de un producto en una fecha (granularidad de día).
type Sale struct {
	ProductID string
	Quantity  int64
	SaleDate  time.Time
}
