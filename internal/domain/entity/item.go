package entity

// Item es una unidad de inventario con SKU y EAN13 únicos.
// Quantity solo cambia a través de un Movement registrado en la misma transacción.
type Item struct {
	ID       int64
	SKU      string
	EAN13    string
	Quantity int
}
