package entity

import "time"

// Tipos de movimiento. Se conservan los valores persistidos históricamente.
const (
	MovementTypeCreation   = "creación" // alta del item
	MovementTypeInbound    = "entrada"
	MovementTypeOutbound   = "salida"
	MovementTypeAdjustment = "ajuste" // fija una cantidad nueva; Amount es el delta con signo
)

// Movement registra un cambio de cantidad de un Item con las existencias antes y después.
type Movement struct {
	ID             int64
	ItemID         int64
	Type           string
	Amount         int // magnitud en entrada/salida, delta con signo en ajuste
	Timestamp      time.Time
	Username       string // vacío = NULL (sistema o sin autenticar)
	QuantityBefore int
	QuantityAfter  int
}
