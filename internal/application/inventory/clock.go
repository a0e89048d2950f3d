package inventory

import (
	"fmt"
	"time"
)

// Clock produce los timestamps de los movimientos en una zona horaria fija
// (Europe/Madrid por defecto), independiente de la zona del servidor o del cliente.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock carga la zona IANA indicada.
func NewClock(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("zona horaria %q: %w", timezone, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewClockWithSource permite fijar la fuente de tiempo (tests).
func NewClockWithSource(loc *time.Location, now func() time.Time) *Clock {
	return &Clock{loc: loc, now: now}
}

// Now devuelve la hora actual en la zona del ledger.
func (c *Clock) Now() time.Time { return c.now().In(c.loc) }

// In convierte un instante leído del almacén a la zona del ledger.
func (c *Clock) In(t time.Time) time.Time { return t.In(c.loc) }

// Location zona horaria del ledger.
func (c *Clock) Location() *time.Location { return c.loc }
