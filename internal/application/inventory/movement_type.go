package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

var movementTypeAliases = map[string]string{
	"creacion":   entity.MovementTypeCreation,
	"creation":   entity.MovementTypeCreation,
	"entrada":    entity.MovementTypeInbound,
	"inbound":    entity.MovementTypeInbound,
	"in":         entity.MovementTypeInbound,
	"salida":     entity.MovementTypeOutbound,
	"outbound":   entity.MovementTypeOutbound,
	"out":        entity.MovementTypeOutbound,
	"ajuste":     entity.MovementTypeAdjustment,
	"adjustment": entity.MovementTypeAdjustment,
}

// ParseMovementType normaliza el tipo recibido ("Salida", "creacion", "inbound"...)
// al valor persistido. Ignora mayúsculas, tildes y espacios.
func ParseMovementType(s string) (string, error) {
	key, err := foldAccents(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", domain.ErrInvalidMovementType
	}
	t, ok := movementTypeAliases[key]
	if !ok {
		return "", domain.ErrInvalidMovementType
	}
	return t, nil
}

func foldAccents(s string) (string, error) {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	return out, err
}
