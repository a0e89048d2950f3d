package inventory

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

var tracer = otel.Tracer("github.com/jhoicas/inventario-ledger/internal/application/inventory")

// fail registra el error en el span y lo devuelve tipado.
func fail(span trace.Span, err error) error {
	err = domain.WrapStorage(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
