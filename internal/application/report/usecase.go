// Package report genera el historial de movimientos en PDF o XML.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Formatos soportados.
const (
	FormatPDF = "pdf"
	FormatXML = "xml"
)

// MovementRow un movimiento junto al SKU de su item.
type MovementRow struct {
	entity.Movement
	SKU string
}

// MovementReportData contenido del informe, independiente del formato.
type MovementReportData struct {
	GeneratedAt time.Time
	Item        *entity.Item // nil = todos los items
	Rows        []MovementRow
}

// Renderer convierte el informe a bytes en un formato concreto.
type Renderer interface {
	Render(ctx context.Context, data MovementReportData) ([]byte, error)
}

// Report documento generado.
type Report struct {
	Content     []byte
	ContentType string
	Filename    string
}

// MovementReportUseCase arma el historial y lo delega al renderer del formato pedido.
type MovementReportUseCase struct {
	itemRepo  repository.ItemRepository
	movRepo   repository.MovementRepository
	clock     *inventory.Clock
	renderers map[string]Renderer
}

// NewMovementReportUseCase construye el caso de uso con los renderers PDF y XML.
func NewMovementReportUseCase(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	clock *inventory.Clock,
	pdf Renderer,
	xml Renderer,
) *MovementReportUseCase {
	return &MovementReportUseCase{
		itemRepo:  itemRepo,
		movRepo:   movRepo,
		clock:     clock,
		renderers: map[string]Renderer{FormatPDF: pdf, FormatXML: xml},
	}
}

var contentTypes = map[string]string{
	FormatPDF: "application/pdf",
	FormatXML: "application/xml",
}

// Generate genera el informe de movimientos de todos los items (itemID == 0) o de uno.
func (uc *MovementReportUseCase) Generate(ctx context.Context, format string, itemID int64) (*Report, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	renderer, ok := uc.renderers[format]
	if !ok || renderer == nil {
		return nil, domain.ErrInvalidInput
	}

	data := MovementReportData{GeneratedAt: uc.clock.Now()}
	skus := map[int64]string{}
	var movs []*entity.Movement
	if itemID != 0 {
		item, err := uc.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return nil, domain.WrapStorage(err)
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		data.Item = item
		skus[item.ID] = item.SKU
		if movs, err = uc.movRepo.ListByItem(ctx, itemID); err != nil {
			return nil, domain.WrapStorage(err)
		}
	} else {
		items, err := uc.itemRepo.List(ctx)
		if err != nil {
			return nil, domain.WrapStorage(err)
		}
		for _, it := range items {
			skus[it.ID] = it.SKU
		}
		if movs, err = uc.movRepo.List(ctx); err != nil {
			return nil, domain.WrapStorage(err)
		}
	}

	data.Rows = make([]MovementRow, 0, len(movs))
	for _, m := range movs {
		row := MovementRow{Movement: *m, SKU: skus[m.ItemID]}
		row.Timestamp = uc.clock.In(m.Timestamp)
		data.Rows = append(data.Rows, row)
	}

	content, err := renderer.Render(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: generar informe %s: %w", domain.ErrStorage, format, err)
	}
	return &Report{
		Content:     content,
		ContentType: contentTypes[format],
		Filename:    filename(data, format),
	}, nil
}

func filename(data MovementReportData, format string) string {
	name := "movimientos"
	if data.Item != nil {
		name += "_" + data.Item.SKU
	}
	return fmt.Sprintf("%s_%s.%s", name, data.GeneratedAt.Format("20060102_150405"), format)
}
