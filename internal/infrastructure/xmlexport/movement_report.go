// Package xmlexport exporta el historial de movimientos como XML (beevik/etree).
package xmlexport

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/pkg/barcode"
)

var _ report.Renderer = (*MovementExporter)(nil)

// MovementExporter implementa report.Renderer. Estructura:
//
//	<movimientos generado="..." total="N">
//	  <item id=".." sku=".." ean13=".." ean13_valido=".." cantidad=".."/>   (solo si es de un item)
//	  <movimiento id=".." item_id=".." sku=".." tipo="..">
//	    <fecha/> <cantidad/> <antes/> <despues/> <usuario/>
//	  </movimiento>
//	</movimientos>
type MovementExporter struct {
	indent int
}

// NewMovementExporter construye el exportador (indentación de 2 espacios).
func NewMovementExporter() *MovementExporter { return &MovementExporter{indent: 2} }

// Render genera el documento XML.
func (e *MovementExporter) Render(_ context.Context, data report.MovementReportData) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("movimientos")
	root.CreateAttr("generado", data.GeneratedAt.Format(time.RFC3339))
	root.CreateAttr("total", strconv.Itoa(len(data.Rows)))

	if it := data.Item; it != nil {
		el := root.CreateElement("item")
		el.CreateAttr("id", strconv.FormatInt(it.ID, 10))
		el.CreateAttr("sku", it.SKU)
		el.CreateAttr("ean13", it.EAN13)
		el.CreateAttr("ean13_valido", strconv.FormatBool(barcode.IsValidEAN13(it.EAN13)))
		el.CreateAttr("cantidad", strconv.Itoa(it.Quantity))
	}

	for _, r := range data.Rows {
		mov := root.CreateElement("movimiento")
		mov.CreateAttr("id", strconv.FormatInt(r.ID, 10))
		mov.CreateAttr("item_id", strconv.FormatInt(r.ItemID, 10))
		mov.CreateAttr("sku", r.SKU)
		mov.CreateAttr("tipo", r.Type)
		mov.CreateElement("fecha").SetText(r.Timestamp.Format(time.RFC3339))
		mov.CreateElement("cantidad").SetText(strconv.Itoa(r.Amount))
		mov.CreateElement("antes").SetText(strconv.Itoa(r.QuantityBefore))
		mov.CreateElement("despues").SetText(strconv.Itoa(r.QuantityAfter))
		// usuario vacío = movimiento sin autor
		mov.CreateElement("usuario").SetText(r.Username)
	}

	doc.Indent(e.indent)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	return out.Bytes(), nil
}
