package dto

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	SKU      string `json:"sku" form:"sku"`
	EAN13    string `json:"ean13" form:"ean13"`
	Quantity int    `json:"quantity" form:"quantity"`
}

// UpdateItemRequest body para PUT /api/items/:id. Fija la cantidad (genera un ajuste).
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" form:"quantity"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID       int64  `json:"id"`
	SKU      string `json:"sku"`
	EAN13    string `json:"ean13"`
	Quantity int    `json:"quantity"`
}

// ToItemResponse mapea la entidad a su salida HTTP.
func ToItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{ID: i.ID, SKU: i.SKU, EAN13: i.EAN13, Quantity: i.Quantity}
}

// ToItemList mapea una lista; nunca devuelve nil para que el JSON sea [].
func ToItemList(list []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(list))
	for _, i := range list {
		out = append(out, ToItemResponse(i))
	}
	return out
}
