package purchasing

import (
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ToOrderBuyResponse convierte la entidad a su DTO.
func ToOrderBuyResponse(o *entity.OrderBuy) *dto.OrderBuyResponse {
	return &dto.OrderBuyResponse{
		ID:                   o.ID,
		ProviderID:           o.ProviderID,
		OrderDate:            o.OrderDate,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate,
		ReceivedAt:           o.ReceivedAt,
		CancelledAt:          o.CancelledAt,
		Status:               string(o.Status),
		IGVPercent:           o.IGVPercent,
		Subtotal:             o.Subtotal,
		IGV:                  o.IGV,
		Total:                o.Total,
		Notes:                o.Notes,
		CancelReason:         o.CancelReason,
		CreatedBy:            o.CreatedBy,
		Lines:                ToLineResponses(o.Lines),
	}
}

// ToLineResponses convierte líneas de la orden.
func ToLineResponses(lines []entity.OrderBuyLine) []dto.OrderBuyLineResponse {
	out := make([]dto.OrderBuyLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.OrderBuyLineResponse{
			LineNo:    l.LineNo,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return out
}

// ToLineReceipts convierte las líneas aplicadas con su stock antes/después.
func ToLineReceipts(applied []LineReceipt) []dto.LineReceiptResponse {
	out := make([]dto.LineReceiptResponse, 0, len(applied))
	for _, a := range applied {
		out = append(out, dto.LineReceiptResponse{
			LineNo:        a.Line.LineNo,
			ProductID:     a.Line.ProductID,
			Quantity:      a.Line.Quantity,
			PreviousStock: a.Change.PreviousStock,
			NewStock:      a.Change.NewStock,
		})
	}
	return out
}

// ToPartialReceiptResponse arma el cuerpo de error con aplicadas, fallida y pendientes.
func ToPartialReceiptResponse(p *PartialReceiptError) dto.PartialReceiptResponse {
	resp := dto.PartialReceiptResponse{
		Code:    "PARTIAL_RECEIPT",
		Message: p.Error(),
		OrderID: p.Order.ID,
		Applied: ToLineReceipts(p.Applied),
		Pending: ToLineResponses(p.Pending),
	}
	if p.TransitionErr != nil {
		resp.TransitionError = p.TransitionErr.Error()
		return resp
	}
	resp.Failed = &dto.LineFailureResponse{
		LineNo:    p.Failed.Line.LineNo,
		ProductID: p.Failed.Line.ProductID,
		Quantity:  p.Failed.Line.Quantity,
		Error:     p.Failed.Err.Error(),
	}
	return resp
}
