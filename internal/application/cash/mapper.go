package cash

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	cashdomain "github.com/jhoicas/tienda-api/internal/domain/cash"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func toCashRegisterResponse(s *entity.CashRegister, totalSales decimal.Decimal, salesCount int) *dto.CashRegisterResponse {
	return &dto.CashRegisterResponse{
		ID:             s.ID,
		OpeningDate:    s.OpeningDate,
		ClosingDate:    s.ClosingDate,
		InitialAmount:  s.InitialAmount,
		ActualAmount:   s.ActualAmount,
		ExpectedAmount: s.ExpectedAmount,
		Difference:     s.Difference,
		Status:         string(s.Status),
		Notes:          s.Notes,
		OperatorUserID: s.OperatorUserID,
		SalesCount:     salesCount,
		TotalSales:     totalSales,
	}
}

func toSummaryResponse(s cashdomain.Summary) dto.CloseSummaryResponse {
	return dto.CloseSummaryResponse{
		InitialAmount:  s.InitialAmount,
		TotalSales:     s.TotalSales,
		SalesCount:     s.SalesCount,
		ExpectedAmount: s.ExpectedAmount,
		ActualAmount:   s.ActualAmount,
		Difference:     s.Difference,
		Result:         string(s.Result),
	}
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:             s.ID,
		CashRegisterID: s.CashRegisterID,
		Total:          s.Total,
		PaymentMethod:  s.PaymentMethod,
		CustomerID:     s.CustomerID,
		CreatedBy:      s.CreatedBy,
		SaleDate:       s.SaleDate,
		Items:          items,
	}
}
