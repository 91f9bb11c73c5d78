package alerts

import "github.com/shopspring/decimal"

// DaysUntilStockout estima los días hasta agotar stock: ceil(stock / promedio_diario),
// con promedio_diario = totalSales / windowDays. Si el promedio no es positivo se usa 1.
// Un stock ya agotado (<= 0) devuelve 0.
func DaysUntilStockout(currentStock int64, totalSales decimal.Decimal, windowDays int) int64 {
	if currentStock <= 0 {
		return 0
	}
	if windowDays <= 0 {
		windowDays = 1
	}
	window := decimal.NewFromInt(int64(windowDays))
	stock := decimal.NewFromInt(currentStock)

	avg := totalSales.Div(window)
	if !avg.IsPositive() {
		return currentStock
	}
	// stock / (total / window) == stock * window / total; evita redondear el promedio.
	return stock.Mul(window).Div(totalSales).Ceil().IntPart()
}
