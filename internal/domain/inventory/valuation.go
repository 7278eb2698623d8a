package inventory

import "github.com/shopspring/decimal"

// StockValue valor de las unidades que el proyecto aún tiene (bodega + uso) al valor unitario.
// Lo gastado ya no cuenta como inventario.
// Valor = (Bodega + Uso) * ValorUnitario
func StockValue(q Quantities, unitValue decimal.Decimal) decimal.Decimal {
	held := q.Bodega + q.Uso
	if held <= 0 || unitValue.IsNegative() {
		return decimal.Zero
	}
	return unitValue.Mul(decimal.NewFromInt(held))
}

// ConsumedValue valor de lo gastado al valor unitario.
func ConsumedValue(q Quantities, unitValue decimal.Decimal) decimal.Decimal {
	if q.Gastado <= 0 || unitValue.IsNegative() {
		return decimal.Zero
	}
	return unitValue.Mul(decimal.NewFromInt(q.Gastado))
}
