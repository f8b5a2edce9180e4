package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock.
const (
	TransactionTypeIN  = "IN"  // entrada (compra, devolución, stock inicial)
	TransactionTypeOUT = "OUT" // salida (consumo en orden de servicio, pérdida)
)

// Referencia usada en la transacción inicial al registrar un repuesto.
const InitialStockReference = "Initial Stock"

// StockTransaction es una entrada inmutable del libro de stock de un repuesto.
// Nunca se edita ni se elimina; el stock actual se deriva de la suma firmada.
type StockTransaction struct {
	ID              string
	InventoryItemID string
	Type            string // IN u OUT
	Quantity        int    // siempre positivo; el signo lo da Type
	Reference       string // N° de orden de servicio, N° de PO o "Initial Stock"
	Actor           string
	CreatedAt       time.Time
}

// Signed devuelve la cantidad con signo según el tipo (IN positivo, OUT negativo).
func (t StockTransaction) Signed() int {
	if t.Type == TransactionTypeOUT {
		return -t.Quantity
	}
	return t.Quantity
}

// InventoryItem representa un repuesto del inventario.
// QuantityOnHand solo se modifica agregando transacciones, nunca por edición directa.
// Por decisión de diseño el stock puede quedar negativo (backorder); el flag
// de stock bajo es la señal para que el caller dispare una compra.
type InventoryItem struct {
	ID             string
	SKU            string
	Name           string
	CategoryID     string
	Location       string
	QuantityOnHand int
	MinStockLevel  int
	UnitCost       decimal.Decimal
	SellingPrice   decimal.Decimal
	Supplier       string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Apply ajusta QuantityOnHand con la cantidad firmada de la transacción.
func (i *InventoryItem) Apply(tx StockTransaction) {
	i.QuantityOnHand += tx.Signed()
}

// IsLowStock indica si el stock está en o por debajo del mínimo configurado.
func (i *InventoryItem) IsLowStock() bool {
	return i.QuantityOnHand <= i.MinStockLevel
}

// StockValue devuelve el valor del stock a costo unitario (qty * unitCost).
func (i *InventoryItem) StockValue() decimal.Decimal {
	return decimal.NewFromInt(int64(i.QuantityOnHand)).Mul(i.UnitCost)
}
