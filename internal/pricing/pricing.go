// Package pricing implementa el precio unitario por volumen de la tienda:
// una tabla de tramos donde a mayor cantidad pedida corresponde un precio
// unitario menor. La misma tabla alimenta el cálculo de totales y la
// proyección de descuentos que se muestra al cliente, para que nunca
// diverjan.
package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Tier define un precio unitario a partir de una cantidad mínima inclusive.
type Tier struct {
	MinCantidad    int
	PrecioUnitario decimal.Decimal
}

// TierDisplay es la proyección legible de un tramo ("13 a 24 unidades")
// para mostrar en la tienda.
type TierDisplay struct {
	Etiqueta       string          `json:"etiqueta"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// Table es la tabla de precios por volumen. Es configuración inmutable:
// se construye una vez y después solo se consulta.
type Table struct {
	base  decimal.Decimal
	tiers []Tier // ordenados por MinCantidad descendente
}

// NewTable construye una tabla de precios a partir del precio base (el que
// aplica por debajo del tramo más chico) y los tramos. Los tramos se ordenan
// por MinCantidad descendente; los umbrales deben ser únicos y >= 1.
func NewTable(base decimal.Decimal, tiers []Tier) (*Table, error) {
	if base.IsNegative() {
		return nil, fmt.Errorf("el precio base no puede ser negativo: %s", base)
	}

	ordenados := make([]Tier, len(tiers))
	copy(ordenados, tiers)
	sort.Slice(ordenados, func(i, j int) bool {
		return ordenados[i].MinCantidad > ordenados[j].MinCantidad
	})

	for i, t := range ordenados {
		if t.MinCantidad < 1 {
			return nil, fmt.Errorf("cantidad mínima inválida en el tramo: %d", t.MinCantidad)
		}
		if t.PrecioUnitario.IsNegative() {
			return nil, fmt.Errorf("precio unitario negativo en el tramo %d: %s", t.MinCantidad, t.PrecioUnitario)
		}
		if i > 0 && ordenados[i-1].MinCantidad == t.MinCantidad {
			return nil, fmt.Errorf("cantidad mínima duplicada en la tabla: %d", t.MinCantidad)
		}
	}

	return &Table{base: base, tiers: ordenados}, nil
}

// DefaultTable devuelve la tabla de precios vigente de la tienda.
func DefaultTable() *Table {
	t, err := NewTable(decimal.NewFromInt(20000), []Tier{
		{MinCantidad: 200, PrecioUnitario: decimal.NewFromInt(13000)},
		{MinCantidad: 100, PrecioUnitario: decimal.NewFromInt(13800)},
		{MinCantidad: 50, PrecioUnitario: decimal.NewFromInt(14500)},
		{MinCantidad: 25, PrecioUnitario: decimal.NewFromInt(16000)},
		{MinCantidad: 13, PrecioUnitario: decimal.NewFromInt(16800)},
	})
	if err != nil {
		// La tabla por defecto es constante; un error acá es un bug de programación.
		panic(err)
	}
	return t
}

// UnitPriceFor devuelve el precio unitario para la cantidad pedida: el tramo
// con el mayor MinCantidad <= cantidad, o el precio base si la cantidad está
// por debajo de todos los tramos. Los umbrales se recorren de mayor a menor
// para que los pedidos grandes siempre reciban el mayor descuento aplicable
// y una cantidad exactamente igual a un umbral reciba el precio de ese tramo.
// Definida solo para cantidades >= 1: el caller debe ajustar antes de llamar.
func (t *Table) UnitPriceFor(cantidad int) decimal.Decimal {
	for _, tier := range t.tiers {
		if cantidad >= tier.MinCantidad {
			return tier.PrecioUnitario
		}
	}
	return t.base
}

// TotalPriceFor devuelve el precio total: precio unitario * cantidad.
func (t *Table) TotalPriceFor(cantidad int) decimal.Decimal {
	return t.UnitPriceFor(cantidad).Mul(decimal.NewFromInt(int64(cantidad)))
}

// Display devuelve la tabla de tramos en orden ascendente con etiquetas
// legibles, generada de la misma tabla que usa el cálculo de precios.
func (t *Table) Display() []TierDisplay {
	// Vista ascendente de los tramos.
	asc := make([]Tier, len(t.tiers))
	for i, tier := range t.tiers {
		asc[len(t.tiers)-1-i] = tier
	}

	display := make([]TierDisplay, 0, len(asc)+1)

	// Tramo base: desde 1 unidad hasta justo antes del primer umbral.
	if len(asc) > 0 && asc[0].MinCantidad > 1 {
		display = append(display, TierDisplay{
			Etiqueta:       fmt.Sprintf("1 a %d unidades", asc[0].MinCantidad-1),
			PrecioUnitario: t.base,
		})
	}

	for i, tier := range asc {
		if i == len(asc)-1 {
			display = append(display, TierDisplay{
				Etiqueta:       fmt.Sprintf("%d+ unidades", tier.MinCantidad),
				PrecioUnitario: tier.PrecioUnitario,
			})
			continue
		}
		display = append(display, TierDisplay{
			Etiqueta:       fmt.Sprintf("%d a %d unidades", tier.MinCantidad, asc[i+1].MinCantidad-1),
			PrecioUnitario: tier.PrecioUnitario,
		})
	}

	return display
}
