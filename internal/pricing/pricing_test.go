package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macstock/internal/pricing"
)

// TestUnitPriceFor_TablaVigente verifica el precio unitario en los umbrales
// y alrededores de la tabla de precios vigente de la tienda.
func TestUnitPriceFor_TablaVigente(t *testing.T) {
	tabla := pricing.DefaultTable()

	casos := []struct {
		cantidad int
		esperado int64
	}{
		{1, 20000},
		{12, 20000},  // justo debajo del primer tramo: precio base
		{13, 16800},  // umbral inclusive
		{24, 16800},
		{25, 16000},
		{49, 16000},
		{50, 14500},
		{99, 14500},
		{100, 13800},
		{199, 13800},
		{200, 13000},
		{500, 13000}, // por encima del último umbral sigue el mismo tramo
	}

	for _, c := range casos {
		precio := tabla.UnitPriceFor(c.cantidad)
		assert.True(t, decimal.NewFromInt(c.esperado).Equal(precio),
			"cantidad %d: esperaba %d, obtuvo %s", c.cantidad, c.esperado, precio)
	}
}

// TestUnitPriceFor_Monotonia verifica que a mayor cantidad el precio unitario
// nunca sube.
func TestUnitPriceFor_Monotonia(t *testing.T) {
	tabla := pricing.DefaultTable()

	anterior := tabla.UnitPriceFor(1)
	for cantidad := 2; cantidad <= 500; cantidad++ {
		actual := tabla.UnitPriceFor(cantidad)
		assert.True(t, actual.LessThanOrEqual(anterior),
			"el precio unitario subió de %s a %s en cantidad %d", anterior, actual, cantidad)
		anterior = actual
	}
}

// TestTotalPriceFor verifica que el total sea siempre precio unitario * cantidad.
func TestTotalPriceFor(t *testing.T) {
	tabla := pricing.DefaultTable()

	for _, cantidad := range []int{1, 12, 13, 25, 50, 100, 200, 500} {
		esperado := tabla.UnitPriceFor(cantidad).Mul(decimal.NewFromInt(int64(cantidad)))
		assert.True(t, esperado.Equal(tabla.TotalPriceFor(cantidad)))
	}
}

// TestDisplay verifica las etiquetas y los precios de la proyección de tramos.
func TestDisplay(t *testing.T) {
	tabla := pricing.DefaultTable()

	display := tabla.Display()
	require.Len(t, display, 6)

	esperados := []struct {
		etiqueta string
		precio   int64
	}{
		{"1 a 12 unidades", 20000},
		{"13 a 24 unidades", 16800},
		{"25 a 49 unidades", 16000},
		{"50 a 99 unidades", 14500},
		{"100 a 199 unidades", 13800},
		{"200+ unidades", 13000},
	}

	for i, e := range esperados {
		assert.Equal(t, e.etiqueta, display[i].Etiqueta)
		assert.True(t, decimal.NewFromInt(e.precio).Equal(display[i].PrecioUnitario))
	}
}

// TestDisplay_CoherenteConUnitPrice verifica que la proyección y el cálculo
// de precios salgan de la misma tabla: el precio mostrado para cada tramo
// debe coincidir con el precio calculado en su umbral.
func TestDisplay_CoherenteConUnitPrice(t *testing.T) {
	tabla := pricing.DefaultTable()

	umbrales := []int{1, 13, 25, 50, 100, 200}
	display := tabla.Display()
	require.Len(t, display, len(umbrales))

	for i, umbral := range umbrales {
		assert.True(t, tabla.UnitPriceFor(umbral).Equal(display[i].PrecioUnitario),
			"el tramo %q no coincide con UnitPriceFor(%d)", display[i].Etiqueta, umbral)
	}
}

// TestNewTable_Invalida verifica el rechazo de tablas mal configuradas.
func TestNewTable_Invalida(t *testing.T) {
	base := decimal.NewFromInt(1000)

	_, err := pricing.NewTable(decimal.NewFromInt(-1), nil)
	assert.Error(t, err, "precio base negativo")

	_, err = pricing.NewTable(base, []pricing.Tier{
		{MinCantidad: 0, PrecioUnitario: decimal.NewFromInt(900)},
	})
	assert.Error(t, err, "cantidad mínima menor a 1")

	_, err = pricing.NewTable(base, []pricing.Tier{
		{MinCantidad: 10, PrecioUnitario: decimal.NewFromInt(900)},
		{MinCantidad: 10, PrecioUnitario: decimal.NewFromInt(800)},
	})
	assert.Error(t, err, "umbral duplicado")

	_, err = pricing.NewTable(base, []pricing.Tier{
		{MinCantidad: 10, PrecioUnitario: decimal.NewFromInt(-5)},
	})
	assert.Error(t, err, "precio unitario negativo")
}

// TestNewTable_OrdenaDescendente verifica que el orden de entrada no importe.
func TestNewTable_OrdenaDescendente(t *testing.T) {
	tabla, err := pricing.NewTable(decimal.NewFromInt(100), []pricing.Tier{
		{MinCantidad: 5, PrecioUnitario: decimal.NewFromInt(90)},
		{MinCantidad: 20, PrecioUnitario: decimal.NewFromInt(70)},
		{MinCantidad: 10, PrecioUnitario: decimal.NewFromInt(80)},
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(100).Equal(tabla.UnitPriceFor(4)))
	assert.True(t, decimal.NewFromInt(90).Equal(tabla.UnitPriceFor(5)))
	assert.True(t, decimal.NewFromInt(80).Equal(tabla.UnitPriceFor(19)))
	assert.True(t, decimal.NewFromInt(70).Equal(tabla.UnitPriceFor(20)))
}
