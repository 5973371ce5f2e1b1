package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pedido representa una orden de compra registrada desde el back-office.
type Pedido struct {
	ID               int64            `json:"id"`
	NumeroOrden      string           `json:"numero_orden"`
	Fecha            time.Time        `json:"fecha"`
	ClienteNombre    string           `json:"cliente_nombre"`
	ClienteID        string           `json:"cliente_id"`
	ClienteTelefono  string           `json:"cliente_telefono"`
	ClienteDireccion string           `json:"cliente_direccion"`
	Vendedor         string           `json:"vendedor"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	IVA              decimal.Decimal  `json:"iva"`
	Total            decimal.Decimal  `json:"total"`
	Productos        []PedidoProducto `json:"productos"`
}

// PedidoProducto es una línea del pedido. El valor unitario lo calcula el
// servidor con la tabla de precios por volumen, nunca el cliente.
type PedidoProducto struct {
	ID            int64           `json:"id"`
	PedidoID      int64           `json:"pedido_id"`
	Referencia    string          `json:"referencia"`
	Nombre        string          `json:"nombre"`
	Cantidad      int             `json:"cantidad"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
}

// PedidoRequest es el payload de creación de un pedido.
type PedidoRequest struct {
	NumeroOrden      string               `json:"numero_orden" validate:"required"`
	Fecha            time.Time            `json:"fecha"`
	ClienteNombre    string               `json:"cliente_nombre" validate:"required"`
	ClienteID        string               `json:"cliente_id"`
	ClienteTelefono  string               `json:"cliente_telefono"`
	ClienteDireccion string               `json:"cliente_direccion"`
	Vendedor         string               `json:"vendedor"`
	Productos        []PedidoLineaRequest `json:"productos" validate:"required,min=1,dive"`
}

// PedidoLineaRequest es una línea del pedido entrante (sin precios).
type PedidoLineaRequest struct {
	Referencia string `json:"referencia" validate:"required"`
	Nombre     string `json:"nombre"`
	Cantidad   int    `json:"cantidad" validate:"required,gt=0"`
}
