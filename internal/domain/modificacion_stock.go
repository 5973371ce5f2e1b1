package domain

import "time"

// TipoCambio es la dirección de un movimiento de stock.
type TipoCambio string

const (
	TipoAumento     TipoCambio = "Aumento"
	TipoDisminucion TipoCambio = "Disminución"
)

// Valido indica si el tipo de cambio es uno de los valores permitidos.
func (t TipoCambio) Valido() bool {
	return t == TipoAumento || t == TipoDisminucion
}

// ModificacionStock es una entrada del libro de movimientos de stock.
// Es un registro de auditoría de solo inserción: una vez confirmada la
// transacción nunca se edita ni se elimina.
type ModificacionStock struct {
	ID                      int64      `json:"id"`
	ResponsableModificacion string     `json:"responsable_modificacion"`
	AutorizadoPor           string     `json:"autorizado_por"`
	RefProducto             string     `json:"ref_producto"`
	Categoria               string     `json:"categoria,omitempty"`
	Subcategoria            string     `json:"subcategoria,omitempty"`
	CantidadCambio          int        `json:"cantidad_cambio"`
	TipoCambio              TipoCambio `json:"tipo_cambio"`
	StockChangeOrderID      string     `json:"stock_change_order_id,omitempty"` // Identificador externo, único si está presente
	DescripcionCambio       string     `json:"descripcion_cambio,omitempty"`
	FechaModificacion       time.Time  `json:"fecha_modificacion"`
}

// Delta devuelve el cambio de stock con signo: +CantidadCambio para un
// Aumento, -CantidadCambio para una Disminución.
func (m ModificacionStock) Delta() int {
	if m.TipoCambio == TipoDisminucion {
		return -m.CantidadCambio
	}
	return m.CantidadCambio
}

// ModificacionStockRequest es el payload esperado para registrar un movimiento.
// Los campos requeridos se validan una sola vez en la frontera HTTP.
type ModificacionStockRequest struct {
	ResponsableModificacion string     `json:"responsable_modificacion"`
	AutorizadoPor           string     `json:"autorizado_por"`
	RefProducto             string     `json:"ref_producto" validate:"required"`
	Categoria               string     `json:"categoria"`
	Subcategoria            string     `json:"subcategoria"`
	CantidadCambio          int        `json:"cantidad_cambio" validate:"required,gt=0"`
	TipoCambio              TipoCambio `json:"tipo_cambio" validate:"required,oneof=Aumento Disminución"`
	StockChangeOrderID      string     `json:"stock_change_order_id"`
	DescripcionCambio       string     `json:"descripcion_cambio"`
}

// HistorialFilter define los filtros opcionales del historial de movimientos.
// Todos se combinan con AND; las fechas son inclusivas sobre el día del
// movimiento (no la hora) y los campos de texto buscan por subcadena.
type HistorialFilter struct {
	FechaInicio string // formato YYYY-MM-DD
	FechaFin    string // formato YYYY-MM-DD
	RefProducto string
	Responsable string
	OrdenID     string
}
