package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un artículo del catálogo de la tienda.
// El campo Stock es una proyección materializada del libro de movimientos
// (modificaciones_stock): solo el Stock Ledger puede escribirlo; el resto
// de los componentes lo tratan como de solo lectura.
type Producto struct {
	ID               string          `json:"id"`
	Nombre           string          `json:"nombre"`
	Marca            string          `json:"marca"`
	Precio           decimal.Decimal `json:"precio"`
	Descripcion      string          `json:"descripcion"`
	NumeroReferencia string          `json:"numero_referencia"` // Referencia única del producto (ej. "CAP-001")
	Categoria        string          `json:"categoria"`
	Subcategoria     string          `json:"subcategoria"`
	Stock            int             `json:"stock"`
	EnStock          bool            `json:"en_stock"` // Derivado: Stock > 0. Nunca se persiste.
	Activo           bool            `json:"activo"`
	Destacado        bool            `json:"destacado"`
	FechaCreacion    time.Time       `json:"fecha_creacion"`
	FechaActualizado time.Time       `json:"fecha_actualizado"`
}

// ProductoFilter define los parámetros de búsqueda del catálogo.
type ProductoFilter struct {
	Categoria      string
	Subcategoria   string
	Marca          string
	SoloDestacados bool
	Limit          int
}
