package stockrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
)

// uniqueViolation es el código SQLSTATE de PostgreSQL para violación de
// restricción de unicidad. La restricción UNIQUE sobre stock_change_order_id
// es la garantía autoritativa contra movimientos duplicados: el pre-chequeo
// del servicio es solo un atajo.
const uniqueViolation = pq.ErrorCode("23505")

// StockRepository es la capa de persistencia del libro de movimientos de
// stock. Es el único camino de escritura sobre productos.stock.
type StockRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewStockRepository crea y devuelve una nueva instancia del repositorio de stock.
func NewStockRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *StockRepository {
	return &StockRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// ExisteOrdenExterna indica si ya hay un movimiento registrado con ese
// identificador externo. Es una lectura fuera de la transacción principal:
// sirve para rechazar duplicados temprano, sin abrir una transacción que
// habría que revertir.
func (r *StockRepository) ExisteOrdenExterna(ctx context.Context, ordenID string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT EXISTS(SELECT 1 FROM modificaciones_stock WHERE stock_change_order_id = $1)`

	var existe bool
	if err := r.DB.QueryRowContext(ctxTimeout, query, ordenID).Scan(&existe); err != nil {
		r.logger.Error("Falla al verificar el ID de movimiento externo.", err)
		return false, apperror.NewDBError("Falla al verificar el ID de movimiento", err)
	}

	return existe, nil
}

// RegistrarModificacion inserta el registro de auditoría y aplica el delta
// sobre productos.stock como una sola unidad atómica: o se confirman ambos
// efectos o ninguno. El incremento se hace en el propio UPDATE (stock =
// stock + delta), de modo que dos movimientos concurrentes sobre el mismo
// producto se serializan en el DB y nunca compiten por una lectura previa.
func (r *StockRepository) RegistrarModificacion(ctx context.Context, req domain.ModificacionStockRequest) (domain.ModificacionStock, error) {
	r.logger.Debug("Iniciando registro de movimiento de stock en el repositorio.", map[string]interface{}{
		"ref_producto":    req.RefProducto,
		"cantidad_cambio": req.CantidadCambio,
		"tipo_cambio":     string(req.TipoCambio),
	})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falla al iniciar la transacción del movimiento de stock.", err)
		return domain.ModificacionStock{}, apperror.NewDBError("Falla al iniciar la transacción", err)
	}
	// Rollback en cualquier salida que no haya llegado al Commit, incluida
	// la cancelación del contexto por desconexión del caller.
	defer tx.Rollback()

	// 1. Insertar el registro de auditoría.
	queryInsert := `
        INSERT INTO modificaciones_stock
            (responsable_modificacion, autorizado_por, ref_producto, categoria, subcategoria,
             cantidad_cambio, tipo_cambio, stock_change_order_id, descripcion_cambio)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, fecha_modificacion`

	mod := domain.ModificacionStock{
		ResponsableModificacion: req.ResponsableModificacion,
		AutorizadoPor:           req.AutorizadoPor,
		RefProducto:             req.RefProducto,
		Categoria:               req.Categoria,
		Subcategoria:            req.Subcategoria,
		CantidadCambio:          req.CantidadCambio,
		TipoCambio:              req.TipoCambio,
		StockChangeOrderID:      req.StockChangeOrderID,
		DescripcionCambio:       req.DescripcionCambio,
	}

	err = tx.QueryRowContext(ctxTimeout, queryInsert,
		req.ResponsableModificacion,
		req.AutorizadoPor,
		req.RefProducto,
		nullIfEmpty(req.Categoria),
		nullIfEmpty(req.Subcategoria),
		req.CantidadCambio,
		string(req.TipoCambio),
		nullIfEmpty(req.StockChangeOrderID), // NULL cuando no viene: la columna es UNIQUE
		nullIfEmpty(req.DescripcionCambio),
	).Scan(&mod.ID, &mod.FechaModificacion)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			// Dos requests concurrentes con el mismo ID externo pasaron el
			// pre-chequeo; la restricción del DB convierte al perdedor en conflicto.
			r.logger.Warn("ID de movimiento duplicado detectado por la restricción UNIQUE.", map[string]interface{}{
				"stock_change_order_id": req.StockChangeOrderID,
			})
			return domain.ModificacionStock{}, apperror.NewConflictError(
				fmt.Sprintf("El ID de movimiento '%s' ya existe. Use un ID diferente.", req.StockChangeOrderID))
		}
		r.logger.Error("Falla al insertar el registro de movimiento de stock.", err)
		return domain.ModificacionStock{}, apperror.NewDBError("Falla al insertar el movimiento de stock", err)
	}

	// 2. Aplicar el delta sobre el total del producto.
	queryUpdate := `
        UPDATE productos
        SET stock = stock + $1, fecha_actualizado = $2
        WHERE numero_referencia = $3`

	result, err := tx.ExecContext(ctxTimeout, queryUpdate, mod.Delta(), time.Now().UTC(), req.RefProducto)
	if err != nil {
		r.logger.Error("Falla al actualizar el stock del producto.", err)
		return domain.ModificacionStock{}, apperror.NewDBError("Falla al actualizar el stock del producto", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falla al verificar las filas afectadas por el movimiento.", err)
		return domain.ModificacionStock{}, apperror.NewDBError("Falla al verificar las filas afectadas", err)
	}

	if rowsAffected == 0 {
		// Producto inexistente: el rollback diferido descarta también el
		// registro de auditoría ya insertado. No queda estado parcial.
		r.logger.Warn("Movimiento de stock sobre un producto inexistente.", map[string]interface{}{
			"ref_producto": req.RefProducto,
		})
		return domain.ModificacionStock{}, apperror.NewNotFoundError(
			fmt.Sprintf("Producto con referencia '%s' no encontrado.", req.RefProducto))
	}

	// 3. Confirmar la transacción.
	if commitErr := tx.Commit(); commitErr != nil {
		r.logger.Error("Falla al confirmar la transacción del movimiento de stock.", commitErr)
		return domain.ModificacionStock{}, apperror.NewDBError("Falla al confirmar la transacción", commitErr)
	}

	r.logger.Info("Movimiento de stock registrado con éxito.", map[string]interface{}{
		"id":           mod.ID,
		"ref_producto": mod.RefProducto,
		"delta":        mod.Delta(),
	})
	return mod, nil
}

// ConsultarHistorial devuelve los movimientos que cumplen todos los filtros
// provistos, del más reciente al más antiguo (empates por id descendente).
func (r *StockRepository) ConsultarHistorial(ctx context.Context, filtro domain.HistorialFilter) ([]domain.ModificacionStock, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        SELECT id, responsable_modificacion, autorizado_por, ref_producto, categoria,
               subcategoria, cantidad_cambio, tipo_cambio, stock_change_order_id,
               descripcion_cambio, fecha_modificacion
        FROM modificaciones_stock
        WHERE 1=1`
	var params []interface{}

	if filtro.FechaInicio != "" {
		params = append(params, filtro.FechaInicio)
		query += fmt.Sprintf(" AND DATE(fecha_modificacion) >= $%d", len(params))
	}
	if filtro.FechaFin != "" {
		params = append(params, filtro.FechaFin)
		query += fmt.Sprintf(" AND DATE(fecha_modificacion) <= $%d", len(params))
	}
	if filtro.RefProducto != "" {
		params = append(params, "%"+filtro.RefProducto+"%")
		query += fmt.Sprintf(" AND ref_producto LIKE $%d", len(params))
	}
	if filtro.Responsable != "" {
		params = append(params, "%"+filtro.Responsable+"%")
		query += fmt.Sprintf(" AND responsable_modificacion LIKE $%d", len(params))
	}
	if filtro.OrdenID != "" {
		params = append(params, "%"+filtro.OrdenID+"%")
		query += fmt.Sprintf(" AND stock_change_order_id LIKE $%d", len(params))
	}

	query += " ORDER BY fecha_modificacion DESC, id DESC"

	rows, err := r.DB.QueryContext(ctxTimeout, query, params...)
	if err != nil {
		r.logger.Error("Falla al consultar el historial de movimientos.", err)
		return nil, apperror.NewDBError("Falla al consultar el historial de movimientos", err)
	}
	defer rows.Close()

	var historial []domain.ModificacionStock
	for rows.Next() {
		var mod domain.ModificacionStock
		var categoria, subcategoria, ordenID, descripcion sql.NullString

		err := rows.Scan(
			&mod.ID, &mod.ResponsableModificacion, &mod.AutorizadoPor, &mod.RefProducto,
			&categoria, &subcategoria, &mod.CantidadCambio, &mod.TipoCambio,
			&ordenID, &descripcion, &mod.FechaModificacion,
		)
		if err != nil {
			r.logger.Error("Falla al mapear una fila del historial.", err)
			return nil, apperror.NewDBError("Falla al mapear el historial de movimientos", err)
		}

		mod.Categoria = categoria.String
		mod.Subcategoria = subcategoria.String
		mod.StockChangeOrderID = ordenID.String
		mod.DescripcionCambio = descripcion.String
		historial = append(historial, mod)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Falla al recorrer el historial de movimientos.", err)
		return nil, apperror.NewDBError("Falla al recorrer el historial de movimientos", err)
	}

	return historial, nil
}

// nullIfEmpty convierte la cadena vacía en NULL para columnas opcionales.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
