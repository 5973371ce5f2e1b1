package stockrepo_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
	"macstock/internal/repository/stockrepo"
)

func newRepo(t *testing.T) (*stockrepo.StockRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return stockrepo.NewStockRepository(db, time.Second, logger.NewLogger("fatal")), mock
}

func requestDisminucion() domain.ModificacionStockRequest {
	return domain.ModificacionStockRequest{
		ResponsableModificacion: "laura",
		AutorizadoPor:           "gerencia",
		RefProducto:             "CAP-001",
		CantidadCambio:          5,
		TipoCambio:              domain.TipoDisminucion,
	}
}

// TestRegistrarModificacion_Exito verifica la secuencia completa de la
// transacción: inserción de la auditoría, delta con signo aplicado en el
// propio UPDATE y commit final.
func TestRegistrarModificacion_Exito(t *testing.T) {
	repo, mock := newRepo(t)
	fecha := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO modificaciones_stock")).
		WithArgs("laura", "gerencia", "CAP-001", nil, nil, 5, "Disminución", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fecha_modificacion"}).AddRow(int64(7), fecha))
	// Una Disminución de 5 viaja como -5 en el UPDATE.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE productos")).
		WithArgs(-5, sqlmock.AnyArg(), "CAP-001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mod, err := repo.RegistrarModificacion(context.Background(), requestDisminucion())

	require.NoError(t, err)
	assert.Equal(t, int64(7), mod.ID)
	assert.Equal(t, fecha, mod.FechaModificacion)
	assert.Equal(t, -5, mod.Delta())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRegistrarModificacion_ProductoInexistente verifica que un UPDATE sin
// filas afectadas revierta también la fila de auditoría ya insertada: la
// transacción termina en rollback y no queda estado parcial.
func TestRegistrarModificacion_ProductoInexistente(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO modificaciones_stock")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fecha_modificacion"}).AddRow(int64(8), time.Now().UTC()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE productos")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	req := requestDisminucion()
	req.RefProducto = "NO-EXISTE"

	_, err := repo.RegistrarModificacion(context.Background(), req)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.ErrorContains(t, err, "NO-EXISTE")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRegistrarModificacion_OrdenDuplicada verifica que la violación de la
// restricción UNIQUE dentro de la transacción se traduzca al mismo conflicto
// que el pre-chequeo del servicio, nombrando el ID en disputa.
func TestRegistrarModificacion_OrdenDuplicada(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO modificaciones_stock")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	req := requestDisminucion()
	req.StockChangeOrderID = "MOD-1"

	_, err := repo.RegistrarModificacion(context.Background(), req)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.ErrorContains(t, err, "MOD-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestConsultarHistorial_FiltrosYOrden verifica la construcción del WHERE
// (fecha inclusive por día, subcadena en la referencia) y el orden del más
// reciente al más antiguo.
func TestConsultarHistorial_FiltrosYOrden(t *testing.T) {
	repo, mock := newRepo(t)
	fecha := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)

	columnas := []string{
		"id", "responsable_modificacion", "autorizado_por", "ref_producto", "categoria",
		"subcategoria", "cantidad_cambio", "tipo_cambio", "stock_change_order_id",
		"descripcion_cambio", "fecha_modificacion",
	}

	mock.ExpectQuery(`(?s)SELECT .+ FROM modificaciones_stock.+DATE\(fecha_modificacion\) >= \$1.+ref_producto LIKE \$2.+ORDER BY fecha_modificacion DESC, id DESC`).
		WithArgs("2026-08-01", "%CAP%").
		WillReturnRows(sqlmock.NewRows(columnas).
			AddRow(int64(2), "laura", "", "CAP-001", nil, nil, 3, "Aumento", "MOD-2", nil, fecha).
			AddRow(int64(1), "carlos", "", "CAP-002", "Gorras", nil, 1, "Disminución", nil, "ajuste", fecha.Add(-time.Hour)))

	historial, err := repo.ConsultarHistorial(context.Background(), domain.HistorialFilter{
		FechaInicio: "2026-08-01",
		RefProducto: "CAP",
	})

	require.NoError(t, err)
	require.Len(t, historial, 2)
	assert.Equal(t, int64(2), historial[0].ID)
	assert.Equal(t, "MOD-2", historial[0].StockChangeOrderID)
	// Las columnas NULL llegan como cadena vacía.
	assert.Equal(t, "", historial[0].Categoria)
	assert.Equal(t, "Gorras", historial[1].Categoria)
	assert.NoError(t, mock.ExpectationsWereMet())
}
