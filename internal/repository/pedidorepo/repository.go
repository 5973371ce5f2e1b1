package pedidorepo

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

// PedidoRepository es la capa de persistencia de los pedidos.
type PedidoRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPedidoRepository crea y devuelve una nueva instancia del repositorio de pedidos.
func NewPedidoRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *PedidoRepository {
	return &PedidoRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

// Save persiste el encabezado del pedido y sus líneas en una sola transacción.
func (r *PedidoRepository) Save(ctx context.Context, pedido domain.Pedido) (domain.Pedido, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falla al iniciar la transacción del pedido.", err)
		return domain.Pedido{}, apperror.NewDBError("Falla al iniciar la transacción", err)
	}
	defer tx.Rollback()

	queryPedido := `
        INSERT INTO pedidos
            (numero_orden, fecha, cliente_nombre, cliente_id, cliente_telefono,
             cliente_direccion, vendedor, subtotal, iva, total)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id`

	err = tx.QueryRowContext(ctxTimeout, queryPedido,
		pedido.NumeroOrden,
		pedido.Fecha,
		pedido.ClienteNombre,
		pedido.ClienteID,
		pedido.ClienteTelefono,
		pedido.ClienteDireccion,
		pedido.Vendedor,
		pedido.Subtotal,
		pedido.IVA,
		pedido.Total,
	).Scan(&pedido.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.Pedido{}, apperror.NewConflictError(
				fmt.Sprintf("El número de orden '%s' ya existe.", pedido.NumeroOrden))
		}
		r.logger.Error("Falla al insertar el pedido en el DB.", err)
		return domain.Pedido{}, apperror.NewDBError("Falla al crear el pedido", err)
	}

	queryLinea := `
        INSERT INTO pedido_productos
            (pedido_id, referencia, nombre, cantidad, valor_unitario, valor_total)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	for i := range pedido.Productos {
		linea := &pedido.Productos[i]
		linea.PedidoID = pedido.ID

		err = tx.QueryRowContext(ctxTimeout, queryLinea,
			linea.PedidoID,
			linea.Referencia,
			linea.Nombre,
			linea.Cantidad,
			linea.ValorUnitario,
			linea.ValorTotal,
		).Scan(&linea.ID)
		if err != nil {
			r.logger.Error("Falla al insertar una línea del pedido.", err)
			return domain.Pedido{}, apperror.NewDBError("Falla al insertar las líneas del pedido", err)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		r.logger.Error("Falla al confirmar la transacción del pedido.", commitErr)
		return domain.Pedido{}, apperror.NewDBError("Falla al confirmar la transacción", commitErr)
	}

	r.logger.Info("Pedido registrado con éxito.", map[string]interface{}{
		"id":           pedido.ID,
		"numero_orden": pedido.NumeroOrden,
		"lineas":       len(pedido.Productos),
	})
	return pedido, nil
}
