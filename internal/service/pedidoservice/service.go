package pedidoservice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
	"macstock/internal/pricing"
)

// Tasa de IVA aplicada a los pedidos.
var tasaIVA = decimal.NewFromFloat(0.19)

// PedidoRepository define el contrato que este servicio espera de la capa
// de persistencia.
type PedidoRepository interface {
	Save(ctx context.Context, pedido domain.Pedido) (domain.Pedido, error)
}

// Service implementa la lógica de negocio de los pedidos. Los precios se
// calculan siempre del lado del servidor con la tabla de precios por
// volumen: el cliente nunca manda valores.
type Service struct {
	repo   PedidoRepository
	tabla  *pricing.Table
	logger logger.Logger
}

// NewService crea y devuelve una nueva instancia del servicio de pedidos.
func NewService(repo PedidoRepository, tabla *pricing.Table, logger logger.Logger) *Service {
	return &Service{repo: repo, tabla: tabla, logger: logger}
}

// CrearPedido valora las líneas con la tabla de precios, calcula los
// totales y persiste el pedido completo en una transacción.
func (s *Service) CrearPedido(ctx context.Context, req domain.PedidoRequest) (domain.Pedido, error) {
	if req.NumeroOrden == "" || len(req.Productos) == 0 {
		return domain.Pedido{}, apperror.NewValidationError("Número de orden y al menos un producto son requeridos.")
	}

	// El tramo de precio se elige por la cantidad total de unidades del
	// pedido, no por línea: así un pedido grande de referencias variadas
	// recibe el mismo descuento que uno de una sola referencia.
	totalUnidades := 0
	for _, linea := range req.Productos {
		if linea.Referencia == "" || linea.Cantidad <= 0 {
			return domain.Pedido{}, apperror.NewValidationError("Cada línea requiere referencia y cantidad positiva.")
		}
		totalUnidades += linea.Cantidad
	}

	valorUnitario := s.tabla.UnitPriceFor(totalUnidades)

	pedido := domain.Pedido{
		NumeroOrden:      req.NumeroOrden,
		Fecha:            req.Fecha,
		ClienteNombre:    req.ClienteNombre,
		ClienteID:        req.ClienteID,
		ClienteTelefono:  req.ClienteTelefono,
		ClienteDireccion: req.ClienteDireccion,
		Vendedor:         req.Vendedor,
	}
	if pedido.Fecha.IsZero() {
		pedido.Fecha = time.Now().UTC()
	}

	subtotal := decimal.Zero
	for _, linea := range req.Productos {
		valorTotal := valorUnitario.Mul(decimal.NewFromInt(int64(linea.Cantidad)))
		subtotal = subtotal.Add(valorTotal)

		pedido.Productos = append(pedido.Productos, domain.PedidoProducto{
			Referencia:    linea.Referencia,
			Nombre:        linea.Nombre,
			Cantidad:      linea.Cantidad,
			ValorUnitario: valorUnitario,
			ValorTotal:    valorTotal,
		})
	}

	pedido.Subtotal = subtotal
	pedido.IVA = subtotal.Mul(tasaIVA).Round(2)
	pedido.Total = pedido.Subtotal.Add(pedido.IVA)

	creado, err := s.repo.Save(ctx, pedido)
	if err != nil {
		s.logger.Error("Falla al guardar el pedido en el repositorio.", err)
		return domain.Pedido{}, err
	}

	s.logger.Info("Pedido creado con éxito.", map[string]interface{}{
		"numero_orden": creado.NumeroOrden,
		"total":        creado.Total.String(),
	})
	return creado, nil
}
