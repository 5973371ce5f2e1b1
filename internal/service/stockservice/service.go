package stockservice

import (
	"context"
	"fmt"
	"time"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
)

// StockRepository define el contrato que el servicio de stock espera de la
// capa de persistencia.
type StockRepository interface {
	ExisteOrdenExterna(ctx context.Context, ordenID string) (bool, error)
	RegistrarModificacion(ctx context.Context, req domain.ModificacionStockRequest) (domain.ModificacionStock, error)
	ConsultarHistorial(ctx context.Context, filtro domain.HistorialFilter) ([]domain.ModificacionStock, error)
}

// Service implementa la lógica de negocio del libro de movimientos de stock.
type Service struct {
	repo   StockRepository
	logger logger.Logger
}

// NewService crea y devuelve una nueva instancia del servicio de stock.
func NewService(repo StockRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegistrarModificacion valida el movimiento, rechaza duplicados del ID
// externo y delega la aplicación transaccional al repositorio. Las
// validaciones y el chequeo de unicidad se resuelven antes de abrir la
// transacción, así sus fallas nunca requieren rollback.
func (s *Service) RegistrarModificacion(ctx context.Context, req domain.ModificacionStockRequest) (domain.ModificacionStock, error) {
	s.logger.Debug("Iniciando registro de movimiento de stock en el servicio.", map[string]interface{}{
		"ref_producto":    req.RefProducto,
		"cantidad_cambio": req.CantidadCambio,
		"tipo_cambio":     string(req.TipoCambio),
	})

	// 1. Campos requeridos (mismo contrato que valida la frontera HTTP;
	// acá de nuevo porque el servicio también se consume en proceso).
	if req.RefProducto == "" || req.CantidadCambio <= 0 || !req.TipoCambio.Valido() {
		return domain.ModificacionStock{}, apperror.NewValidationError(
			"Referencia, cantidad y tipo de cambio son requeridos.")
	}

	// 2. Pre-chequeo del ID de movimiento externo. Es solo un atajo: la
	// garantía real es la restricción UNIQUE del DB, que cubre la carrera
	// entre dos requests idénticas que pasan este chequeo a la vez.
	if req.StockChangeOrderID != "" {
		existe, err := s.repo.ExisteOrdenExterna(ctx, req.StockChangeOrderID)
		if err != nil {
			s.logger.Error("Falla al verificar el ID de movimiento externo.", err)
			return domain.ModificacionStock{}, err
		}
		if existe {
			return domain.ModificacionStock{}, apperror.NewConflictError(
				fmt.Sprintf("El ID de movimiento '%s' ya existe. Use un ID diferente.", req.StockChangeOrderID))
		}
	}

	// 3. Aplicación atómica: auditoría + delta de stock en una transacción.
	mod, err := s.repo.RegistrarModificacion(ctx, req)
	if err != nil {
		// Los errores tipados del repositorio (NotFound, Conflict, DB) ya
		// traen la categoría correcta; se propagan sin envolver.
		s.logger.Error("Falla al registrar el movimiento de stock en el repositorio.", err)
		return domain.ModificacionStock{}, err
	}

	s.logger.Info("Movimiento de stock registrado con éxito.", map[string]interface{}{
		"id":           mod.ID,
		"ref_producto": mod.RefProducto,
		"delta":        mod.Delta(),
	})
	return mod, nil
}

// ConsultarHistorial devuelve los movimientos filtrados, del más reciente
// al más antiguo. Operación de solo lectura.
func (s *Service) ConsultarHistorial(ctx context.Context, filtro domain.HistorialFilter) ([]domain.ModificacionStock, error) {
	if err := validarFecha(filtro.FechaInicio); err != nil {
		return nil, err
	}
	if err := validarFecha(filtro.FechaFin); err != nil {
		return nil, err
	}

	historial, err := s.repo.ConsultarHistorial(ctx, filtro)
	if err != nil {
		s.logger.Error("Falla al consultar el historial de movimientos.", err)
		return nil, err
	}

	return historial, nil
}

// validarFecha acepta la cadena vacía o una fecha YYYY-MM-DD.
func validarFecha(fecha string) error {
	if fecha == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", fecha); err != nil {
		return apperror.NewValidationError(
			fmt.Sprintf("La fecha '%s' no es válida. Use el formato YYYY-MM-DD.", fecha))
	}
	return nil
}
