package productservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
)

// ProductRepository define el contrato que este servicio espera de la capa
// de persistencia.
type ProductRepository interface {
	Save(ctx context.Context, producto domain.Producto) (domain.Producto, error)
	FindByID(ctx context.Context, id string) (domain.Producto, error)
	FindAll(ctx context.Context, filter domain.ProductoFilter) ([]domain.Producto, error)
}

// Service implementa la lógica de negocio del catálogo.
type Service struct {
	repo   ProductRepository
	logger logger.Logger
}

// NewService crea y devuelve una nueva instancia del servicio de productos.
func NewService(repo ProductRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CrearProducto valida y persiste un nuevo producto del catálogo.
// El stock inicial declarado acá es el punto de partida del libro de
// movimientos; de ahí en adelante solo el Stock Ledger lo modifica.
func (s *Service) CrearProducto(ctx context.Context, producto domain.Producto) (domain.Producto, error) {
	if producto.Nombre == "" || producto.NumeroReferencia == "" {
		return domain.Producto{}, apperror.NewValidationError("Nombre y número de referencia son requeridos.")
	}
	if !producto.Precio.IsPositive() {
		return domain.Producto{}, apperror.NewValidationError("El precio del producto debe ser positivo.")
	}
	if producto.Stock < 0 {
		return domain.Producto{}, apperror.NewValidationError("El stock inicial no puede ser negativo.")
	}

	if producto.ID == "" {
		producto.ID = uuid.New().String()
	}
	producto.Activo = true
	now := time.Now().UTC()
	producto.FechaCreacion = now
	producto.FechaActualizado = now

	creado, err := s.repo.Save(ctx, producto)
	if err != nil {
		s.logger.Error("Falla al guardar el producto en el repositorio.", err)
		return domain.Producto{}, err
	}

	creado.EnStock = creado.Stock > 0
	return creado, nil
}

// ObtenerPorID busca un producto por ID y marca su disponibilidad.
func (s *Service) ObtenerPorID(ctx context.Context, id string) (domain.Producto, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Producto{}, apperror.NewValidationError("El ID del producto debe ser un UUID válido.")
	}

	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Producto{}, err
	}

	producto.EnStock = producto.Stock > 0
	return producto, nil
}

// ListarCatalogo devuelve los productos activos según el filtro, con la
// disponibilidad derivada del stock (stock > 0). El catálogo nunca escribe
// el stock: es una proyección de solo lectura del libro de movimientos.
func (s *Service) ListarCatalogo(ctx context.Context, filter domain.ProductoFilter) ([]domain.Producto, error) {
	productos, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Falla al listar el catálogo.", err)
		return nil, err
	}

	for i := range productos {
		productos[i].EnStock = productos[i].Stock > 0
	}

	return productos, nil
}
