package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
	"macstock/internal/pricing"
)

// ProductService define el contrato que el Handler espera de la capa de servicio.
type ProductService interface {
	CrearProducto(ctx context.Context, producto domain.Producto) (domain.Producto, error)
	ObtenerPorID(ctx context.Context, id string) (domain.Producto, error)
	ListarCatalogo(ctx context.Context, filter domain.ProductoFilter) ([]domain.Producto, error)
}

// Handler agrupa los métodos de Handler del catálogo de productos.
type Handler struct {
	Service ProductService
	Tabla   *pricing.Table
	Logger  logger.Logger
}

// NewHandler crea una nueva instancia del Handler, inyectando el Service,
// la tabla de precios por volumen y el Logger.
func NewHandler(svc ProductService, tabla *pricing.Table, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Tabla:   tabla,
		Logger:  log,
	}
}

// handleServiceResponse procesa errores de servicio y envía respuestas
// estandarizadas al cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falla al codificar el JSON de respuesta", jsonErr)
				http.Error(w, "Error al codificar la respuesta", http.StatusInternalServerError)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Error de servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Request rechazada con status %d. Categoría: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// ProductosHandler despacha /v1/productos según el método.
func (h *Handler) ProductosHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.crearProducto(w, r)
	case http.MethodGet:
		h.listarCatalogo(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// crearProducto maneja POST /v1/productos.
// @Summary Crea un producto del catálogo
// @Description Registra un nuevo producto con su stock inicial. El stock posterior solo cambia vía movimientos de stock.
// @Tags productos
// @Accept json
// @Produce json
// @Param producto body domain.Producto true "Datos del producto"
// @Success 201 {object} domain.Producto "Producto creado"
// @Failure 400 {object} domain.ErrorResponse "Datos inválidos"
// @Failure 409 {object} domain.ErrorResponse "Número de referencia duplicado"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /productos [post]
func (h *Handler) crearProducto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var producto domain.Producto
	if err := json.NewDecoder(r.Body).Decode(&producto); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusBadRequest)
		return
	}

	creado, err := h.Service.CrearProducto(ctx, producto)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, creado, nil, http.StatusCreated)
}

// listarCatalogo maneja GET /v1/productos.
// @Summary Lista el catálogo de productos
// @Description Devuelve los productos activos con su disponibilidad derivada del stock.
// @Tags productos
// @Produce json
// @Param categoria query string false "Filtra por categoría"
// @Param subcategoria query string false "Filtra por subcategoría"
// @Param marca query string false "Filtra por marca"
// @Param destacado query bool false "Solo productos destacados"
// @Param limit query int false "Máximo de productos a devolver"
// @Success 200 {array} domain.Producto "Catálogo filtrado"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Router /productos [get]
func (h *Handler) listarCatalogo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	filter := domain.ProductoFilter{
		Categoria:    q.Get("categoria"),
		Subcategoria: q.Get("subcategoria"),
		Marca:        q.Get("marca"),
	}
	if destacado, err := strconv.ParseBool(q.Get("destacado")); err == nil {
		filter.SoloDestacados = destacado
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	productos, err := h.Service.ListarCatalogo(ctx, filter)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	if productos == nil {
		productos = []domain.Producto{} // siempre un array JSON, nunca null
	}

	h.handleServiceResponse(w, r, productos, nil, http.StatusOK)
}

// ProductoPorIDHandler maneja GET /v1/productos/{id}.
// @Summary Obtiene un producto por ID
// @Description Devuelve el producto con su disponibilidad derivada del stock.
// @Tags productos
// @Produce json
// @Param id path string true "ID del producto (UUID)"
// @Success 200 {object} domain.Producto "Producto encontrado"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Producto no encontrado"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Router /productos/{id} [get]
func (h *Handler) ProductoPorIDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/productos/")
	if id == "" || strings.Contains(id, "/") {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("El ID del producto es requerido en la ruta."), http.StatusBadRequest)
		return
	}

	producto, err := h.Service.ObtenerPorID(r.Context(), id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, producto, nil, http.StatusOK)
}

// PreciosHandler maneja GET /v1/precios.
// @Summary Muestra la tabla de precios por volumen
// @Description Devuelve los tramos de descuento vigentes, generados de la misma tabla que usa el cálculo de pedidos.
// @Tags precios
// @Produce json
// @Success 200 {array} pricing.TierDisplay "Tramos de precio vigentes"
// @Router /precios [get]
func (h *Handler) PreciosHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	h.handleServiceResponse(w, r, h.Tabla.Display(), nil, http.StatusOK)
}
