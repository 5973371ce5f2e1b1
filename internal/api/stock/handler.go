package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
	"macstock/internal/pkg/validate"
)

// StockService define el contrato que el Handler espera de la capa de servicio.
type StockService interface {
	RegistrarModificacion(ctx context.Context, req domain.ModificacionStockRequest) (domain.ModificacionStock, error)
	ConsultarHistorial(ctx context.Context, filtro domain.HistorialFilter) ([]domain.ModificacionStock, error)
}

// Handler agrupa los métodos de Handler del libro de movimientos de stock.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler crea una nueva instancia del Handler, inyectando el Service y el Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
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

// ModificacionesHandler despacha /v1/stock/modificaciones según el método.
func (h *Handler) ModificacionesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.registrarModificacion(w, r)
	case http.MethodGet:
		h.consultarHistorial(w, r)
	default:
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
	}
}

// registrarModificacion maneja POST /v1/stock/modificaciones.
// @Summary Registra un movimiento de stock
// @Description Inserta un registro de auditoría y aplica el delta sobre el stock del producto en una sola transacción.
// @Tags stock
// @Accept json
// @Produce json
// @Param modificacion body domain.ModificacionStockRequest true "Datos del movimiento de stock"
// @Success 201 {object} domain.ModificacionStock "Movimiento registrado"
// @Failure 400 {object} domain.ErrorResponse "Campos requeridos ausentes"
// @Failure 404 {object} domain.ErrorResponse "Producto no encontrado"
// @Failure 409 {object} domain.ErrorResponse "ID de movimiento duplicado"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /stock/modificaciones [post]
func (h *Handler) registrarModificacion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.ModificacionStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusBadRequest)
		return
	}

	// Validación de frontera: una sola vez, antes de la lógica de dominio.
	if err := validate.Struct(req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	mod, err := h.Service.RegistrarModificacion(ctx, req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, mod, nil, http.StatusCreated)
}

// consultarHistorial maneja GET /v1/stock/modificaciones.
// @Summary Consulta el historial de movimientos de stock
// @Description Devuelve los movimientos filtrados, del más reciente al más antiguo.
// @Tags stock
// @Produce json
// @Param fecha_inicio query string false "Fecha inicial inclusive (YYYY-MM-DD)"
// @Param fecha_fin query string false "Fecha final inclusive (YYYY-MM-DD)"
// @Param ref_producto query string false "Subcadena de la referencia del producto"
// @Param responsable query string false "Subcadena del responsable"
// @Param orden_id query string false "Subcadena del ID de movimiento externo"
// @Success 200 {array} domain.ModificacionStock "Historial filtrado"
// @Failure 400 {object} domain.ErrorResponse "Filtro de fecha inválido"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /stock/modificaciones [get]
func (h *Handler) consultarHistorial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	filtro := domain.HistorialFilter{
		FechaInicio: q.Get("fecha_inicio"),
		FechaFin:    q.Get("fecha_fin"),
		RefProducto: q.Get("ref_producto"),
		Responsable: q.Get("responsable"),
		OrdenID:     q.Get("orden_id"),
	}

	historial, err := h.Service.ConsultarHistorial(ctx, filtro)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	if historial == nil {
		historial = []domain.ModificacionStock{} // siempre un array JSON, nunca null
	}

	h.handleServiceResponse(w, r, historial, nil, http.StatusOK)
}
