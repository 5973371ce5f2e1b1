package pedido

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

// PedidoService define el contrato que el Handler espera de la capa de servicio.
type PedidoService interface {
	CrearPedido(ctx context.Context, req domain.PedidoRequest) (domain.Pedido, error)
}

// Handler agrupa los métodos de Handler de los pedidos.
type Handler struct {
	Service PedidoService
	Logger  logger.Logger
}

// NewHandler crea una nueva instancia del Handler, inyectando el Service y el Logger.
func NewHandler(svc PedidoService, log logger.Logger) *Handler {
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

// CrearPedidoHandler maneja POST /v1/pedidos.
// @Summary Crea un pedido
// @Description Valora las líneas con la tabla de precios por volumen según el total de unidades y persiste el pedido completo. Los precios los fija el servidor.
// @Tags pedidos
// @Accept json
// @Produce json
// @Param pedido body domain.PedidoRequest true "Datos del pedido"
// @Success 201 {object} domain.Pedido "Pedido creado con sus totales"
// @Failure 400 {object} domain.ErrorResponse "Datos inválidos"
// @Failure 409 {object} domain.ErrorResponse "Número de orden duplicado"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Security ApiKeyAuth
// @Router /pedidos [post]
func (h *Handler) CrearPedidoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var req domain.PedidoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	pedido, err := h.Service.CrearPedido(ctx, req)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, pedido, nil, http.StatusCreated)
}
