package user

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

// UserService define el contrato que el Handler espera de la capa de servicio.
type UserService interface {
	Register(ctx context.Context, registro domain.UsuarioRegistro) (domain.Usuario, error)
	Login(ctx context.Context, username string, password string) (string, error)
}

// Handler agrupa los métodos de Handler de las cuentas del back-office.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler crea una nueva instancia del Handler, inyectando el Service y el Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
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

// RegisterHandler maneja POST /v1/auth/register.
// @Summary Registra una cuenta del back-office
// @Description Crea una cuenta con la contraseña hasheada. El rol por defecto es vendedor.
// @Tags auth
// @Accept json
// @Produce json
// @Param registro body domain.UsuarioRegistro true "Datos de la cuenta"
// @Success 201 {object} domain.Usuario "Cuenta creada"
// @Failure 400 {object} domain.ErrorResponse "Datos inválidos"
// @Failure 409 {object} domain.ErrorResponse "Usuario ya existente"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Router /auth/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	var registro domain.UsuarioRegistro
	if err := json.NewDecoder(r.Body).Decode(&registro); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(registro); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	usuario, err := h.Service.Register(r.Context(), registro)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, usuario, nil, http.StatusCreated)
}

// LoginHandler maneja POST /v1/auth/login.
// @Summary Autentica una cuenta y devuelve un JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credenciales body domain.Credenciales true "Usuario y contraseña"
// @Success 200 {object} map[string]string "Token de autenticación"
// @Failure 400 {object} domain.ErrorResponse "Datos inválidos"
// @Failure 401 {object} domain.ErrorResponse "Credenciales inválidas"
// @Failure 500 {object} domain.ErrorResponse "Error interno del servidor"
// @Router /auth/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}

	var credenciales domain.Credenciales
	if err := json.NewDecoder(r.Body).Decode(&credenciales); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique el formato JSON."), http.StatusBadRequest)
		return
	}

	if err := validate.Struct(credenciales); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusBadRequest)
		return
	}

	token, err := h.Service.Login(r.Context(), credenciales.Username, credenciales.Password)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, map[string]string{"token": token}, nil, http.StatusOK)
}
