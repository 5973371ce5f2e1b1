package userservice

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
	"macstock/internal/pkg/token"
)

// UserRepository define el contrato de persistencia que espera este servicio.
type UserRepository interface {
	Save(ctx context.Context, usuario domain.Usuario) (domain.Usuario, error)
	FindByUsername(ctx context.Context, username string) (domain.Usuario, error)
}

// TokenService es el contrato de la capa de tokens (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, userRol string) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// Service implementa la lógica de negocio de las cuentas del back-office.
type Service struct {
	repo     UserRepository
	tokenSvc TokenService
	logger   logger.Logger
}

// NewService crea una nueva instancia del servicio de usuarios.
func NewService(repo UserRepository, tokenSvc TokenService, logger logger.Logger) *Service {
	return &Service{
		repo:     repo,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register registra una nueva cuenta con la contraseña hasheada.
func (s *Service) Register(ctx context.Context, registro domain.UsuarioRegistro) (domain.Usuario, error) {
	if registro.Username == "" || registro.Password == "" {
		return domain.Usuario{}, apperror.NewValidationError("Usuario y contraseña son requeridos.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registro.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Usuario{}, apperror.NewInternalError("Falla al generar el hash de la contraseña.", err)
	}

	rol := registro.Rol
	if rol == "" {
		rol = domain.RolVendedor
	}

	usuario, err := s.repo.Save(ctx, domain.Usuario{
		Username:     registro.Username,
		PasswordHash: string(hashedPassword),
		Rol:          rol,
	})
	if err != nil {
		// El repositorio ya traduce la violación de unicidad a ConflictError.
		s.logger.Error("Falla al registrar el usuario.", err)
		return domain.Usuario{}, err
	}

	return usuario, nil
}

// Login autentica al usuario, verifica la contraseña y genera un JWT.
func (s *Service) Login(ctx context.Context, username string, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperror.NewValidationError("Por favor, ingrese usuario y contraseña.")
	}

	usuario, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// Un usuario inexistente se responde como credenciales inválidas
		// para no dar pistas a un atacante.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return "", apperror.NewUnauthorizedError("Credenciales inválidas.")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(password)); err != nil {
		return "", apperror.NewUnauthorizedError("Credenciales inválidas.")
	}

	tokenString, err := s.tokenSvc.GenerateToken(usuario.ID, string(usuario.Rol))
	if err != nil {
		return "", apperror.NewInternalError("Falla al generar el token de autenticación.", err)
	}

	s.logger.Info("Login exitoso.", map[string]interface{}{"user_id": usuario.ID, "username": usuario.Username})
	return tokenString, nil
}
