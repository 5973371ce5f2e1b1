package userservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
	"macstock/internal/pkg/token"
	"macstock/internal/service/userservice"
)

// MockUserRepository es una implementación mock de la interfaz UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, usuario domain.Usuario) (domain.Usuario, error) {
	args := m.Called(ctx, usuario)
	return args.Get(0).(domain.Usuario), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (domain.Usuario, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.Usuario), args.Error(1)
}

// MockTokenService es una implementación mock de la interfaz TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID string, userRol string) (string, error) {
	args := m.Called(userID, userRol)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*token.CustomClaims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*token.CustomClaims)
	return claims, args.Error(1)
}

func TestRegister_Exito(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, logger.NewLogger("fatal"))

	var guardado domain.Usuario
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Usuario")).
		Return(domain.Usuario{ID: "uid-1", Username: "laura", Rol: domain.RolVendedor}, nil).
		Run(func(args mock.Arguments) {
			guardado = args.Get(1).(domain.Usuario)
		})

	usuario, err := svc.Register(context.Background(), domain.UsuarioRegistro{
		Username: "laura",
		Password: "secreto123",
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-1", usuario.ID)
	// La contraseña nunca se guarda en claro y el rol por defecto es vendedor.
	assert.NotEqual(t, "secreto123", guardado.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("secreto123")))
	assert.Equal(t, domain.RolVendedor, guardado.Rol)
	mockRepo.AssertExpectations(t)
}

func TestRegister_CamposRequeridos(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, logger.NewLogger("fatal"))

	_, err := svc.Register(context.Background(), domain.UsuarioRegistro{Username: "laura"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegister_UsuarioDuplicado(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, logger.NewLogger("fatal"))

	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Usuario")).
		Return(domain.Usuario{}, apperror.NewConflictError("El usuario 'laura' ya existe."))

	_, err := svc.Register(context.Background(), domain.UsuarioRegistro{
		Username: "laura",
		Password: "secreto123",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	mockRepo.AssertExpectations(t)
}

func TestLogin_Exito(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := userservice.NewService(mockRepo, mockToken, logger.NewLogger("fatal"))

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)

	mockRepo.On("FindByUsername", mock.Anything, "laura").
		Return(domain.Usuario{ID: "uid-1", Username: "laura", PasswordHash: string(hash), Rol: domain.RolAdmin}, nil)
	mockToken.On("GenerateToken", "uid-1", "admin").Return("jwt-token", nil)

	tokenString, err := svc.Login(context.Background(), "laura", "secreto123")

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", tokenString)
	mockRepo.AssertExpectations(t)
	mockToken.AssertExpectations(t)
}

// TestLogin_CredencialesInvalidas verifica que tanto el usuario inexistente
// como la contraseña incorrecta respondan con el mismo error genérico.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)

	casos := []struct {
		nombre   string
		password string
		setup    func(m *MockUserRepository)
	}{
		{
			nombre:   "usuario inexistente",
			password: "secreto123",
			setup: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "laura").
					Return(domain.Usuario{}, apperror.NewNotFoundError("Usuario 'laura' no encontrado."))
			},
		},
		{
			nombre:   "contraseña incorrecta",
			password: "otra-clave",
			setup: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "laura").
					Return(domain.Usuario{ID: "uid-1", PasswordHash: string(hash)}, nil)
			},
		},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockToken := new(MockTokenService)
			svc := userservice.NewService(mockRepo, mockToken, logger.NewLogger("fatal"))
			c.setup(mockRepo)

			_, err := svc.Login(context.Background(), "laura", c.password)

			assert.Error(t, err)
			assert.IsType(t, &apperror.UnauthorizedError{}, err)
			assert.ErrorContains(t, err, "Credenciales inválidas.")
			mockToken.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
		})
	}
}
