package pedidoservice_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"macstock/internal/domain"
	apperror "macstock/internal/errors"
	"macstock/internal/pkg/logger"
	"macstock/internal/pricing"
	"macstock/internal/service/pedidoservice"
)

// MockPedidoRepository es una implementación mock de la interfaz PedidoRepository.
type MockPedidoRepository struct {
	mock.Mock
}

func (m *MockPedidoRepository) Save(ctx context.Context, pedido domain.Pedido) (domain.Pedido, error) {
	args := m.Called(ctx, pedido)
	return args.Get(0).(domain.Pedido), args.Error(1)
}

func newService(repo *MockPedidoRepository) *pedidoservice.Service {
	return pedidoservice.NewService(repo, pricing.DefaultTable(), logger.NewLogger("fatal"))
}

// TestCrearPedido_PrecioPorVolumen verifica que el tramo se elija por la
// cantidad total de unidades del pedido y que los totales salgan de la
// tabla de precios, no del cliente.
func TestCrearPedido_PrecioPorVolumen(t *testing.T) {
	mockRepo := new(MockPedidoRepository)
	svc := newService(mockRepo)

	// 10 + 15 = 25 unidades: tramo de 16000.
	req := domain.PedidoRequest{
		NumeroOrden:   "PED-100",
		ClienteNombre: "Carlos",
		Productos: []domain.PedidoLineaRequest{
			{Referencia: "CAP-001", Nombre: "Gorra clásica", Cantidad: 10},
			{Referencia: "CAP-002", Nombre: "Gorra plana", Cantidad: 15},
		},
	}

	var guardado domain.Pedido
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Pedido")).
		Return(domain.Pedido{ID: 1, NumeroOrden: "PED-100"}, nil).
		Run(func(args mock.Arguments) {
			guardado = args.Get(1).(domain.Pedido)
		})

	_, err := svc.CrearPedido(context.Background(), req)
	require.NoError(t, err)

	unitario := decimal.NewFromInt(16000)
	require.Len(t, guardado.Productos, 2)
	assert.True(t, unitario.Equal(guardado.Productos[0].ValorUnitario))
	assert.True(t, unitario.Equal(guardado.Productos[1].ValorUnitario))
	assert.True(t, decimal.NewFromInt(160000).Equal(guardado.Productos[0].ValorTotal))
	assert.True(t, decimal.NewFromInt(240000).Equal(guardado.Productos[1].ValorTotal))

	subtotal := decimal.NewFromInt(400000)
	assert.True(t, subtotal.Equal(guardado.Subtotal))
	assert.True(t, decimal.NewFromInt(76000).Equal(guardado.IVA)) // 19%
	assert.True(t, decimal.NewFromInt(476000).Equal(guardado.Total))
	assert.False(t, guardado.Fecha.IsZero())
	mockRepo.AssertExpectations(t)
}

// TestCrearPedido_PrecioBase verifica que un pedido chico quede en el
// precio base.
func TestCrearPedido_PrecioBase(t *testing.T) {
	mockRepo := new(MockPedidoRepository)
	svc := newService(mockRepo)

	req := domain.PedidoRequest{
		NumeroOrden: "PED-101",
		Productos: []domain.PedidoLineaRequest{
			{Referencia: "CAP-001", Cantidad: 3},
		},
	}

	var guardado domain.Pedido
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Pedido")).
		Return(domain.Pedido{ID: 2}, nil).
		Run(func(args mock.Arguments) {
			guardado = args.Get(1).(domain.Pedido)
		})

	_, err := svc.CrearPedido(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(20000).Equal(guardado.Productos[0].ValorUnitario))
	assert.True(t, decimal.NewFromInt(60000).Equal(guardado.Subtotal))
	mockRepo.AssertExpectations(t)
}

// TestCrearPedido_Invalido verifica el rechazo de pedidos incompletos sin
// tocar el repositorio.
func TestCrearPedido_Invalido(t *testing.T) {
	casos := []struct {
		nombre string
		req    domain.PedidoRequest
	}{
		{"sin número de orden", domain.PedidoRequest{Productos: []domain.PedidoLineaRequest{{Referencia: "CAP-001", Cantidad: 1}}}},
		{"sin productos", domain.PedidoRequest{NumeroOrden: "PED-1"}},
		{"línea sin referencia", domain.PedidoRequest{NumeroOrden: "PED-1", Productos: []domain.PedidoLineaRequest{{Cantidad: 1}}}},
		{"línea con cantidad cero", domain.PedidoRequest{NumeroOrden: "PED-1", Productos: []domain.PedidoLineaRequest{{Referencia: "CAP-001"}}}},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			mockRepo := new(MockPedidoRepository)
			svc := newService(mockRepo)

			_, err := svc.CrearPedido(context.Background(), c.req)

			assert.Error(t, err)
			assert.IsType(t, &apperror.ValidationError{}, err)
			mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

// TestCrearPedido_NumeroOrdenDuplicado verifica que el conflicto del
// repositorio se propague al caller.
func TestCrearPedido_NumeroOrdenDuplicado(t *testing.T) {
	mockRepo := new(MockPedidoRepository)
	svc := newService(mockRepo)

	req := domain.PedidoRequest{
		NumeroOrden: "PED-100",
		Productos:   []domain.PedidoLineaRequest{{Referencia: "CAP-001", Cantidad: 1}},
	}

	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Pedido")).
		Return(domain.Pedido{}, apperror.NewConflictError("El número de orden 'PED-100' ya existe."))

	_, err := svc.CrearPedido(context.Background(), req)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
	mockRepo.AssertExpectations(t)
}
