package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"macstock/internal/api/pedido"
	"macstock/internal/api/product"
	"macstock/internal/api/stock"
	"macstock/internal/api/user"
	"macstock/internal/domain"
	"macstock/internal/pkg/cache"
	"macstock/internal/pkg/middleware"
)

// Dependencies agrupa los handlers y la infraestructura que el router necesita.
type Dependencies struct {
	ProductHandler *product.Handler
	StockHandler   *stock.Handler
	PedidoHandler  *pedido.Handler
	UserHandler    *user.Handler
	TokenService   middleware.TokenService
	CacheClient    cache.Client

	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// NewRouter configura y devuelve el router HTTP principal.
// Recibe los handlers ya inicializados por inyección de dependencias.
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(deps.TokenService)
	soloBackOffice := middleware.PermissionMiddleware(domain.RolAdmin, domain.RolVendedor)
	soloAdmin := middleware.PermissionMiddleware(domain.RolAdmin)

	// Health check
	mux.HandleFunc("/ping", PingHandler)

	// Tienda (lectura pública): catálogo y tabla de descuentos
	mux.HandleFunc("/v1/productos", func(w http.ResponseWriter, r *http.Request) {
		// La creación de productos es del back-office; la lectura es pública.
		if r.Method == http.MethodPost {
			auth(soloAdmin(deps.ProductHandler.ProductosHandler))(w, r)
			return
		}
		deps.ProductHandler.ProductosHandler(w, r)
	})
	mux.HandleFunc("/v1/productos/", deps.ProductHandler.ProductoPorIDHandler)
	mux.HandleFunc("/v1/precios", deps.ProductHandler.PreciosHandler)

	// Pedidos: cualquier cuenta autenticada del back-office
	mux.HandleFunc("/v1/pedidos", auth(soloBackOffice(deps.PedidoHandler.CrearPedidoHandler)))

	// Libro de movimientos de stock: solo administradores
	mux.HandleFunc("/v1/stock/modificaciones", auth(soloAdmin(deps.StockHandler.ModificacionesHandler)))

	// Autenticación
	mux.HandleFunc("/v1/auth/login", deps.UserHandler.LoginHandler)
	mux.HandleFunc("/v1/auth/register", deps.UserHandler.RegisterHandler)

	// Documentación interactiva de la API
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Middlewares globales: el rate limiter envuelve todo el mux.
	rateLimiter := middleware.RateLimiter(deps.CacheClient, deps.RateLimitMaxRequests, deps.RateLimitPeriod)

	return rateLimiter(mux)
}

// PingHandler responde el health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método no permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
