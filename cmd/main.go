package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"macstock/config"
	"macstock/internal/pkg/cache"
	"macstock/internal/pkg/database"
	"macstock/internal/pkg/logger"
	"macstock/internal/pkg/token"
	"macstock/internal/pricing"

	"macstock/internal/api/pedido"
	"macstock/internal/api/product"
	"macstock/internal/api/router"
	"macstock/internal/api/stock"
	"macstock/internal/api/user"
	"macstock/internal/repository/pedidorepo"
	"macstock/internal/repository/productrepo"
	"macstock/internal/repository/stockrepo"
	"macstock/internal/repository/userrepo"
	"macstock/internal/service/pedidoservice"
	"macstock/internal/service/productservice"
	"macstock/internal/service/stockservice"
	"macstock/internal/service/userservice"

	_ "macstock/docs" // Documentación generada por swag
)

// @title MACStock API
// @version 1.0
// @description API de la tienda MACS: catálogo, pedidos con precios por volumen y libro de movimientos de stock.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	stdlog.Println("⚡ Inicializando servicio MACStock...")

	// 0. Cargar variables de ambiente (.env)
	if err := godotenv.Load(); err != nil {
		// Sin .env se sigue adelante: las variables esenciales pueden venir
		// del ambiente del sistema (ej. Docker).
		stdlog.Println("⚠️ Aviso: archivo .env no encontrado o ilegible. Cargando configs solo del ambiente del sistema.")
	}

	// 1. Configuración e inicialización
	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configuración cargada.", nil)

	// 2. Conexión con la infraestructura

	// A. Base de datos (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falla al conectar con la base de datos.", err)
	}
	defer db.Close()
	log.Info("Conexión PostgreSQL establecida.", nil)

	// B. Cache (Redis)
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexión Redis establecida.", nil)

	// C. Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Servicio de tokens JWT inicializado.", nil)

	// D. Tabla de precios por volumen (configuración inmutable de la tienda)
	tablaPrecios := pricing.DefaultTable()

	// 3. Inyección de dependencias: Repository -> Service -> Handler

	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, log)
	productSvc := productservice.NewService(productRepo, log)
	productHandler := product.NewHandler(productSvc, tablaPrecios, log)
	log.Debug("Módulo de catálogo inicializado.", nil)

	stockRepo := stockrepo.NewStockRepository(db, cfg.DBTimeout, log)
	stockSvc := stockservice.NewService(stockRepo, log)
	stockHandler := stock.NewHandler(stockSvc, log)
	log.Debug("Módulo de movimientos de stock inicializado.", nil)

	pedidoRepo := pedidorepo.NewPedidoRepository(db, cfg.DBTimeout, log)
	pedidoSvc := pedidoservice.NewService(pedidoRepo, tablaPrecios, log)
	pedidoHandler := pedido.NewHandler(pedidoSvc, log)
	log.Debug("Módulo de pedidos inicializado.", nil)

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)
	userHandler := user.NewHandler(userSvc, log)
	log.Debug("Módulo de usuarios inicializado.", nil)

	// 4. Router y servidor HTTP

	r := router.NewRouter(router.Dependencies{
		ProductHandler:       productHandler,
		StockHandler:         stockHandler,
		PedidoHandler:        pedidoHandler,
		UserHandler:          userHandler,
		TokenService:         tokenSvc,
		CacheClient:          cacheClient,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Ejecución y graceful shutdown
	go func() {
		log.Info("Servidor MACStock escuchando.", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("El servidor falló.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Señal de apagado recibida. Cerrando el servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Apagado del servidor forzado.", err)
	}

	log.Info("Servidor cerrado con éxito.", nil)
}
