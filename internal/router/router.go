package router

import (
	"time"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/config"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/handler"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/infra"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/middleware"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/service"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps groups the shared infrastructure the router wires into handlers.
type Deps struct {
	DB         *gorm.DB
	RDB        *redis.Client
	RegistroCB *infra.CircuitBreaker
	Store      infra.AssetStore
	Dispatcher *worker.Dispatcher
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	db, rdb := deps.DB, deps.RDB

	// ── Infrastructure ───────────────────────────────────────────────────────
	docClient := infra.NewDocumentoClient(cfg.DocAPIURL, cfg.DocAPIToken)

	// ── Repositories ─────────────────────────────────────────────────────────
	registroRepo := repository.NewRegistroRepository(db)
	empresaRepo := repository.NewEmpresaRepository(db)
	sucursalRepo := repository.NewSucursalRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	clienteProvRepo := repository.NewClienteProveedorRepository(db)
	metodoPagoRepo := repository.NewMetodoPagoRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	ventaRepo := repository.NewVentaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	empresaSvc := service.NewEmpresaService(empresaRepo)
	sucursalSvc := service.NewSucursalService(sucursalRepo, cajaRepo, registroRepo)
	cajaSvc := service.NewCajaService(cajaRepo, registroRepo, deps.Dispatcher, cfg.AlertEmail)
	clienteProvSvc := service.NewClienteProveedorService(clienteProvRepo, registroRepo, rdb)
	metodoPagoSvc := service.NewMetodoPagoService(metodoPagoRepo, registroRepo, deps.Store)
	productoSvc := service.NewProductoService(productoRepo, ventaRepo, registroRepo, rdb)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, registroRepo, cfg)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, empresaRepo, deps.Dispatcher, rdb)
	documentoSvc := service.NewDocumentoService(docClient, deps.RegistroCB)

	// ── Handlers ─────────────────────────────────────────────────────────────
	empresasH := handler.NewEmpresasHandler(empresaSvc)
	sucursalesH := handler.NewSucursalesHandler(sucursalSvc)
	cajasH := handler.NewCajasHandler(cajaSvc)
	clientesProvH := handler.NewClientesProveedoresHandler(clienteProvSvc)
	metodosPagoH := handler.NewMetodosPagoHandler(metodoPagoSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	documentosH := handler.NewDocumentosHandler(documentoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, deps.RegistroCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), usuariosH.Login)
		auth.POST("/refresh", usuariosH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Document registry relay — any authenticated role
		v1.GET("/documentos/:tipo/:numero", middleware.RequireRole("cajero", "supervisor", "administrador"), documentosH.Consultar)

		// Empresa — administrador only
		empresas := v1.Group("/empresas", middleware.RequireRole("administrador"))
		{
			empresas.POST("", empresasH.Crear)
			empresas.GET("/:id", empresasH.Obtener)
			empresas.PUT("/:id", empresasH.Actualizar)
		}

		// Sucursales — administrador writes, supervisores read
		v1.GET("/sucursales", middleware.RequireRole("supervisor", "administrador"), sucursalesH.Listar)
		sucursales := v1.Group("/sucursales", middleware.RequireRole("administrador"))
		{
			sucursales.POST("", sucursalesH.Crear)
			sucursales.PUT("/:id", sucursalesH.Actualizar)
			sucursales.DELETE("/:id", sucursalesH.Desactivar)
			sucursales.PATCH("/:id/restaurar", sucursalesH.Restaurar)
		}

		// Cajas — session open/close is daily cashier work; structure is admin's
		v1.GET("/cajas", middleware.RequireRole("cajero", "supervisor", "administrador"), cajasH.Listar)
		v1.POST("/cajas/abrir", middleware.RequireRole("cajero", "supervisor", "administrador"), cajasH.Abrir)
		v1.POST("/cajas/:id/cerrar", middleware.RequireRole("cajero", "supervisor", "administrador"), cajasH.Cerrar)
		cajas := v1.Group("/cajas", middleware.RequireRole("administrador"))
		{
			cajas.POST("", cajasH.Crear)
			cajas.PUT("/:id", cajasH.Actualizar)
			cajas.DELETE("/:id", cajasH.Desactivar)
			cajas.PATCH("/:id/restaurar", cajasH.Restaurar)
		}

		// Clientes y proveedores
		v1.GET("/clientes-proveedores", middleware.RequireRole("cajero", "supervisor", "administrador"), clientesProvH.Buscar)
		cp := v1.Group("/clientes-proveedores", middleware.RequireRole("supervisor", "administrador"))
		{
			cp.POST("", clientesProvH.Crear)
			cp.PUT("/:id", clientesProvH.Actualizar)
			cp.DELETE("/:id", clientesProvH.Desactivar)
			cp.PATCH("/:id/restaurar", clientesProvH.Restaurar)
		}

		// Metodos de pago
		v1.GET("/metodos-pago", middleware.RequireRole("cajero", "supervisor", "administrador"), metodosPagoH.Listar)
		mp := v1.Group("/metodos-pago", middleware.RequireRole("administrador"))
		{
			mp.POST("", metodosPagoH.Crear)
			mp.PUT("/:id", metodosPagoH.Actualizar)
			mp.DELETE("/:id", metodosPagoH.Desactivar)
			mp.PATCH("/:id/restaurar", metodosPagoH.Restaurar)
		}

		// Productos — reads for everyone, writes for administrador
		v1.GET("/productos", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.Listar)
		v1.GET("/productos/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.Obtener)
		v1.GET("/productos/barcode/:codigo", middleware.RequireRole("cajero", "supervisor", "administrador"), productosH.ObtenerPorBarcode)
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.GET("/:id/validar-eliminar", productosH.ValidarEliminar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.DELETE("/:id/fisico", productosH.EliminarFisico)
			prods.PATCH("/:id/restaurar", productosH.Restaurar)
		}

		// Ventas
		v1.POST("/ventas", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.Registrar)
		v1.GET("/ventas", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.Listar)
		v1.GET("/ventas/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.Obtener)

		// Usuarios y permisos — administrador only
		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/restaurar", usuariosH.Restaurar)
			usuarios.GET("/:id/permisos", usuariosH.ObtenerPermisos)
			usuarios.PUT("/:id/permisos", usuariosH.ActualizarPermisos)
		}
		v1.GET("/modulos", middleware.RequireRole("administrador"), usuariosH.ListarModulos)
	}

	// Stored assets (payment method icons) are served statically.
	r.Static("/assets", cfg.AssetStoragePath)

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
