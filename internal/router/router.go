package router

import (
	"github.com/gin-gonic/gin"

	"catalogo/internal/config"
	"catalogo/internal/handler"
	"catalogo/internal/middleware"
	"catalogo/internal/repository"
	"catalogo/internal/service"
)

// Repos groups the store access points injected into the services. Wiring
// through this struct keeps the engine constructible over any backend,
// Firestore in production and the in-memory store in tests.
type Repos struct {
	Productos   repository.ProductoRepository
	Categorias  repository.CategoriaRepository
	Usuarios    repository.UsuarioRepository
	Migraciones repository.MigracionRepository
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← store client
func New(cfg *config.Config, repos Repos) *gin.Engine {
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

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(repos.Usuarios, cfg)
	productoSvc := service.NewProductoService(repos.Productos, repos.Categorias)
	categoriaSvc := service.NewCategoriaService(repos.Categorias, repos.Productos)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(repos.Migraciones))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	jwtMW := middleware.JWTAuth(authSvc)

	products := r.Group("/api/products")
	{
		// Seed stays open: demo convenience for an empty database.
		products.POST("/seed", productosH.Seed)

		protegidos := products.Group("", jwtMW)
		{
			protegidos.GET("/", productosH.Listar)
			protegidos.POST("/", productosH.Crear)
			protegidos.GET("/:id", productosH.ObtenerPorID)
			protegidos.PUT("/:id", productosH.Actualizar)
			protegidos.DELETE("/:id", productosH.Eliminar)
			protegidos.POST("/batch", productosH.CrearLote)
			protegidos.PATCH("/:id/estado", productosH.CambiarEstado)
		}
	}

	categories := r.Group("/api/categories", jwtMW)
	{
		categories.GET("/", categoriasH.Listar)
		categories.POST("/", categoriasH.Crear)
		categories.GET("/:id", categoriasH.ObtenerPorID)
		categories.PUT("/:id", categoriasH.Actualizar)
		categories.DELETE("/:id", categoriasH.Eliminar)
		categories.PATCH("/:id/estado", categoriasH.CambiarEstado)
	}

	return r
}
