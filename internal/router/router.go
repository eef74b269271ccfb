package router

import (
	"time"

	"renove/internal/config"
	"renove/internal/handler"
	"renove/internal/middleware"
	"renove/internal/repository"
	"renove/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← GuardedStore ← driver
// now is the clinic clock; "today" is whatever date it reports.
func New(cfg *config.Config, store *repository.GuardedStore, now func() time.Time) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters). gzip wraps everything that
	// writes a body, errors and recovered panics included; PDF and XLSX are
	// already compressed.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(gzip.Gzip(gzip.BestSpeed, gzip.WithExcludedPathsRegexs([]string{`\.(pdf|xlsx)$`})))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Services ─────────────────────────────────────────────────────────────
	catalogoSvc := service.NewCatalogoService(store, now)
	pacienteSvc := service.NewPacienteService(store, catalogoSvc, now)
	respaldoSvc := service.NewRespaldoService(store, now)

	// ── Handlers ─────────────────────────────────────────────────────────────
	tratamientosH := handler.NewTratamientosHandler(catalogoSvc)
	pacientesH := handler.NewPacientesHandler(pacienteSvc)
	reportesH := handler.NewReportesHandler(pacienteSvc, cfg.ClinicName)
	respaldoH := handler.NewRespaldoHandler(respaldoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(store, cfg.StorageDriver))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		trat := v1.Group("/tratamientos")
		{
			trat.GET("", tratamientosH.Listar)
			trat.POST("", tratamientosH.Crear)
			trat.GET("/estadisticas", tratamientosH.Estadisticas)
			trat.GET("/exportar", tratamientosH.Exportar)
			trat.GET("/cotizacion", tratamientosH.Cotizar)
			trat.POST("/validar", tratamientosH.Validar)
		}

		pac := v1.Group("/pacientes")
		{
			pac.GET("", pacientesH.ListarHoy)
			pac.POST("", pacientesH.Registrar)
			pac.DELETE("/:id", pacientesH.Eliminar)
			pac.POST("/limpiar", middleware.DestructiveRateLimiter(), pacientesH.Limpiar)
			pac.GET("/:id/comprobante.pdf", reportesH.Comprobante)
		}

		v1.GET("/estadisticas/hoy", pacientesH.EstadisticasHoy)

		rep := v1.Group("/reportes")
		{
			rep.GET("/diario.pdf", reportesH.CierrePDF)
			rep.GET("/diario.xlsx", reportesH.CierreXLSX)
		}

		v1.GET("/respaldo", respaldoH.Exportar)
		v1.POST("/respaldo", middleware.DestructiveRateLimiter(), respaldoH.Importar)
	}

	// Swagger UI, only outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
