package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/catalog"
	"github.com/jhoicas/Ventas-api/internal/application/report"
	"github.com/jhoicas/Ventas-api/internal/application/tracking"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	PaqueteUC     *catalog.PaqueteUseCase
	SeguimientoUC *tracking.SeguimientoUseCase
	ReporteUC     *report.ReporteUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Paquetes: lectura para todos los roles, escritura solo admin/lider.
	paquetes := protected.Group("/paquetes")
	paqueteHandler := NewPaqueteHandler(deps.PaqueteUC)
	paquetes.Get("/", paqueteHandler.List)
	paquetes.Get("/:id", paqueteHandler.GetByID)
	paquetes.Post("/", RequireRole(entity.RoleAdmin, entity.RoleLider), paqueteHandler.Create)
	paquetes.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleLider), paqueteHandler.Update)

	// Seguimientos: cualquier rol opera sobre lo suyo; el alcance por dueño
	// se resuelve en el use case. Eliminar es solo admin.
	seguimientos := protected.Group("/seguimientos")
	seguimientoHandler := NewSeguimientoHandler(deps.SeguimientoUC)
	seguimientos.Post("/", seguimientoHandler.Create)
	seguimientos.Get("/", seguimientoHandler.Search)
	seguimientos.Get("/:id", seguimientoHandler.GetByID)
	seguimientos.Put("/:id", seguimientoHandler.Update)
	seguimientos.Post("/:id/finalizar", seguimientoHandler.Finalize)
	seguimientos.Post("/:id/cancelar", seguimientoHandler.Cancel)
	seguimientos.Delete("/:id", RequireRole(entity.RoleAdmin), seguimientoHandler.Delete)

	// Reportes
	reportes := protected.Group("/reportes")
	reporteHandler := NewReporteHandler(deps.ReporteUC)
	reportes.Post("/", reporteHandler.Create)
	reportes.Get("/", reporteHandler.List)
	reportes.Get("/:id", reporteHandler.GetByID)
	reportes.Put("/:id", reporteHandler.Update)
	reportes.Delete("/:id", reporteHandler.Delete)
}
