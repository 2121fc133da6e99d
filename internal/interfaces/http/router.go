package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nicklcsdev/inventario-lite/internal/application/auth"
	"github.com/nicklcsdev/inventario-lite/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EmpresaUC  *usecase.EmpresaUseCase
	ProductoUC *usecase.ProductoUseCase
	AIUC       *usecase.AIUseCase
	ReporteUC  *usecase.ReporteUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// Modelo de autorización:
//   - /api/auth/* es público.
//   - Todo lo demás requiere Bearer Token.
//   - Las lecturas (GET) las puede hacer cualquier usuario autenticado; las
//     mutaciones, la IA y el envío de correo exigen rol admin. Los usuarios
//     "externo" quedan en solo lectura.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Empresas
	empresas := protected.Group("/empresas")
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC)
	empresas.Get("/", empresaHandler.List)
	empresas.Get("/:nit", empresaHandler.GetByNIT)
	empresas.Post("/", RequireAdmin(), empresaHandler.Create)
	empresas.Put("/:nit", RequireAdmin(), empresaHandler.Update)
	empresas.Delete("/:nit", RequireAdmin(), empresaHandler.Delete)

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Post("/", RequireAdmin(), productoHandler.Create)
	productos.Put("/:id", RequireAdmin(), productoHandler.Update)
	productos.Delete("/:id", RequireAdmin(), productoHandler.Delete)

	// IA (solo admin: genera texto y registra productos por voz)
	ai := protected.Group("/ai", RequireAdmin())
	aiHandler := NewAIHandler(deps.AIUC)
	ai.Post("/descripcion", aiHandler.GenerarDescripcion)
	ai.Post("/voz", aiHandler.TranscribirVoz)

	// Reportes (descarga abierta a autenticados; envío por correo solo admin)
	reportes := protected.Group("/reportes")
	reporteHandler := NewReporteHandler(deps.ReporteUC)
	reportes.Get("/descargar", reporteHandler.Descargar)
	reportes.Post("/enviar", RequireAdmin(), reporteHandler.EnviarEmail)
}
