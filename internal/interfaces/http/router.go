package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/report"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC     *inventory.ItemUseCase
	MovementUC *inventory.MovementUseCase
	ReportUC   *report.MovementReportUseCase
	Seeder     *inventory.Seeder
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	Logger     zerolog.Logger
}

// Router registra las rutas de la API. Lecturas públicas; escrituras con Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.AuthUC, deps.Logger)

	authHandler := NewAuthHandler(deps.AuthUC, deps.Logger)
	api.Post("/login", authHandler.Login)
	api.Post("/change-password", requireAuth, authHandler.ChangePassword)

	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.MovementUC, deps.Logger)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Get("/:id/movements", itemHandler.Movements)
	items.Post("/", requireAuth, itemHandler.Create)
	items.Put("/:id", requireAuth, itemHandler.Update)
	items.Delete("/:id", requireAuth, itemHandler.Delete)

	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.ReportUC, deps.Logger)
	movements.Get("/", movementHandler.List)
	movements.Post("/", requireAuth, movementHandler.Create)
	movements.Get("/report", requireAuth, movementHandler.Report)

	adminHandler := NewAdminHandler(deps.Seeder, deps.Logger)
	api.Post("/reset", requireAuth, RequireRole(entity.RoleAdmin), adminHandler.Reset)
}
