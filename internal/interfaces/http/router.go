package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuentas-api/internal/application/authz"
	"github.com/jhoicas/Cuentas-api/internal/application/inventory"
	"github.com/jhoicas/Cuentas-api/internal/application/ledger"
	"github.com/jhoicas/Cuentas-api/internal/application/logbook"
	"github.com/jhoicas/Cuentas-api/internal/application/project"
	"github.com/jhoicas/Cuentas-api/internal/application/report"
	"github.com/jhoicas/Cuentas-api/internal/domain/access"
	"github.com/jhoicas/Cuentas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProjectUC   *project.ProjectUseCase
	MemberUC    *project.MemberUseCase
	InviteUC    *project.InviteUseCase
	LedgerUC    *ledger.LedgerUseCase
	LogbookUC   *logbook.LogbookUseCase
	InventoryUC *inventory.InventoryUseCase
	ReportUC    *report.ReportUseCase
	Authorizer  *authz.Authorizer
	Logger      *logger.Logger
	Health      func(ctx context.Context) error // ping al almacén; nil = siempre ok
	JWTSecret   string
	JWTIssuer   string
}

// AppConfig configuración de Fiber para cmd/api y los tests.
// Immutable: los ids de la ruta llegan a los repositorios y deben sobrevivir a la petición.
func AppConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				c.Locals(localInternalError, err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Todas las rutas requieren Bearer Token
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	projectHandler := NewProjectHandler(deps.ProjectUC)
	memberHandler := NewMemberHandler(deps.MemberUC, deps.InviteUC)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	logbookHandler := NewLogbookHandler(deps.LogbookUC)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	reportHandler := NewReportHandler(deps.ReportUC)

	protected.Post("/invites/join", memberHandler.Join)

	projects := protected.Group("/projects")
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)

	// Rutas de un proyecto: la membresía se resuelve una vez por petición
	p := projects.Group("/:projectID", ProjectAccess(deps.Authorizer))
	read := RequirePermission(access.PermRead)
	write := RequirePermission(access.PermWrite)
	del := RequirePermission(access.PermDelete)
	admin := RequirePermission(access.PermAdmin)
	members := RequirePermission(access.PermManageMembers)

	p.Get("/", read, projectHandler.Get)
	p.Put("/", admin, projectHandler.Update)
	p.Delete("/", admin, projectHandler.Delete)

	// Miembros e invitaciones
	p.Get("/members", read, memberHandler.ListMembers)
	p.Put("/members/:userID", members, memberHandler.ChangeRole)
	p.Delete("/members/:userID", members, memberHandler.RemoveMember)
	p.Post("/leave", read, memberHandler.Leave)
	p.Get("/invites", members, memberHandler.ListInvites)
	p.Post("/invites", members, memberHandler.CreateInvite)
	p.Delete("/invites/:inviteID", members, memberHandler.RevokeInvite)

	// Ingresos, gastos y ajustes
	p.Get("/entries", read, ledgerHandler.ListEntries)
	p.Post("/entries", write, ledgerHandler.CreateEntry)
	p.Put("/entries/:entryID", write, ledgerHandler.UpdateEntry)
	p.Delete("/entries/:entryID", del, ledgerHandler.DeleteEntry)
	p.Get("/balances", read, ledgerHandler.ListAdjustments)
	p.Post("/balances", write, ledgerHandler.CreateAdjustment)
	p.Delete("/balances/:id", del, ledgerHandler.DeleteAdjustment)
	p.Get("/summary", read, ledgerHandler.Summary)

	// Bitácora
	p.Get("/logbook", read, logbookHandler.List)
	p.Post("/logbook", write, logbookHandler.Create)
	p.Put("/logbook/:entryID", write, logbookHandler.Update)
	p.Delete("/logbook/:entryID", del, logbookHandler.Delete)

	// Inventario
	inv := p.Group("/inventory/items")
	inv.Get("/", read, inventoryHandler.ListItems)
	inv.Post("/", write, inventoryHandler.CreateItem)
	inv.Get("/:itemID", read, inventoryHandler.GetItem)
	inv.Put("/:itemID", write, inventoryHandler.UpdateItem)
	inv.Delete("/:itemID", del, inventoryHandler.DeleteItem)
	inv.Get("/:itemID/movements", read, inventoryHandler.ListMovements)
	inv.Post("/:itemID/movements", write, inventoryHandler.CreateMovement)

	// Reporte
	p.Get("/report.pdf", read, reportHandler.Download)
}
