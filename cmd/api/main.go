package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Cuentas-api/internal/application/authz"
	"github.com/jhoicas/Cuentas-api/internal/application/inventory"
	"github.com/jhoicas/Cuentas-api/internal/application/ledger"
	"github.com/jhoicas/Cuentas-api/internal/application/logbook"
	"github.com/jhoicas/Cuentas-api/internal/application/project"
	"github.com/jhoicas/Cuentas-api/internal/application/report"
	"github.com/jhoicas/Cuentas-api/internal/domain/repository"
	"github.com/jhoicas/Cuentas-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Cuentas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cuentas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Cuentas-api/internal/interfaces/http"
	"github.com/jhoicas/Cuentas-api/pkg/config"
	"github.com/jhoicas/Cuentas-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// txRunner cubre las transacciones que piden inventario y proyectos.
type txRunner interface {
	inventory.TxRunner
	project.TxRunner
}

// stores repositorios del driver elegido con STORE_DRIVER.
type stores struct {
	tx        txRunner
	projects  repository.ProjectRepository
	members   repository.MembershipRepository
	invites   repository.InviteRepository
	items     repository.InventoryItemRepository
	movements repository.InventoryMovementRepository
	ledger    repository.LedgerRepository
	logbook   repository.LogbookRepository
	ping      func(ctx context.Context) error
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	projectUC := project.NewProjectUseCase(st.tx, st.projects)
	memberUC := project.NewMemberUseCase(st.members)
	inviteUC := project.NewInviteUseCase(st.tx, st.invites, project.InviteConfig{
		Expiration: cfg.Invite.Expiration(),
		MaxUses:    cfg.Invite.MaxUses,
	})
	ledgerUC := ledger.NewLedgerUseCase(st.ledger)
	logbookUC := logbook.NewLogbookUseCase(st.logbook)
	inventoryUC := inventory.NewInventoryUseCase(st.tx, st.items, st.movements)

	// PDF: reporte del proyecto con montos según REPORT_LOCALE
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Report.Locale)
	reportUC := report.NewReportUseCase(st.projects, st.ledger, st.items, st.movements, st.logbook, pdfGenerator)

	app := fiber.New(httpRouter.AppConfig(cfg.App.Name))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Cuentas API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProjectUC:   projectUC,
		MemberUC:    memberUC,
		InviteUC:    inviteUC,
		LedgerUC:    ledgerUC,
		LogbookUC:   logbookUC,
		InventoryUC: inventoryUC,
		ReportUC:    reportUC,
		Authorizer:  authz.NewAuthorizer(st.members),
		Logger:      log,
		Health:      st.ping,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores abre PostgreSQL (y aplica migraciones si DB_AUTO_MIGRATE) o el almacén en memoria.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		m := memory.NewStore()
		return &stores{
			tx:        m.TxRunner(),
			projects:  m.Projects(),
			members:   m.Members(),
			invites:   m.Invites(),
			items:     m.Items(),
			movements: m.Movements(),
			ledger:    m.Ledger(),
			logbook:   m.Logbook(),
			ping:      func(context.Context) error { return nil },
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &stores{
		tx:        postgres.NewTxRunner(pool),
		projects:  postgres.NewProjectRepository(pool),
		members:   postgres.NewMembershipRepository(pool),
		invites:   postgres.NewInviteRepository(pool),
		items:     postgres.NewInventoryItemRepository(pool),
		movements: postgres.NewInventoryMovementRepository(pool),
		ledger:    postgres.NewLedgerRepository(pool),
		logbook:   postgres.NewLogbookRepository(pool),
		ping:      pool.Ping,
		close:     pool.Close,
	}, nil
}
