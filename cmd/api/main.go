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

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/auth"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/purchase"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/serviceorder"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/usecase"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/infrastructure/memory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/sebastiaoggj/Agro-sh-sub000/internal/interfaces/http"
	"github.com/sebastiaoggj/Agro-sh-sub000/pkg/config"
	"github.com/sebastiaoggj/Agro-sh-sub000/pkg/jwt"
	"github.com/sebastiaoggj/Agro-sh-sub000/pkg/logger"
)

// storage agrupa los repositorios según el driver configurado.
type storage struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	repos     repository.TxRepos
	tx        repository.TxRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		store := memory.NewStore()
		return &storage{
			companies: store.Companies(),
			users:     store.Users(),
			repos:     store.Repos(),
			tx:        memory.NewTxRunner(store),
			close:     func() {},
		}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		companies: postgres.NewCompanyRepository(pool),
		users:     postgres.NewUserRepository(pool),
		repos:     postgres.NewRepos(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
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
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer store.close()

	tokens := jwt.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}
	repos := store.repos

	moduleSvc := usecase.NewModuleService(store.companies)
	authUC := auth.NewAuthUseCase(store.users, store.companies, tokens)
	userUC := usecase.NewUserUseCase(store.users)
	companyUC := usecase.NewCompanyUseCase(store.companies, moduleSvc)
	productUC := usecase.NewProductUseCase(repos.Products)
	farmUC := usecase.NewFarmUseCase(repos.Farms)
	fleetUC := usecase.NewFleetUseCase(repos.Fleet)

	inventoryUC := inventory.NewUseCase(store.tx, repos.Records, repos.History, log.Component("inventory"))
	serviceOrders := serviceorder.NewWorkflow(store.tx, repos.ServiceOrders, repos.Records, log.Component("service_orders"))
	purchaseOrders := purchase.NewWorkflow(store.tx, repos.PurchaseOrders, log.Component("purchasing"))
	suggestions := purchase.NewSuggestionUseCase(repos.ServiceOrders, repos.PurchaseOrders, repos.Records, repos.Products)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Agro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	err = httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		CompanyUC:      companyUC,
		ModuleService:  moduleSvc,
		ProductUC:      productUC,
		FarmUC:         farmUC,
		FleetUC:        fleetUC,
		Inventory:      inventoryUC,
		ServiceOrders:  serviceOrders,
		PurchaseOrders: purchaseOrders,
		Suggestions:    suggestions,
		Tokens:         tokens,
		RateLimit:      cfg.HTTP.RateLimit,
		Log:            log.Component("http"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar rutas")
	}

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
