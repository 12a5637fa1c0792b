package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/auth"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/purchase"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/serviceorder"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/usecase"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CompanyUC      *usecase.CompanyUseCase
	ModuleService  *usecase.ModuleService
	ProductUC      *usecase.ProductUseCase
	FarmUC         *usecase.FarmUseCase
	FleetUC        *usecase.FleetUseCase
	Inventory      *inventory.UseCase
	ServiceOrders  *serviceorder.Workflow
	PurchaseOrders *purchase.Workflow
	Suggestions    *purchase.SuggestionUseCase
	Tokens         jwt.Config
	RateLimit      string // vacío = sin límite
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) error {
	api := app.Group("/api", RequestLogger(deps.Log))

	publicLimit, err := limitOrNext(deps.RateLimit)
	if err != nil {
		return err
	}
	tenantLimit, err := limitOrNext(deps.RateLimit)
	if err != nil {
		return err
	}

	const (
		admin    = entity.RoleAdmin
		agronomo = entity.RoleAgronomo
		operador = entity.RoleOperador
	)
	planners := RequireRole(admin, agronomo)
	anyRole := RequireRole(admin, agronomo, operador)

	// Auth y alta de empresa (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.ModuleService)
	authGroup := api.Group("/auth", publicLimit)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	api.Post("/companies", publicLimit, companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens), tenantLimit, anyRole)

	protected.Get("/users/me", authHandler.Me)

	companies := protected.Group("/companies/me")
	companies.Get("/", companyHandler.Me)
	companies.Post("/modules/:module", RequireRole(admin), companyHandler.ActivateModule)
	companies.Delete("/modules/:module", RequireRole(admin), companyHandler.DeactivateModule)

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", planners, productHandler.Create)
	products.Put("/:id", planners, productHandler.Update)
	products.Delete("/:id", planners, productHandler.Delete)

	farmHandler := NewFarmHandler(deps.FarmUC, deps.FleetUC)
	farms := protected.Group("/farms")
	farms.Get("/", farmHandler.List)
	farms.Get("/:id", farmHandler.GetByID)
	farms.Post("/", RequireRole(admin), farmHandler.Create)
	farms.Post("/:id/fields", planners, farmHandler.AddField)

	protected.Get("/crops", farmHandler.ListCrops)
	protected.Post("/crops", planners, farmHandler.CreateCrop)
	protected.Get("/machines", farmHandler.ListMachines)
	protected.Post("/machines", planners, farmHandler.CreateMachine)
	protected.Get("/operators", farmHandler.ListOperators)
	protected.Post("/operators", planners, farmHandler.CreateOperator)

	// Inventario (módulo inventory)
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	inv := protected.Group("/inventory", RequireModule(entity.ModuleInventory, deps.ModuleService))
	inv.Get("/records", inventoryHandler.List)
	inv.Get("/records/:id", inventoryHandler.Get)
	inv.Get("/records/:id/history", inventoryHandler.History)
	inv.Post("/entries", planners, inventoryHandler.Entry)
	inv.Post("/records/:id/exits", planners, inventoryHandler.Exit)
	inv.Post("/transfers", planners, inventoryHandler.Transfer)

	// Órdenes de servicio (módulo service_orders)
	soHandler := NewServiceOrderHandler(deps.ServiceOrders)
	so := protected.Group("/service-orders", RequireModule(entity.ModuleServiceOrders, deps.ModuleService))
	so.Get("/", soHandler.List)
	so.Get("/:id", soHandler.Get)
	so.Get("/:id/events", soHandler.Events)
	so.Post("/", planners, soHandler.Create)
	so.Put("/:id/plan", planners, soHandler.UpdatePlan)
	so.Post("/:id/resolve", planners, soHandler.ResolveReservation)
	so.Post("/:id/suspend", planners, soHandler.Suspend)
	so.Post("/:id/cancel", planners, soHandler.Cancel)
	so.Delete("/:id", planners, soHandler.Delete)
	so.Post("/:id/start", soHandler.Start)
	so.Post("/:id/partials", soHandler.RegisterPartial)
	so.Post("/:id/additives", soHandler.RegisterAdditive)
	so.Post("/:id/complete", soHandler.Complete)
	so.Post("/:id/qualifiers", planners, soHandler.SetQualifier)
	so.Delete("/:id/qualifiers/:qualifier", planners, soHandler.ClearQualifier)

	// Compras (módulo purchasing)
	poHandler := NewPurchaseHandler(deps.PurchaseOrders, deps.Suggestions)
	po := protected.Group("/purchase-orders", RequireModule(entity.ModulePurchasing, deps.ModuleService))
	po.Get("/suggestions", poHandler.Suggestions)
	po.Get("/", poHandler.List)
	po.Get("/:id", poHandler.Get)
	po.Post("/", planners, poHandler.Create)
	po.Post("/:id/approve", RequireRole(admin), poHandler.Approve)
	po.Post("/:id/receive", planners, poHandler.Receive)
	po.Post("/:id/cancel", planners, poHandler.Cancel)
	po.Delete("/:id", RequireRole(admin), poHandler.Delete)

	return nil
}

// limitOrNext arma el middleware de rate limit; sin configuración deja pasar todo.
func limitOrNext(formatted string) (fiber.Handler, error) {
	if formatted == "" {
		return func(c *fiber.Ctx) error { return c.Next() }, nil
	}
	return RateLimit(formatted)
}
