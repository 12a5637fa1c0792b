// seed crea una empresa de demostración con usuarios, haciendas, talhões, flota,
// catálogo de insumos y stock inicial en la base configurada.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL o DB_*). La contraseña de
// todos los usuarios es SEED_PASSWORD (por defecto "agro12345").
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/auth"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/dto"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/inventory"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/application/usecase"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/infrastructure/postgres"
	"github.com/sebastiaoggj/Agro-sh-sub000/pkg/config"
	"github.com/sebastiaoggj/Agro-sh-sub000/pkg/jwt"
	"github.com/sebastiaoggj/Agro-sh-sub000/pkg/logger"
)

type seedProduct struct {
	name, ingredient, unit, category string
	qty, price, stock                string
}

var products = []seedProduct{
	{"Glifosato 480", "glifosato", "L", "HERBICIDA", "200", "28.50", "400"},
	{"Óleo Mineral", "óleo mineral", "L", "ADJUVANTE", "100", "12.00", "150"},
	{"Tiametoxam", "tiametoxam", "kg", "INSETICIDA", "20", "310.00", "15"},
	{"Azoxistrobina", "azoxistrobina", "L", "FUNGICIDA", "50", "95.00", "0"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "agro12345"
	}

	companies := postgres.NewCompanyRepository(pool)
	users := postgres.NewUserRepository(pool)
	repos := postgres.NewRepos(pool)
	tx := postgres.NewTxRunner(pool)

	modules := usecase.NewModuleService(companies)
	companyUC := usecase.NewCompanyUseCase(companies, modules)
	authUC := auth.NewAuthUseCase(users, companies, jwt.Config{Secret: "seed", ExpMinutes: 1})
	productUC := usecase.NewProductUseCase(repos.Products)
	farmUC := usecase.NewFarmUseCase(repos.Farms)
	fleetUC := usecase.NewFleetUseCase(repos.Fleet)
	inventoryUC := inventory.NewUseCase(tx, repos.Records, repos.History, log.Component("seed"))

	company, err := companyUC.Create(ctx, dto.CreateCompanyRequest{
		Name:     "Fazenda Demonstração",
		Document: "12345678000190",
		Email:    "contato@demo.agro",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear empresa")
	}

	var admin *dto.UserResponse
	for _, u := range []struct{ email, name, role string }{
		{"admin@demo.agro", "Administrador", entity.RoleAdmin},
		{"agronomo@demo.agro", "Agrônomo", entity.RoleAgronomo},
		{"operador@demo.agro", "Operador", entity.RoleOperador},
	} {
		out, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
			Email: u.email, Password: password, CompanyID: company.ID, Name: u.name, Role: u.role,
		})
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("crear usuario")
		}
		if u.role == entity.RoleAdmin {
			admin = out
		}
	}
	s := entity.Session{UserID: admin.ID, CompanyID: company.ID, Role: entity.RoleAdmin}

	var farmIDs []string
	for _, f := range []struct{ name, city, state string }{
		{"Santa Rita", "Sorriso", "MT"},
		{"Boa Vista", "Rio Verde", "GO"},
	} {
		farm, err := farmUC.Create(ctx, s, dto.CreateFarmRequest{Name: f.name, City: f.city, State: f.state})
		if err != nil {
			log.Fatal().Err(err).Msg("crear hacienda")
		}
		farmIDs = append(farmIDs, farm.ID)
		for i, area := range []int64{120, 85, 240} {
			_, err := farmUC.AddField(ctx, s, farm.ID, dto.CreateFieldRequest{
				Name: fmt.Sprintf("T%02d", i+1),
				Area: decimal.NewFromInt(area),
			})
			if err != nil {
				log.Fatal().Err(err).Msg("crear talhão")
			}
		}
	}

	if _, err := fleetUC.CreateCrop(ctx, s, dto.CreateCropRequest{Name: "Soja", Season: "2025/26"}); err != nil {
		log.Fatal().Err(err).Msg("crear cultura")
	}
	if _, err := fleetUC.CreateMachine(ctx, s, dto.CreateMachineRequest{
		Name: "Uniport 3030", Kind: "autopropelido", TankCapacity: decimal.NewFromInt(3000),
	}); err != nil {
		log.Fatal().Err(err).Msg("crear máquina")
	}
	if _, err := fleetUC.CreateOperator(ctx, s, dto.CreateOperatorRequest{Name: "João da Silva"}); err != nil {
		log.Fatal().Err(err).Msg("crear operador")
	}

	for _, p := range products {
		out, err := productUC.Create(ctx, s, dto.CreateProductRequest{
			Name:               p.name,
			ActiveIngredient:   p.ingredient,
			UnitMeasure:        p.unit,
			Category:           p.category,
			DefaultPurchaseQty: decimal.RequireFromString(p.qty),
			ReferencePrice:     decimal.RequireFromString(p.price),
		})
		if err != nil {
			log.Fatal().Err(err).Str("product", p.name).Msg("crear insumo")
		}
		stock := decimal.RequireFromString(p.stock)
		if !stock.IsPositive() {
			continue
		}
		_, err = inventoryUC.Entry(ctx, s, dto.StockEntryRequest{
			ProductID: out.ID,
			FarmID:    farmIDs[0],
			Quantity:  stock,
			Reason:    "stock inicial",
		})
		if err != nil {
			log.Fatal().Err(err).Str("product", p.name).Msg("entrada inicial")
		}
	}

	log.Info().Str("company_id", company.ID).Str("admin", admin.Email).Msg("datos de demostración creados")
}
