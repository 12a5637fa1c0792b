package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/entity"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/repository"
	"github.com/sebastiaoggj/Agro-sh-sub000/internal/infrastructure/postgres"
	"github.com/sebastiaoggj/Agro-sh-sub000/pkg/config"
)

// newTestPool conecta a TEST_DATABASE_URL y aplica el esquema; sin la variable el test se omite.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../../migrations/001_init.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)
	return pool
}

type fixture struct {
	company, farm, otherFarm, product, record string
}

func seed(t *testing.T, repos repository.TxRepos, companies *postgres.CompanyRepo) fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	f := fixture{
		company: uuid.NewString(), farm: uuid.NewString(), otherFarm: uuid.NewString(),
		product: uuid.NewString(), record: uuid.NewString(),
	}
	require.NoError(t, companies.Create(ctx, &entity.Company{
		ID: f.company, Name: "Santa Rita", Document: "12345678000190", Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
	for _, id := range []string{f.farm, f.otherFarm} {
		require.NoError(t, repos.Farms.Create(ctx, &entity.Farm{ID: id, CompanyID: f.company, Name: "Hacienda " + id[:4], CreatedAt: now, UpdatedAt: now}))
	}
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: f.product, CompanyID: f.company, Name: "Glifosato", SearchKey: "glifosato " + f.product[:8],
		UnitMeasure: "L", Category: "HERBICIDA", DefaultPurchaseQty: decimal.NewFromInt(10),
		ReferencePrice: decimal.NewFromInt(5), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Records.Create(ctx, &entity.InventoryRecord{
		ID: f.record, CompanyID: f.company, ProductID: f.product, FarmID: f.farm,
		PhysicalStock: decimal.NewFromInt(50), ReservedQty: decimal.Zero, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.PurchaseOrders.Create(ctx, &entity.PurchaseOrder{
		ID: uuid.NewString(), CompanyID: f.company, Number: 1, ProductID: f.product, FarmID: f.farm,
		Quantity: decimal.NewFromInt(10), Unit: "L", UnitPrice: decimal.NewFromInt(5), TotalValue: decimal.NewFromInt(50),
		Status: entity.PurchaseStatusPending, CreatedAt: now, UpdatedAt: now,
	}))
	return f
}

func TestListados_FiltroPorHacienda(t *testing.T) {
	pool := newTestPool(t)
	repos := postgres.NewRepos(pool)
	f := seed(t, repos, postgres.NewCompanyRepository(pool))
	ctx := context.Background()

	records, err := repos.Records.ListByCompany(ctx, f.company, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	records, err = repos.Records.ListByCompany(ctx, f.company, f.farm, 0, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	records, err = repos.Records.ListByCompany(ctx, f.company, f.otherFarm, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, records)

	pos, err := repos.PurchaseOrders.List(ctx, repository.PurchaseOrderFilter{CompanyID: f.company, FarmID: f.farm})
	require.NoError(t, err)
	assert.Len(t, pos, 1)
	pos, err = repos.PurchaseOrders.List(ctx, repository.PurchaseOrderFilter{CompanyID: f.company, Status: entity.PurchaseStatusReceived})
	require.NoError(t, err)
	assert.Empty(t, pos)

	orders, err := repos.ServiceOrders.List(ctx, repository.ServiceOrderFilter{CompanyID: f.company})
	require.NoError(t, err)
	assert.Empty(t, orders)
	orders, err = repos.ServiceOrders.List(ctx, repository.ServiceOrderFilter{
		CompanyID: f.company, FarmID: f.farm, Status: entity.OrderStatusAwaitingProduct,
	})
	require.NoError(t, err)
	assert.Empty(t, orders)

	rec, err := repos.Records.GetByKey(ctx, f.product, f.farm)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Available().Equal(decimal.NewFromInt(50)))
}

func TestGetByID_IDInvalidoEsNoEncontrado(t *testing.T) {
	pool := newTestPool(t)
	repos := postgres.NewRepos(pool)
	ctx := context.Background()

	order, err := repos.ServiceOrders.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, order)

	po, err := repos.PurchaseOrders.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, po)

	product, err := repos.Products.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, product)

	rec, err := repos.Records.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, rec)
}
