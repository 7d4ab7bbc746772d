package warehouses

import (
	"context"
	"testing"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	client, err := db.NewEmbeddedNamed("warehouses_repo_" + uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(&models.Warehouse{}, &models.WarehouseStock{}))
	return client.DB()
}

func createWarehouse(t *testing.T, repo *Repository, name string) *models.Warehouse {
	t.Helper()
	created, err := repo.Create(context.Background(), &models.Warehouse{
		Name:    name,
		Address: "1 Depot Road",
		City:    "Ikeja",
		State:   "Lagos",
	})
	require.NoError(t, err)
	return created
}

func TestRepositoryUpsertStock(t *testing.T) {
	repo := NewRepository(newRepoTestDB(t))
	ctx := context.Background()

	warehouse := createWarehouse(t, repo, "Ikeja Main")
	productID := uuid.New()

	first, err := repo.UpsertStock(ctx, &models.WarehouseStock{
		WarehouseID:   warehouse.ID,
		ProductID:     productID,
		StockQuantity: 12,
	})
	require.NoError(t, err)

	second, err := repo.UpsertStock(ctx, &models.WarehouseStock{
		WarehouseID:      warehouse.ID,
		ProductID:        productID,
		StockQuantity:    20,
		ReservedQuantity: 4,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "upsert must replace the existing row")

	got, err := repo.GetByID(ctx, warehouse.ID)
	require.NoError(t, err)
	require.Len(t, got.Stock, 1)
	require.Equal(t, 20, got.Stock[0].StockQuantity)
	require.Equal(t, 16, got.Stock[0].Available())
}

func TestRepositoryDeleteRemovesStock(t *testing.T) {
	repo := NewRepository(newRepoTestDB(t))
	ctx := context.Background()

	warehouse := createWarehouse(t, repo, "Abuja DC")
	_, err := repo.UpsertStock(ctx, &models.WarehouseStock{
		WarehouseID:   warehouse.ID,
		ProductID:     uuid.New(),
		StockQuantity: 5,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, warehouse.ID))

	var count int64
	require.NoError(t, repo.db.Model(&models.WarehouseStock{}).
		Where("warehouse_id = ?", warehouse.ID).
		Count(&count).Error)
	require.Zero(t, count)
}
