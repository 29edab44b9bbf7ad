package repository

import (
	"context"
	"os"
	"testing"

	"app/internal/domain/model"
	"app/internal/infra/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 一意制約・行ロック・upsertの同時実行の挙動は本物のPostgresでしか
// 再現できないので、ここだけTEST_DATABASE_URLのDBに対して実行する。
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	require.NoError(t, gormDB.Exec("TRUNCATE cart_items, carts RESTART IDENTITY CASCADE").Error)
	return gormDB
}

// 匿名カートの同時get-or-createは1行に収束すること。
// NULL行の部分一意インデックスが無いと2行できてしまう。
func TestCartGormRepository_ConcurrentAnonymousGetOrCreate(t *testing.T) {
	gormDB := openTestDB(t)
	r := NewCartGormRepository(gormDB)

	const workers = 8

	type result struct {
		id  int64
		err error
	}
	results := make(chan result, workers)
	for i := 0; i < workers; i++ {
		go func() {
			cart, err := r.GetOrCreateByUserID(context.Background(), nil)
			results <- result{id: cart.ID, err: err}
		}()
	}

	seen := map[int64]bool{}
	for i := 0; i < workers; i++ {
		res := <-results
		require.NoError(t, res.err)
		seen[res.id] = true
	}
	assert.Len(t, seen, 1)

	var count int64
	require.NoError(t, gormDB.Model(&model.Cart{}).Where("user_id IS NULL").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// 同一ユーザーの同時get-or-createも1行に収束すること。
func TestCartGormRepository_ConcurrentUserGetOrCreate(t *testing.T) {
	gormDB := openTestDB(t)
	r := NewCartGormRepository(gormDB)

	userID := int64(41)
	const workers = 8

	type result struct {
		id  int64
		err error
	}
	results := make(chan result, workers)
	for i := 0; i < workers; i++ {
		go func() {
			cart, err := r.GetOrCreateByUserID(context.Background(), &userID)
			results <- result{id: cart.ID, err: err}
		}()
	}

	seen := map[int64]bool{}
	for i := 0; i < workers; i++ {
		res := <-results
		require.NoError(t, res.err)
		seen[res.id] = true
	}
	assert.Len(t, seen, 1)

	var count int64
	require.NoError(t, gormDB.Model(&model.Cart{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// 同じ商品の同時追加は(cart_id, product_id)の1行に収束し、数量は合算されること。
func TestCartGormRepository_ConcurrentAddQuantitySingleLine(t *testing.T) {
	gormDB := openTestDB(t)
	r := NewCartGormRepository(gormDB)

	cart, err := r.GetOrCreateByUserID(context.Background(), nil)
	require.NoError(t, err)

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			errs <- r.AddQuantity(context.Background(), cart.ID, 1, 1)
		}()
	}
	for i := 0; i < workers; i++ {
		require.NoError(t, <-errs)
	}

	items, err := r.ListByCartID(context.Background(), cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(workers), items[0].Quantity)
}
