package db

import (
	"fmt"
	"os"
	"time"

	"app/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はDBに接続して *gorm.DB を返す。
// DATABASE_URL があれば最優先、無ければ POSTGRES_* を組み立てる。
func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getenv("POSTGRES_HOST", "localhost"),
			getenv("POSTGRES_PORT", "5432"),
			getenv("POSTGRES_USER", "postgres"),
			getenv("POSTGRES_PASSWORD", "postgres"),
			getenv("POSTGRES_DB", "store"),
			getenv("POSTGRES_SSLMODE", "disable"),
		)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return gormDB, nil
}

// Migrate はスキーマを適用する。
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.User{},
		&model.UserProfile{},
		&model.AuthToken{},
		&model.Cart{},
		&model.CartItem{},
		&model.Wishlist{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		return err
	}

	// user_idのuniqueIndexはNULL同士を弾かない（PostgresはNULLS DISTINCT）。
	// 匿名カートを1行に保つにはNULL行専用の部分一意インデックスが要る。
	// これが無いと同時の匿名カート作成が両方ともcommitできてしまう。
	return gormDB.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_carts_anonymous ON carts ((1)) WHERE user_id IS NULL",
	).Error
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
