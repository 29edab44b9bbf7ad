package repository

import (
	"app/internal/domain/model"
	"context"
)

type OrderItemRepository interface {
	// IDが埋まった作成済みの行を返す
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) ([]model.OrderItem, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
