package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（取得のみ）。公開APIからは読み取り専用。
type ProductRepository interface {
	// searchが空なら全件。名前の部分一致（大文字小文字は区別しない）。
	List(ctx context.Context, search string) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
}
