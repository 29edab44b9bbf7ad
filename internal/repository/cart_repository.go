package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartRepository interface {
	// userIDがnilなら共有の匿名カートが対象。
	// 同じキーで同時に呼ばれても1つのカートに収束すること。
	GetOrCreateByUserID(ctx context.Context, userID *int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID *int64) (model.Cart, error)
	// FindByUserIDと同じだが、カート行をFOR UPDATEでロックする。
	// 読みから更新までの間に同じカートへの割り込みを許さない呼び出し用。
	// トランザクション内でだけ意味を持つ。
	FindByUserIDForUpdate(ctx context.Context, userID *int64) (model.Cart, error)
	// 明細を全削除する。カート本体の行は残す。
	Clear(ctx context.Context, cartID int64) error
}
