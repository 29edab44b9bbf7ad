package repository

import (
	"app/internal/domain/model"
	"context"
)

// 不透明トークンの保存・照合。
type AuthTokenRepository interface {
	// ユーザーのトークンを返す。無ければnewKeyで作る。
	// 同時に呼ばれても同じユーザーに2本できてはいけない。
	GetOrCreateByUserID(ctx context.Context, userID int64, newKey string) (model.AuthToken, error)

	// キーからトークンを引く。未知のキーはErrNotFound。
	FindByKey(ctx context.Context, key string) (model.AuthToken, error)
}
