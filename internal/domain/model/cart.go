package model

import "time"

// 1ユーザーにつきカートは1つ（user_idの一意制約で担保）。
// user_idがNULLの行は未ログイン共有カート。NULLは一意制約にかからないので、
// 匿名カートの1行はdb.MigrateのNULL行専用の部分一意インデックスで担保する。
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64    `gorm:"uniqueIndex" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
