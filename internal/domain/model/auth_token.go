package model

import "time"

// 不透明トークン。1ユーザーにつき1本で、削除されるまで有効。
// 期限・ローテーションは持たない。
type AuthToken struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	UserID    int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
