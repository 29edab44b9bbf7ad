package model

// ユーザー1人につきプロフィール1件。
// phoneは数字ちょうど10桁（空は未設定扱い）。
type UserProfile struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  int64  `gorm:"not null;uniqueIndex" json:"user_id"`
	Phone   string `gorm:"type:varchar(10)" json:"phone"`
	Address string `gorm:"type:text" json:"address"`
}
