package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	// 代金引換。注文作成フローではこれで固定。
	PaymentMethodCOD PaymentMethod = "cod"
)

// 注文。作成後は状態遷移以外は変更しない。
// total_amountと連絡先は作成時点のスナップショット。
type Order struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64           `gorm:"not null;index" json:"user_id"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"total_amount"`
	FullName      string          `gorm:"type:varchar(200);not null" json:"full_name"`
	Email         string          `gorm:"type:varchar(254);not null" json:"email"`
	Phone         string          `gorm:"type:varchar(20);not null" json:"phone"`
	Address       string          `gorm:"type:text;not null" json:"address"`
	City          string          `gorm:"type:varchar(100)" json:"city"`
	State         string          `gorm:"type:varchar(100)" json:"state"`
	Country       string          `gorm:"type:varchar(100)" json:"country"`
	ZipCode       string          `gorm:"type:varchar(20)" json:"zip_code"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(50);not null;default:'cod'" json:"payment_method"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	OrderNotes    string          `gorm:"type:text" json:"order_notes"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
