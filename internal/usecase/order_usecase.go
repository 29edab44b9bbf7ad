package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// 注文確定の通知先。失敗してもリクエストには影響させない。
type OrderNotifier interface {
	OrderPlaced(order OrderOutput) error
}

type OrderUsecase struct {
	tx       repo.TransactionManager
	notifier OrderNotifier
}

func NewOrderUsecase(tx repo.TransactionManager, notifier OrderNotifier) *OrderUsecase {
	return &OrderUsecase{tx: tx, notifier: notifier}
}

type PlaceOrderInput struct {
	FullName   string
	Phone      string
	Address    string
	OrderNotes string
	Email      string
	City       string
	State      string
	Country    string
	ZipCode    string
}

type OrderItemOutput struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Quantity     int64           `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user"`
	CreatedAt     time.Time         `json:"created_at"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	FullName      string            `json:"full_name"`
	Address       string            `json:"address"`
	City          string            `json:"city"`
	State         string            `json:"state"`
	Country       string            `json:"country"`
	ZipCode       string            `json:"zip_code"`
	PaymentMethod string            `json:"payment_method"`
	Status        string            `json:"status"`
	OrderNotes    string            `json:"order_notes"`
	Items         []OrderItemOutput `json:"items"`
}

// 電話番号の正規化。数字以外を捨て、10桁を超える分は後ろ10桁だけ残す
// （国番号付きの過去データ互換。この仕様は変えないこと）。
// 10桁に満たなければエラー。
func normalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < 10 {
		return "", NewHTTPError(http.StatusBadRequest, "phone must be at least 10 digits")
	}
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits, nil
}

// カートの中身をそのまま注文に変換する。
// 合計計算→注文作成→明細作成→カート空けを1トランザクションで行い、
// 途中で失敗したら何も残さない。通知はcommit後に投げっぱなし。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// カート行をロックしてから明細を読む。
		// 同じカートの注文確定が並走しても2本目はここで待ち、
		// commit後に空になった明細を見て"Cart is empty"で止まる。
		cart, err := r.Carts().FindByUserIDForUpdate(ctx, &userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Cart not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "Cart is empty")
		}

		fullName := strings.TrimSpace(in.FullName)
		phone := strings.TrimSpace(in.Phone)
		address := strings.TrimSpace(in.Address)

		if fullName == "" {
			return NewHTTPError(http.StatusBadRequest, "Full name is required")
		}
		if phone == "" {
			return NewHTTPError(http.StatusBadRequest, "Phone number is required")
		}
		if address == "" {
			return NewHTTPError(http.StatusBadRequest, "Delivery address is required")
		}

		phone, err = normalizePhone(phone)
		if err != nil {
			return err
		}

		// 合計は「今この瞬間」の商品価格で計算し、明細にも同じ価格を凍結する
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		products := make(map[int64]model.Product, len(cartItems))
		total := decimal.Zero

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "Product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				Price:     p.Price,
			})
			products[ci.ProductID] = p

			total = total.Add(p.Price.Mul(decimal.NewFromInt(ci.Quantity)))
		}

		order := model.Order{
			UserID:        userID,
			TotalAmount:   total,
			FullName:      fullName,
			Email:         defaultIfEmpty(in.Email, "customer@example.com"),
			Phone:         phone,
			Address:       address,
			City:          defaultIfEmpty(in.City, "Kathmandu"),
			State:         strings.TrimSpace(in.State),
			Country:       defaultIfEmpty(in.Country, "Nepal"),
			ZipCode:       defaultIfEmpty(in.ZipCode, "44600"),
			PaymentMethod: model.PaymentMethodCOD,
			Status:        model.OrderStatusPending,
			OrderNotes:    in.OrderNotes,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created, err := r.OrderItems().CreateBulk(ctx, orderID, orderItems)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// カートを空にする（行は残して再利用）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, created, products)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	// commit済み。通知の失敗はログに残すだけで結果は変えない。
	if u.notifier != nil {
		placed := out
		go func() {
			if err := u.notifier.OrderPlaced(placed); err != nil {
				logrus.WithError(err).
					WithField("order_id", placed.ID).
					Warn("order notification failed")
			}
		}()
	}

	return out, nil
}

// 自分の注文一覧（新しい順）。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items, loadProducts(ctx, r, items)))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// 自分の注文詳細。他人の注文は「存在しない扱い」にする。
func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items, loadProducts(ctx, r, items))
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func defaultIfEmpty(v string, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// 表示用の商品情報。商品が消えていたら名前・画像は空のままにする。
func loadProducts(ctx context.Context, r repo.TxRepos, items []model.OrderItem) map[int64]model.Product {
	products := make(map[int64]model.Product, len(items))
	for _, it := range items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		p, err := r.Products().FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}
		products[it.ProductID] = p
	}
	return products
}

func toOrderOutput(o model.Order, items []model.OrderItem, products map[int64]model.Product) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		p := products[it.ProductID]
		outItems = append(outItems, OrderItemOutput{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  p.Name,
			ProductImage: p.Image,
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		CreatedAt:     o.CreatedAt,
		TotalAmount:   o.TotalAmount,
		Email:         o.Email,
		Phone:         o.Phone,
		FullName:      o.FullName,
		Address:       o.Address,
		City:          o.City,
		State:         o.State,
		Country:       o.Country,
		ZipCode:       o.ZipCode,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		OrderNotes:    o.OrderNotes,
		Items:         outItems,
	}
}
