package usecase

import (
	"context"
	"sort"
	"sync"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// テスト用のインメモリ実装。並び順はID昇順で安定させる。

type fakeProductRepo struct {
	products map[int64]model.Product
	findErr  error
}

func (f *fakeProductRepo) List(ctx context.Context, search string) ([]model.Product, error) {
	out := make([]model.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	if f.findErr != nil {
		return model.Product{}, f.findErr
	}
	p, ok := f.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

type fakeCartRepo struct {
	cart    model.Cart
	exists  bool
	cleared []int64

	// 設定されていればClearで明細も消す（実DBの挙動に合わせる）
	itemsRepo *fakeCartItemRepo
}

func (f *fakeCartRepo) GetOrCreateByUserID(ctx context.Context, userID *int64) (model.Cart, error) {
	if !f.exists {
		f.cart = model.Cart{ID: 1, UserID: userID}
		f.exists = true
	}
	return f.cart, nil
}

func (f *fakeCartRepo) FindByUserID(ctx context.Context, userID *int64) (model.Cart, error) {
	if !f.exists {
		return model.Cart{}, repo.ErrNotFound
	}
	return f.cart, nil
}

func (f *fakeCartRepo) FindByUserIDForUpdate(ctx context.Context, userID *int64) (model.Cart, error) {
	return f.FindByUserID(ctx, userID)
}

func (f *fakeCartRepo) Clear(ctx context.Context, cartID int64) error {
	f.cleared = append(f.cleared, cartID)
	if f.itemsRepo != nil {
		kept := f.itemsRepo.items[:0]
		for _, it := range f.itemsRepo.items {
			if it.CartID != cartID {
				kept = append(kept, it)
			}
		}
		f.itemsRepo.items = kept
	}
	return nil
}

type fakeCartItemRepo struct {
	items  []model.CartItem
	nextID int64
}

func (f *fakeCartItemRepo) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	out := []model.CartItem{}
	for _, it := range f.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCartItemRepo) AddQuantity(ctx context.Context, cartID int64, productID int64, addQty int64) error {
	for i := range f.items {
		if f.items[i].CartID == cartID && f.items[i].ProductID == productID {
			f.items[i].Quantity += addQty
			return nil
		}
	}
	f.nextID++
	f.items = append(f.items, model.CartItem{ID: f.nextID, CartID: cartID, ProductID: productID, Quantity: addQty})
	return nil
}

func (f *fakeCartItemRepo) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	for _, it := range f.items {
		if it.ID == cartItemID {
			return it, nil
		}
	}
	return model.CartItem{}, repo.ErrNotFound
}

func (f *fakeCartItemRepo) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	for i := range f.items {
		if f.items[i].ID == cartItemID {
			f.items[i].Quantity = qty
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeCartItemRepo) DeleteByID(ctx context.Context, cartItemID int64) error {
	for i := range f.items {
		if f.items[i].ID == cartItemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeOrderRepo struct {
	orders []model.Order
	nextID int64
}

func (f *fakeOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	f.nextID++
	order.ID = f.nextID
	f.orders = append(f.orders, order)
	return order.ID, nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	for _, o := range f.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	out := []model.Order{}
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			out = append(out, f.orders[i])
		}
	}
	return out, nil
}

type fakeOrderItemRepo struct {
	items  []model.OrderItem
	nextID int64
}

func (f *fakeOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) ([]model.OrderItem, error) {
	created := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		f.nextID++
		it.ID = f.nextID
		it.OrderID = orderID
		f.items = append(f.items, it)
		created = append(created, it)
	}
	return created, nil
}

func (f *fakeOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	out := []model.OrderItem{}
	for _, it := range f.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeWishlistRepo struct {
	list  model.Wishlist
	items map[int64]bool
}

func (f *fakeWishlistRepo) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Wishlist, error) {
	if f.list.ID == 0 {
		f.list = model.Wishlist{ID: 1, UserID: userID}
	}
	if f.items == nil {
		f.items = map[int64]bool{}
	}
	return f.list, nil
}

func (f *fakeWishlistRepo) Contains(ctx context.Context, wishlistID int64, productID int64) (bool, error) {
	return f.items[productID], nil
}

func (f *fakeWishlistRepo) AddProduct(ctx context.Context, wishlistID int64, productID int64) error {
	f.items[productID] = true
	return nil
}

func (f *fakeWishlistRepo) RemoveProduct(ctx context.Context, wishlistID int64, productID int64) error {
	delete(f.items, productID)
	return nil
}

func (f *fakeWishlistRepo) ListProductIDs(ctx context.Context, wishlistID int64) ([]int64, error) {
	out := []int64{}
	for id := range f.items {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type fakeTxRepos struct {
	orders     *fakeOrderRepo
	orderItems *fakeOrderItemRepo
	carts      *fakeCartRepo
	cartItems  *fakeCartItemRepo
	products   *fakeProductRepo
}

func (f *fakeTxRepos) Orders() repo.OrderRepository         { return f.orders }
func (f *fakeTxRepos) OrderItems() repo.OrderItemRepository { return f.orderItems }
func (f *fakeTxRepos) Carts() repo.CartRepository           { return f.carts }
func (f *fakeTxRepos) CartItems() repo.CartItemRepository   { return f.cartItems }
func (f *fakeTxRepos) Products() repo.ProductRepository     { return f.products }

// rollbackは再現しない。fnが返すエラーをそのまま返すだけ。
// カート行のFOR UPDATEで直列化される挙動はmutexで代用する。
type fakeTxManager struct {
	mu    sync.Mutex
	repos *fakeTxRepos
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f.repos)
}

// goroutineからの通知をテスト側で待てるようにchannelで受ける。
type fakeNotifier struct {
	ch  chan OrderOutput
	err error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan OrderOutput, 1)}
}

func (f *fakeNotifier) OrderPlaced(order OrderOutput) error {
	f.ch <- order
	return f.err
}
