package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistGormRepository struct {
	db *gorm.DB
}

// DI
func NewWishlistGormRepository(db *gorm.DB) *WishlistGormRepository {
	return &WishlistGormRepository{db: db}
}

// ユーザーのウィッシュリストを取得し、無ければ作成。
func (r *WishlistGormRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Wishlist, error) {
	var list model.Wishlist

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&list).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 競合はDO NOTHINGで握りつぶす。INSERTを失敗させると
		// Postgresはトランザクションごとabortして再読込できない。
		newList := model.Wishlist{UserID: userID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&newList)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Where("user_id = ?", userID).First(&list).Error
		}

		list = newList
		return nil
	})

	if err != nil {
		return model.Wishlist{}, err
	}
	return list, nil
}

func (r *WishlistGormRepository) Contains(ctx context.Context, wishlistID int64, productID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.WishlistItem{}).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Count(&count).Error

	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// 既に入っていても一意制約で重複行は作らない。
func (r *WishlistGormRepository) AddProduct(ctx context.Context, wishlistID int64, productID int64) error {
	item := model.WishlistItem{
		WishlistID: wishlistID,
		ProductID:  productID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&item).Error
}

func (r *WishlistGormRepository) RemoveProduct(ctx context.Context, wishlistID int64, productID int64) error {
	return r.db.WithContext(ctx).
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&model.WishlistItem{}).Error
}

func (r *WishlistGormRepository) ListProductIDs(ctx context.Context, wishlistID int64) ([]int64, error) {
	var ids []int64

	err := r.db.WithContext(ctx).
		Model(&model.WishlistItem{}).
		Where("wishlist_id = ?", wishlistID).
		Order("id asc").
		Pluck("product_id", &ids).Error

	if err != nil {
		return []int64{}, err
	}
	return ids, nil
}
