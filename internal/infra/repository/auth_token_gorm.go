package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthTokenGormRepository struct {
	db *gorm.DB
}

// DI
func NewAuthTokenGormRepository(db *gorm.DB) *AuthTokenGormRepository {
	return &AuthTokenGormRepository{db: db}
}

// ユーザーのトークンを取得し、無ければnewKeyで作る。
// user_idの一意制約があるので、同時に作ろうとした側は再読込で既存を拾う。
func (r *AuthTokenGormRepository) GetOrCreateByUserID(ctx context.Context, userID int64, newKey string) (model.AuthToken, error) {
	var token model.AuthToken

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&token).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 競合はDO NOTHINGで握りつぶす。INSERTを失敗させると
		// Postgresはトランザクションごとabortして再読込できない。
		newToken := model.AuthToken{
			Key:    newKey,
			UserID: userID,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&newToken)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Where("user_id = ?", userID).First(&token).Error
		}

		token = newToken
		return nil
	})

	if err != nil {
		return model.AuthToken{}, err
	}
	return token, nil
}

func (r *AuthTokenGormRepository) FindByKey(ctx context.Context, key string) (model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AuthToken{}, repo.ErrNotFound
	}
	if err != nil {
		return model.AuthToken{}, err
	}
	return token, nil
}
