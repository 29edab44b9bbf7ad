package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"
)

var (
	// 入力が不正
	ErrUsernameRequired   = errors.New("username is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")

	// 競合
	ErrUsernameTaken = errors.New("username already taken")
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 会員登録の入力
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// 会員登録の出力
type RegisterOutput struct {
	User model.User
}

// RegisterUsecaseは会員登録の処理。
type RegisterUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

// DI
func NewRegisterUsecase(userRepo repository.UserRepository, hasher PasswordHasher) *RegisterUsecase {
	return &RegisterUsecase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// 会員登録実行
func (u *RegisterUsecase) Execute(ctx context.Context, in RegisterInput) (RegisterOutput, error) {
	var out RegisterOutput

	username := strings.TrimSpace(in.Username)
	if username == "" {
		return out, ErrUsernameRequired
	}

	if !isValidEmailFormat(in.Email) {
		return out, ErrInvalidEmailFormat
	}

	// パスワード最低文字数（8）
	if len(in.Password) < 8 {
		return out, ErrPasswordTooShort
	}

	// username重複チェック
	existing, err := u.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return out, ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return out, err
	}

	// パスワードをハッシュ化（平文は保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	user := &model.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: hashed,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return out, err
	}

	// 空のプロフィールを1件ぶら下げる
	profile := &model.UserProfile{UserID: user.ID}
	if err := u.userRepo.CreateProfile(ctx, profile); err != nil {
		return out, err
	}

	out.User = *user
	return out, nil
}

func isValidEmailFormat(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
