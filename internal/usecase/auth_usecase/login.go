package auth

import (
	"context"
	"errors"
	"strings"

	"app/internal/repository"
)

// ユーザー名またはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// handlerからusecaseに渡す入力
type LoginInput struct {
	Username string
	Password string
}

// handlerがそのままJSONにして返す
type LoginOutput struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type LoginUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.AuthTokenRepository
	verifier  PasswordVerifier
	idGen     IDGenerator
}

// DI
func NewLoginUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.AuthTokenRepository,
	verifier PasswordVerifier,
	idGen IDGenerator,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		verifier:  verifier,
		idGen:     idGen,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	user, err := u.userRepo.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return out, ErrInvalidCredentials
		}
		return out, err
	}

	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	// トークンは1ユーザー1本。既にあればそれを返す。
	newKey := strings.ReplaceAll(u.idGen.NewID(), "-", "")
	token, err := u.tokenRepo.GetOrCreateByUserID(ctx, user.ID, newKey)
	if err != nil {
		return out, err
	}

	out.Token = token.Key
	out.Username = user.Username
	return out, nil
}
