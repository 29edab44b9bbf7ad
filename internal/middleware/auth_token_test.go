package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenRepo struct {
	tokens map[string]model.AuthToken
}

func (f *fakeTokenRepo) GetOrCreateByUserID(ctx context.Context, userID int64, newKey string) (model.AuthToken, error) {
	t := model.AuthToken{Key: newKey, UserID: userID}
	f.tokens[newKey] = t
	return t, nil
}

func (f *fakeTokenRepo) FindByKey(ctx context.Context, key string) (model.AuthToken, error) {
	t, ok := f.tokens[key]
	if !ok {
		return model.AuthToken{}, repository.ErrNotFound
	}
	return t, nil
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authz string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	handler := mw(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	return rec, c, nextCalled
}

func newTokenFixture() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]model.AuthToken{
		"valid-key": {Key: "valid-key", UserID: 42},
	}}
}

func TestRequireAuthToken_MissingHeader(t *testing.T) {
	rec, _, nextCalled := invoke(t, RequireAuthToken(newTokenFixture()), "")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, rec.Body.String())
}

func TestRequireAuthToken_ValidToken(t *testing.T) {
	_, c, nextCalled := invoke(t, RequireAuthToken(newTokenFixture()), "Token valid-key")

	assert.True(t, nextCalled)
	assert.Equal(t, int64(42), c.Get(CtxUserIDKey))
}

func TestRequireAuthToken_WrongScheme(t *testing.T) {
	rec, _, nextCalled := invoke(t, RequireAuthToken(newTokenFixture()), "Bearer valid-key")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}

func TestRequireAuthToken_UnknownKey(t *testing.T) {
	rec, _, nextCalled := invoke(t, RequireAuthToken(newTokenFixture()), "Token nope")

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())
}

func TestRequireAuthToken_SchemeIsCaseInsensitive(t *testing.T) {
	_, c, nextCalled := invoke(t, RequireAuthToken(newTokenFixture()), "token valid-key")

	assert.True(t, nextCalled)
	assert.Equal(t, int64(42), c.Get(CtxUserIDKey))
}

func TestOptionalAuthToken_MissingHeaderPassesThrough(t *testing.T) {
	rec, c, nextCalled := invoke(t, OptionalAuthToken(newTokenFixture()), "")

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get(CtxUserIDKey))
}

func TestOptionalAuthToken_UnknownKeyPassesThrough(t *testing.T) {
	rec, c, nextCalled := invoke(t, OptionalAuthToken(newTokenFixture()), "Token nope")

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get(CtxUserIDKey))
}

func TestOptionalAuthToken_ValidToken(t *testing.T) {
	_, c, nextCalled := invoke(t, OptionalAuthToken(newTokenFixture()), "Token valid-key")

	assert.True(t, nextCalled)
	assert.Equal(t, int64(42), c.Get(CtxUserIDKey))
}
