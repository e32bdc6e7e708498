package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("wrong horse", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("short"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("longenough"))
	assert.ErrorIs(t, ValidatePassword("пароль"), ErrWeakPassword, "counts runes, not bytes")
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Generate("user-1", "a@b.co")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "a@b.co", claims.Email)
}

func TestTokenRejections(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.Generate("user-1", "a@b.co")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenManager("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewTokenManager("secret", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Parse(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		empty, err := m.Generate("", "a@b.co")
		require.NoError(t, err)
		_, err = m.Parse(empty)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionCookieToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := SessionCookie{Name: "session"}

	t.Run("cookie wins", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.AddCookie(&http.Cookie{Name: "session", Value: "from-cookie"})
		c.Request.Header.Set("Authorization", "Bearer from-header")
		assert.Equal(t, "from-cookie", s.Token(c))
	})

	t.Run("bearer fallback", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", "Bearer from-header")
		assert.Equal(t, "from-header", s.Token(c))
	})

	t.Run("nothing", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, s.Token(c))
	})
}

func TestSessionCookieSetAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := SessionCookie{Name: "session", Secure: true}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	s.Set(c, "tok", time.Hour)

	header := w.Header().Get("Set-Cookie")
	assert.Contains(t, header, "session=tok")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "SameSite=Lax")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	s.Clear(c)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}
