package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/stretchr/testify/assert"
)

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestReadTokenFromCookie(t *testing.T) {
	m := NewManager(config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "tok"})
	c, _ := newContext(req)

	token, ok := m.ReadToken(c)
	assert.True(t, ok)
	assert.Equal(t, "tok", token)
}

func TestReadTokenFromBearer(t *testing.T) {
	m := NewManager(config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")
	c, _ := newContext(req)

	token, ok := m.ReadToken(c)
	assert.True(t, ok)
	assert.Equal(t, "abc", token)
}

func TestReadTokenMissing(t *testing.T) {
	m := NewManager(config.Config{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	c, _ := newContext(req)

	_, ok := m.ReadToken(c)
	assert.False(t, ok)
}

func TestSetAndClear(t *testing.T) {
	m := NewManager(config.Config{AuthCookieSecure: true})
	c, w := newContext(httptest.NewRequest(http.MethodGet, "/", nil))

	m.Set(c, "tok", time.Now().Add(time.Hour))
	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, DefaultCookieName+"=tok")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")

	c, w = newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	m.Clear(c)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}
