package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-api/internal/api/handler"
	"github.com/plantnet/plantnet-api/internal/core/domain"
)

type stubVerifier struct {
	sessions map[string]*domain.Session
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*domain.Session, error) {
	if sess, ok := s.sessions[token]; ok {
		return sess, nil
	}
	return nil, domain.ErrUnauthenticated
}

type stubUserReader struct {
	users map[string]*domain.User
	err   error
}

func (s *stubUserReader) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthMiddleware_ValidCookie(t *testing.T) {
	e := echo.New()
	verifier := &stubVerifier{sessions: map[string]*domain.Session{
		"good": {Email: "alice@example.com", TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)},
	}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "good"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Auth(verifier, "token")(func(c echo.Context) error {
		called = true
		if c.Get(handler.CtxEmail) != "alice@example.com" {
			t.Fatalf("email not set")
		}
		if s, ok := c.Get(handler.CtxSession).(*domain.Session); !ok || s.TokenID != "jti-1" {
			t.Fatalf("session not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	verifier := &stubVerifier{sessions: map[string]*domain.Session{}}

	cases := map[string]*http.Cookie{
		"no cookie":     nil,
		"empty cookie":  {Name: "token", Value: ""},
		"wrong name":    {Name: "session", Value: "good"},
		"invalid token": {Name: "token", Value: "bad"},
	}
	for name, cookie := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if cookie != nil {
				req.AddCookie(cookie)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			err := Auth(verifier, "token")(func(echo.Context) error {
				t.Fatalf("next must not be called")
				return nil
			})(c)
			if !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	users := &stubUserReader{users: map[string]*domain.User{
		"boss@example.com":  {Email: "boss@example.com", Role: domain.RoleAdmin},
		"alice@example.com": {Email: "alice@example.com", Role: domain.RoleCustomer},
	}}

	cases := []struct {
		name  string
		email string
		want  error
	}{
		{"admin", "boss@example.com", nil},
		{"customer", "alice@example.com", domain.ErrForbidden},
		{"unknown user", "ghost@example.com", domain.ErrForbidden},
		{"no identity", "", domain.ErrUnauthenticated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			if tc.email != "" {
				c.Set(handler.CtxEmail, tc.email)
			}

			err := RequireRole(users, domain.RoleAdmin)(okHandler)(c)
			if tc.want == nil {
				if err != nil || rec.Code != http.StatusOK {
					t.Fatalf("expected pass-through, got %v / %d", err, rec.Code)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRequireRole_StoreError(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(handler.CtxEmail, "boss@example.com")

	storeErr := errors.New("mongo down")
	err := RequireRole(&stubUserReader{err: storeErr}, domain.RoleAdmin)(okHandler)(c)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("store failures must not look like 403")
	}
}

func TestRateLimit(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(1, 2))
	e.GET("/", okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %v", codes)
	}

	// A different client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for another client, got %d", rec.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(0, 0))
	e.GET("/", okHandler)

	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}
