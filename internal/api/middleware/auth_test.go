package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-api/internal/core/domain"
	"github.com/99minutos/auth-api/internal/infrastructure/security"
)

type stubVerifier struct {
	claims *domain.Claims
	err    error
	got    string
}

func (s *stubVerifier) Verify(token string) (*domain.Claims, error) {
	s.got = token
	return s.claims, s.err
}

func validVerifier() *stubVerifier {
	return &stubVerifier{claims: &domain.Claims{UserID: "user-1", Email: "alice@example.com"}}
}

func runAuth(t *testing.T, verifier *stubVerifier, headers map[string]string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/welcome", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(verifier)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidBearerToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/welcome", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	verifier := validVerifier()
	called := false
	handler := Auth(verifier)(func(c echo.Context) error {
		called = true
		if c.Get(ContextUserID) != "user-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(ContextEmail) != "alice@example.com" {
			t.Fatalf("email not set")
		}
		if _, ok := c.Get(ContextClaims).(*domain.Claims); !ok {
			t.Fatalf("claims not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if verifier.got != "abc.def.ghi" {
		t.Fatalf("unexpected token passed to verifier: %q", verifier.got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_AccessTokenHeader(t *testing.T) {
	verifier := validVerifier()
	rec, called := runAuth(t, verifier, map[string]string{HeaderAccessToken: "tok"})

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got called=%v code=%d", called, rec.Code)
	}
	if verifier.got != "tok" {
		t.Fatalf("unexpected token passed to verifier: %q", verifier.got)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := map[string]struct {
		headers  map[string]string
		verifier *stubVerifier
	}{
		"missing header":        {headers: nil, verifier: validVerifier()},
		"invalid header format": {headers: map[string]string{"Authorization": "Token abc"}, verifier: validVerifier()},
		"empty bearer":          {headers: map[string]string{"Authorization": "Bearer "}, verifier: validVerifier()},
		"invalid token":         {headers: map[string]string{"Authorization": "Bearer not-a-token"}, verifier: &stubVerifier{err: domain.ErrInvalidToken}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called := runAuth(t, tc.verifier, tc.headers)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_MissingTokenError(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/welcome", nil), httptest.NewRecorder())

	err := Auth(validVerifier())(func(echo.Context) error { return nil })(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if !errors.Is(he.Internal, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken as internal error, got %v", he.Internal)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := issued
	mgr, err := security.NewJWTManager("secret", 2*time.Hour, func() time.Time { return now })
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	token, err := mgr.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	now = issued.Add(2*time.Hour - time.Second)
	req := httptest.NewRequest(http.MethodPost, "/welcome", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	if err := Auth(mgr)(next)(e.NewContext(req, rec)); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("expected token to be accepted before expiry, got err=%v code=%d", err, rec.Code)
	}

	now = issued.Add(2 * time.Hour)
	req = httptest.NewRequest(http.MethodPost, "/welcome", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := Auth(mgr)(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 at expiry, got %d", rec.Code)
	}
}
