package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
    t.Helper()
    tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-only"))
    if err != nil {
        t.Fatalf("sign token: %v", err)
    }
    return tok
}

func runBearerAuth(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder, bool) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    called := false
    h := BearerAuth()(func(c echo.Context) error {
        called = true
        return c.NoContent(http.StatusOK)
    })
    if err := h(c); err != nil {
        t.Fatalf("middleware: %v", err)
    }
    return c, rec, called
}

func TestBearerAuthInjectsIdentity(t *testing.T) {
    tok := mintToken(t, jwt.MapClaims{"sub": "auth0|u1", "name": "Ana Ops", "email": "ana@example.com"})

    c, rec, called := runBearerAuth(t, "Bearer "+tok)
    if !called || rec.Code != http.StatusOK {
        t.Fatalf("expected handler to run, code=%d called=%v", rec.Code, called)
    }
    if c.Get("token") != tok {
        t.Fatalf("raw token not stored in context")
    }
    if c.Get("subject") != "auth0|u1" {
        t.Fatalf("unexpected subject: %v", c.Get("subject"))
    }
    // name wins over email and sub.
    if c.Get("user") != "Ana Ops" {
        t.Fatalf("unexpected display name: %v", c.Get("user"))
    }
}

func TestBearerAuthDisplayNameFallbacks(t *testing.T) {
    tok := mintToken(t, jwt.MapClaims{"sub": "auth0|u2", "email": "bob@example.com"})
    c, _, _ := runBearerAuth(t, "Bearer "+tok)
    if c.Get("user") != "bob@example.com" {
        t.Fatalf("expected email fallback, got %v", c.Get("user"))
    }

    tok = mintToken(t, jwt.MapClaims{"sub": "auth0|u3"})
    c, _, _ = runBearerAuth(t, "Bearer "+tok)
    if c.Get("user") != "auth0|u3" {
        t.Fatalf("expected subject fallback, got %v", c.Get("user"))
    }
}

func TestBearerAuthRejectsBadHeaders(t *testing.T) {
    cases := []string{
        "",
        "Basic dXNlcjpwYXNz",
        "Bearer not-a-jwt",
    }
    for i, hdr := range cases {
        _, rec, called := runBearerAuth(t, hdr)
        if called {
            t.Fatalf("case %d: handler must not run", i)
        }
        if rec.Code != http.StatusUnauthorized {
            t.Fatalf("case %d: expected 401, got %d", i, rec.Code)
        }
    }
}
