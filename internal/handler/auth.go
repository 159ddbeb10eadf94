package handler

import (
    "bytes"
    "encoding/json"
    "io"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/arthur-gotoblink/transport-booking-console/internal/config"
)

// AuthHandler brokers the login exchange with the identity provider.  The
// console never sees or stores credentials beyond forwarding them once in
// the password grant; the provider's access token is handed straight back
// to the browser.
type AuthHandler struct {
    Cfg  config.Config
    HTTP *http.Client
    Log  *zap.Logger
}

// NewAuthHandler constructs an AuthHandler with a dedicated HTTP client.
func NewAuthHandler(cfg config.Config, log *zap.Logger) *AuthHandler {
    return &AuthHandler{
        Cfg:  cfg,
        HTTP: &http.Client{Timeout: 15 * time.Second},
        Log:  log,
    }
}

// ----- DTOs -----

type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type tokenRes struct {
    AccessToken string `json:"access_token"`
}

// Login handles POST /api/login.  It exchanges the submitted credentials
// for an access token using the OAuth password grant.  Provider rejections
// are passed through with a 401 so the browser can show the provider's own
// error message.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
    }

    payload, _ := json.Marshal(map[string]string{
        "grant_type": "password",
        "username":   req.Email,
        "password":   req.Password,
        "audience":   h.Cfg.AuthAudience,
        "scope":      "openid profile email",
        "client_id":  h.Cfg.AuthClientID,
    })

    idpReq, err := http.NewRequestWithContext(c.Request().Context(),
        http.MethodPost, h.Cfg.AuthTokenURL, bytes.NewReader(payload))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    idpReq.Header.Set("Content-Type", "application/json")

    res, err := h.HTTP.Do(idpReq)
    if err != nil {
        h.Log.Error("identity provider unreachable", zap.Error(err))
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "identity provider unreachable"})
    }
    defer res.Body.Close()

    body, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
    if res.StatusCode < 200 || res.StatusCode >= 300 {
        h.Log.Warn("login rejected by identity provider", zap.Int("status", res.StatusCode))
        return c.JSONBlob(http.StatusUnauthorized, body)
    }

    var tok tokenRes
    if err := json.Unmarshal(body, &tok); err != nil || tok.AccessToken == "" {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "malformed identity provider response"})
    }
    return c.JSON(http.StatusOK, echo.Map{"access_token": tok.AccessToken})
}
