package handler

import (
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/screenscout/internal/service" // account and token logic
	"github.com/iliyamo/screenscout/internal/utils"   // access token parsing for logout
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Users     *service.UserService
	JWTSecret string
}

func NewAuthHandler(users *service.UserService, secret string) *AuthHandler {
	return &AuthHandler{Users: users, JWTSecret: secret}
}

// ----- DTOs -----

type signupReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type signinReq struct {
	Login    string `json:"login"` // email or username
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func toAuthResp(p service.TokenPair) authResp {
	return authResp{
		User:    userPart{ID: p.User.ID, Username: p.User.Username, Email: p.User.Email, Role: string(p.User.Role)},
		Access:  tokenPart{Token: p.Access.Token, Expires: p.Access.Exp},
		Refresh: tokenPart{Token: p.Refresh.Raw, Expires: p.Refresh.Exp}, // raw back to client
	}
}

// Signup creates a Member account and returns a token pair right away.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ctx := c.Request().Context()
	if _, err := h.Users.Signup(ctx, req.Username, req.Email, req.Password); err != nil {
		return respondErr(c, err)
	}
	pair, err := h.Users.Signin(ctx, req.Email, req.Password)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, toAuthResp(pair))
}

// Signin verifies credentials and returns a new pair.
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	login := req.Login
	if login == "" {
		login = req.Email
	}
	if login == "" {
		login = req.Username
	}
	pair, err := h.Users.Signin(c.Request().Context(), login, req.Password)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toAuthResp(pair))
}

// Refresh validates by hash, revokes the old token and issues a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return badRequest(c, "refresh_token required")
	}
	pair, err := h.Users.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, toAuthResp(pair))
}

// Logout revokes the refresh token in the body, or every refresh token of
// the bearer when the body carries none.  The route is public so a client
// holding only a refresh token can still end its session.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	var uid uint64
	if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		claims, err := utils.ParseAccessToken(h.JWTSecret, strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}
		uid = claims.UserID
	}
	if uid == 0 && strings.TrimSpace(req.RefreshToken) == "" {
		return badRequest(c, "provide Authorization header or refresh_token")
	}
	if err := h.Users.Logout(c.Request().Context(), uid, req.RefreshToken); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
