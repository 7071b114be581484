package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/minh2003vt/OkiMart/configs"
	domain "github.com/minh2003vt/OkiMart/internal/entity"
	"github.com/minh2003vt/OkiMart/internal/usecase"
)

type SessionHandler struct {
	ids *usecase.IdentityStore
	cfg configs.Config
}

func NewSessionHandler(ids *usecase.IdentityStore, cfg configs.Config) *SessionHandler {
	return &SessionHandler{ids: ids, cfg: cfg}
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	DOB      string `json:"dob"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// publicUser strips the password before a user record leaves the API.
func publicUser(u domain.User) gin.H {
	return gin.H{
		"id":      u.ID,
		"name":    u.Name,
		"email":   u.Email,
		"dob":     u.DOB,
		"address": u.Address,
		"phone":   u.Phone,
	}
}

func (h *SessionHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	user, err := h.ids.Register(c.Request.Context(), req.Name, req.Email, req.Password, usecase.RegisterExtras{
		DOB:     req.DOB,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	token, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": publicUser(user), "token": token})
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	user, err := h.ids.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	token, err := h.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": publicUser(user), "token": token})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	h.ids.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) GetProfile(c *gin.Context) {
	user, ok := h.ids.Current()
	if !ok {
		writeDomainError(c, &domain.AuthError{Reason: "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": publicUser(user)})
}

func (h *SessionHandler) UpdateProfile(c *gin.Context) {
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	user, err := h.ids.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": publicUser(user)})
}

func (h *SessionHandler) issueToken(u domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": h.cfg.Session.Issuer,
		"sub": u.ID,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(h.cfg.Session.TTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.Session.JWTSecret))
}
