package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sumesh-12/energy-demand-prediction/internal/accounts"
)

// TokenParser validates login tokens.
type TokenParser interface {
	ParseToken(token string) (*accounts.Claims, error)
}

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type contactForm struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

type accountHandler struct {
	accounts *accounts.Service
	log      *zap.Logger
}

func (h *accountHandler) fail(c *gin.Context, err error) {
	var ve *accounts.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, MessageResponse{Message: ve.Error()})
	case errors.Is(err, accounts.ErrUsernameTaken):
		c.JSON(http.StatusConflict, MessageResponse{Message: "Username already exists."})
	case errors.Is(err, accounts.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Invalid username or password."})
	case errors.Is(err, accounts.ErrNotFound):
		c.JSON(http.StatusNotFound, MessageResponse{Message: "Not found."})
	default:
		h.log.Error("account request failed", zap.String("request_id", RequestID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: "An internal error occurred."})
	}
}

// Register handles POST /register.
func (h *accountHandler) Register(c *gin.Context) {
	var in credentials
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "malformed request"})
		return
	}
	u, err := h.accounts.Register(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Account created successfully!", ID: u.ID.String()})
}

// Login handles POST /login.
func (h *accountHandler) Login(c *gin.Context) {
	var in credentials
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "malformed request"})
		return
	}
	token, u, err := h.accounts.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Welcome back, " + u.Username + "!", Token: token})
}

// SubmitContact handles POST /contact.
func (h *accountHandler) SubmitContact(c *gin.Context) {
	var in contactForm
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "malformed request"})
		return
	}
	msg, err := h.accounts.SubmitContact(c.Request.Context(), in.Name, in.Email, in.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Your message has been sent successfully!", ID: msg.ID.String()})
}

// Contacts handles GET /contacts.
func (h *accountHandler) Contacts(c *gin.Context) {
	list, err := h.accounts.Contacts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "contacts": list})
}

// Contact handles GET /contacts/:id.
func (h *accountHandler) Contact(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "invalid contact id"})
		return
	}
	msg, err := h.accounts.Contact(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "contact": msg})
}
