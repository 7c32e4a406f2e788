package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shreejanpandit/doc-appointment-api/apperrors"
	"github.com/shreejanpandit/doc-appointment-api/authentication"
	"github.com/shreejanpandit/doc-appointment-api/models"
	"github.com/shreejanpandit/doc-appointment-api/requests"
)

const badCredentials = "These credentials do not match our records."

// Register creates a patient or doctor account. Profiles are created
// separately once the user has logged in.
func (h *Handler) Register(c *gin.Context) {
	var req requests.RegisterRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	taken, err := h.Store.EmailTaken(ctx, req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if taken {
		h.respondError(c, apperrors.NewFieldError("email", "The email has already been taken."))
		return
	}

	hashed, err := authentication.HashPassword(req.Password)
	if err != nil {
		h.respondError(c, apperrors.NewInternal("hash password", err))
		return
	}

	user := models.User{Name: req.Name, Email: req.Email, Password: hashed, Role: models.Role(req.Role)}
	if err := h.Store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = apperrors.NewFieldError("email", "The email has already been taken.")
		}
		h.respondError(c, err)
		return
	}

	h.Log.WithUserID(user.ID).WithField("role", user.Role).Info("User registered")
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
}

// Login checks the credentials and issues a bearer token bound to a new
// session. Users whose role the API does not know get no token.
func (h *Handler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := requests.Bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.FindUserByEmail(ctx, req.Email)
	if apperrors.Is(err, apperrors.KindNotFound) || (err == nil && !authentication.CheckPassword(req.Password, user.Password)) {
		h.recordLogin("failure")
		h.respondError(c, apperrors.NewAuthentication(badCredentials))
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Check the role before anything is issued
	if !user.Role.Known() {
		h.recordLogin("forbidden")
		h.Log.WithUserID(user.ID).WithField("role", user.Role).Warn("Login refused for unknown role")
		h.respondError(c, apperrors.NewAuthorization("Unauthorized"))
		return
	}

	token, sessionID, err := h.Tokens.Issue(user)
	if err != nil {
		h.respondError(c, apperrors.NewInternal("issue token", err))
		return
	}
	if err := h.Sessions.Create(ctx, sessionID, user.ID, h.Tokens.TTL()); err != nil {
		h.respondError(c, apperrors.NewInternal("store session", err))
		return
	}

	// Reload with profiles for the response
	full, err := h.Store.FindUser(ctx, user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.recordLogin("success")
	h.Log.WithUserID(user.ID).Info("User logged in")
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  full,
		"status": gin.H{
			"message": roleTitle(user.Role) + " Login successfully",
			"type":    "success",
		},
	})
}

// Logout revokes the session of the token used for this request only.
func (h *Handler) Logout(c *gin.Context, identity models.Identity) {
	if err := h.Sessions.Revoke(c.Request.Context(), identity.SessionID); err != nil {
		h.respondError(c, apperrors.NewInternal("revoke session", err))
		return
	}

	h.Log.WithUserID(identity.User.ID).Info("User logged out")
	c.JSON(http.StatusOK, gin.H{"message": "user logout successfully"})
}

// Me returns the authenticated user with its profiles.
func (h *Handler) Me(c *gin.Context, identity models.Identity) {
	c.JSON(http.StatusOK, gin.H{"user": identity.User})
}

func (h *Handler) recordLogin(status string) {
	if h.Metrics != nil {
		h.Metrics.RecordAuthAttempt(status)
	}
}

func roleTitle(role models.Role) string {
	s := string(role)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
