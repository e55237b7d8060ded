package handlers

import (
	"errors"
	"net/http"

	"agendamento/models"
	"agendamento/services/identity"
	"agendamento/services/user"
	"agendamento/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgUserRegistered = "Usuário registrado com sucesso!"

type UserHandler struct {
	Service user.UserService
}

func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// RegisterUserHandler handles POST /register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if _, err := h.Service.Register(c.Request.Context(), req); err != nil {
		var (
			verr  *utils.ValidationError
			idErr *identity.Error
		)
		switch {
		case errors.As(err, &verr):
			utils.JSONError(c, http.StatusBadRequest, verr.Message)
		case errors.As(err, &idErr):
			utils.JSONError(c, http.StatusBadRequest, idErr.Message)
		case errors.Is(err, user.ErrMissingUserID), errors.Is(err, user.ErrUserExists):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			logger.Error("User registration failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msgUserRegistered})
}

// AuthenticateUserHandler handles POST /login and returns the session as issued by the identity provider.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	session, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		var idErr *identity.Error
		if errors.As(err, &idErr) {
			utils.JSONError(c, http.StatusBadRequest, idErr.Message)
			return
		}
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			utils.JSONError(c, http.StatusBadRequest, verr.Message)
			return
		}
		getLogger(c).Error("Login failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Erro ao autenticar usuário.")
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetProfileHandler returns the authenticated user's profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.Service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler updates the authenticated user's name and phone.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	updated, err := h.Service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.profileError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) profileError(c *gin.Context, err error) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, user.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "User not found")
	default:
		getLogger(c).Error("Profile operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process profile")
	}
}
