// Package authhdl holds the HTTP handlers of the auth domain.
package authhdl

import (
	"fmt"

	authdto "treesure/internal/api/auth/dto"
	authsvc "treesure/internal/api/auth/service"
	basehdl "treesure/internal/api/base/handler"
	"treesure/internal/common"
	"treesure/internal/global"
	"treesure/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// AuthHandler serves login and profile endpoints.
type AuthHandler struct {
	AuthService *authsvc.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler() (*AuthHandler, error) {
	svc, err := authsvc.NewAuthService()
	if err != nil {
		return nil, fmt.Errorf("create AuthService: %w", err)
	}
	return &AuthHandler{AuthService: svc}, nil
}

// HandleLogin verifies the posted credentials and returns a session
// token.
func (h *AuthHandler) HandleLogin(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var req authdto.LoginRequest
		if err := c.Bind().Body(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}
		if err := global.Validate.Struct(req); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput,
				err.Error(), common.StatusBadRequest, nil))
			return nil
		}

		resp, err := h.AuthService.Login(c.Context(), &req)
		if err != nil {
			logger.LogAuth("login_failed", c, map[string]interface{}{"email": req.Email})
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAuth("login", c, map[string]interface{}{"email": req.Email})
		basehdl.HandleResponse(c, resp, nil)
		return nil
	})
}

// HandleProfile returns the signed-in user's profile.
func (h *AuthHandler) HandleProfile(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		userID, _ := c.Locals("user_id").(string)
		user, err := h.AuthService.GetProfile(c.Context(), userID)
		basehdl.HandleResponse(c, user, err)
		return nil
	})
}
