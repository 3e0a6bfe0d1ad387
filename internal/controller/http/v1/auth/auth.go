package auth

import (
	"net/http"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/entity"
	"hrms/backend/internal/pkg/logger"
	"hrms/backend/internal/service/challenge"
	"hrms/backend/internal/service/token"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Controller struct {
	user       User
	devices    DeviceRegistry
	challenges ChallengeIssuer
	tokens     TokenManager
	auth       *auth.Auth
}

func NewController(user User, devices DeviceRegistry, challenges ChallengeIssuer, tokens TokenManager, a *auth.Auth) *Controller {
	return &Controller{
		user:       user,
		devices:    devices,
		challenges: challenges,
		tokens:     tokens,
		auth:       a,
	}
}

// SignInMobile checks credentials, registers the installation, and returns
// an access/refresh token pair. The raw refresh token leaves this handler
// and is never stored.
func (uc Controller) SignInMobile(c *web.Context) error {
	var data SignInRequest

	if err := c.BindFunc(&data, "TenantID", "EmployeeID", "Password", "DeviceID"); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.user.GetByEmployeeID(c.Ctx, data.TenantID, data.EmployeeID)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil {
		return c.RespondError(&web.Error{
			Err:    errors.New("employee not found"),
			Status: http.StatusNotFound,
		})
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("incorrect password"), http.StatusUnauthorized))
	}

	if err := uc.devices.Register(c.Ctx, detail.ID, data.DeviceID, data.Platform); err != nil {
		logger.Logger.WithError(err).Error("registering device")
		return c.RespondError(err)
	}

	refreshToken, err := uc.tokens.Issue(c.Ctx, detail.ID, data.DeviceID)
	if err != nil {
		logger.Logger.WithError(err).Error("issuing refresh token")
		return c.RespondError(err)
	}

	accessToken, err := uc.accessToken(detail, data.DeviceID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

// Challenge issues a fresh nonce bound to the authenticated user and the
// presented device.
func (uc Controller) Challenge(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	var data ChallengeRequest
	if err := c.BindFunc(&data, "DeviceID"); err != nil {
		return c.RespondError(err)
	}

	nonce, err := uc.challenges.Issue(c.Ctx, claims.UserId, data.DeviceID)
	if err != nil {
		if errors.Is(err, challenge.ErrDeviceNotRegistered) {
			return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
		}
		logger.Logger.WithError(err).Error("issuing challenge")
		return c.RespondError(err)
	}

	if err := uc.devices.Touch(c.Ctx, claims.UserId, data.DeviceID); err != nil {
		logger.Logger.WithError(err).Warn("touching device last-seen")
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"nonce": nonce,
		},
	}, http.StatusOK)
}

// RefreshToken rotates the presented refresh token and mints a new access
// token for the same (user, device).
func (uc Controller) RefreshToken(c *web.Context) error {
	var data RefreshTokenRequest

	if err := c.BindFunc(&data, "RefreshToken"); err != nil {
		return c.RespondError(err)
	}

	newRaw, rotated, err := uc.tokens.Rotate(c.Ctx, data.RefreshToken)
	if err != nil {
		if errors.Is(err, token.ErrInvalid) {
			return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
		}
		logger.Logger.WithError(err).Error("rotating refresh token")
		return c.RespondError(err)
	}

	detail, err := uc.user.GetByID(c.Ctx, rotated.UserID)
	if err != nil {
		return c.RespondError(err)
	}

	accessToken, err := uc.accessToken(detail, rotated.DeviceID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": newRaw,
		},
		"error": nil,
	}, http.StatusOK)
}

// Logout revokes the device's refresh token. Revocation is idempotent, so a
// repeated logout still answers ok.
func (uc Controller) Logout(c *web.Context) error {
	var data LogoutRequest

	if err := c.BindFunc(&data, "RefreshToken", "DeviceID"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.tokens.Revoke(c.Ctx, data.RefreshToken, data.DeviceID); err != nil {
		logger.Logger.WithError(err).Error("revoking refresh token")
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) accessToken(detail entity.User, deviceID string) (string, error) {
	claims := auth.Claims{
		UserId:   detail.ID,
		DeviceID: deviceID,
		Role:     auth.RoleEmployee,
	}
	if detail.TenantID != nil {
		claims.TenantID = *detail.TenantID
	}
	if detail.Role != nil {
		claims.Role = *detail.Role
	}

	signed, err := uc.auth.GenerateToken(claims)
	if err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "generating access token"), http.StatusInternalServerError)
	}

	return signed, nil
}
