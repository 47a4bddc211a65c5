package controllers

import (
	"net/http"

	"gigbud/internal/services"

	"github.com/gin-gonic/gin"
)

type OauthController struct {
	authService *services.AuthService
}

func NewOauthController(authService *services.AuthService) *OauthController {
	return &OauthController{authService: authService}
}

// GoogleAuth godoc
// @Summary Authenticate with a Google ID token
// @Description Verifies the ID token, creates the account on first login and
// sends a one-time code to the account email. Tokens are issued by the OTP
// verify endpoint, never directly from this call.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body object true "Google ID token"
// @Success 200 {object} map[string]interface{} "Login code sent"
// @Failure 401 {object} map[string]interface{} "Invalid Google ID token"
// @Router /api/auth/google-login [post]
func (oc *OauthController) GoogleAuth(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := oc.authService.GoogleLogin(c.Request.Context(), req.Token); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Google identity verified, login code sent to your email", nil)
}
