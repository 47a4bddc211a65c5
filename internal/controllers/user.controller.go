package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"gigbud/internal/repository"
	"gigbud/internal/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	authService *services.AuthService
	userRepo    repository.UserRepository
}

func NewUserController(authService *services.AuthService, userRepo repository.UserRepository) *UserController {
	return &UserController{authService: authService, userRepo: userRepo}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type otpVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Tags users
// @Accept json
// @Produce json
// @Param registration body services.RegisterInput true "Registration details"
// @Success 201 {object} map[string]interface{} "Account created"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/users/register [post]
func (uc *UserController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, pair, err := uc.authService.Register(input)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":   user,
		"tokens": pair,
	})
}

// Login handles password login.
func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	pair, err := uc.authService.PasswordLogin(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "User logged in successfully", pair)
}

// RequestLoginOTP godoc
// @Summary Send a one-time login code to the user's email
// @Tags users
// @Accept json
// @Produce json
// @Param email body emailRequest true "User email"
// @Success 200 {object} map[string]interface{} "Code sent"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /api/users/login/request [post]
func (uc *UserController) RequestLoginOTP(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := uc.authService.RequestLoginOTP(req.Email); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Login code sent successfully", nil)
}

// VerifyLoginOTP exchanges a valid one-time code for a token pair.
func (uc *UserController) VerifyLoginOTP(c *gin.Context) {
	var req otpVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	pair, err := uc.authService.VerifyLoginOTP(req.Email, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "User logged in successfully", pair)
}

// RefreshToken issues a new access token from a refresh token.
func (uc *UserController) RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	access, err := uc.authService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Access token refreshed", gin.H{"access_token": access})
}

// Logout blacklists the presented access token until its natural expiry.
func (uc *UserController) Logout(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := uc.authService.Logout(req.Token); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "User logged out successfully", nil)
}

// GetCurrentUser returns the authenticated user's own record.
func (uc *UserController) GetCurrentUser(c *gin.Context) {
	user, err := uc.userRepo.FindByID(callerID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, services.ErrNotFound)
			return
		}
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "User retrieved successfully", user)
}

type updateProfileRequest struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	Age        int    `json:"age"`
	Profession string `json:"profession"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
}

// UpdateCurrentUser patches mutable profile fields. Email and password are
// not updatable through this endpoint.
func (uc *UserController) UpdateCurrentUser(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	data := map[string]interface{}{}
	if req.Name != "" {
		data["name"] = req.Name
	}
	if req.Avatar != "" {
		data["avatar"] = req.Avatar
	}
	if req.Age > 0 {
		data["age"] = req.Age
	}
	if req.Profession != "" {
		data["profession"] = req.Profession
	}
	if req.Phone != "" {
		data["phone"] = req.Phone
	}
	if req.Role != "" {
		data["role"] = req.Role
	}
	if len(data) == 0 {
		respondError(c, services.NewValidationError([]string{"no updatable fields supplied"}))
		return
	}

	id := callerID(c)
	if err := uc.userRepo.Patch(id, data); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, services.ErrNotFound)
			return
		}
		respondError(c, err)
		return
	}

	user, err := uc.userRepo.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Profile updated successfully", user)
}

// GetProfile returns another user's public profile.
func (uc *UserController) GetProfile(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, services.NewValidationError([]string{"id must be a valid positive integer"}))
		return
	}

	user, lookupErr := uc.userRepo.FindByID(uint(id))
	if lookupErr != nil {
		if errors.Is(lookupErr, repository.ErrNotFound) {
			respondError(c, services.ErrNotFound)
			return
		}
		respondError(c, lookupErr)
		return
	}

	respondOK(c, http.StatusOK, "User retrieved successfully", user)
}

// VerifyEmail consumes the current OTP and marks the email verified.
func (uc *UserController) VerifyEmail(c *gin.Context) {
	var req otpVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := uc.authService.VerifyEmail(req.Email, req.Code); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Email verified successfully", nil)
}

// VerifyPhone consumes the current OTP and marks the phone verified.
func (uc *UserController) VerifyPhone(c *gin.Context) {
	var req otpVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := uc.authService.VerifyPhone(req.Email, req.Code); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Phone verified successfully", nil)
}

// Verify reports the authenticated identity; used by the frontend to check
// a stored token on startup.
func (uc *UserController) Verify(c *gin.Context) {
	respondOK(c, http.StatusOK, "Token is valid", gin.H{
		"user_id": callerID(c),
		"email":   c.GetString("email"),
		"role":    c.GetString("role"),
	})
}
