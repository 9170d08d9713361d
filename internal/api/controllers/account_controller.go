package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portal/internal/models/request_models"
	"portal/internal/models/response_models"
	"portal/internal/services"
	"portal/pkg/middleware"
	"portal/pkg/utils"
)

type AccountController struct {
	identityService services.IdentityServiceInterface
}

func NewAccountController(identityService services.IdentityServiceInterface) *AccountController {
	return &AccountController{
		identityService: identityService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a new user account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.RegisterRequest true "Registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /accounts/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.identityService.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.FromAccount(account), "Account created successfully")
}

// Login godoc
// @Summary Log in
// @Description Authenticate a user and return a session token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /accounts/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	sess, token, err := a.identityService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.LoginResponse{
		Token:    token,
		Username: sess.Username,
		Role:     sess.Role,
	}, "Login successful")
}

// Logout godoc
// @Summary Log out
// @Description Destroy the current session
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /accounts/logout [post]
func (a *AccountController) Logout(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess != nil {
		a.identityService.Logout(sess.ID)
	}

	utils.RespondSuccess(c, nil, "Logged out successfully")
}
