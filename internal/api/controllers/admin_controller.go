package controllers

import (
	"github.com/gin-gonic/gin"

	"portal/internal/services"
	"portal/pkg/middleware"
	"portal/pkg/utils"
)

type AdminController struct {
	profileService services.ProfileServiceInterface
}

func NewAdminController(profileService services.ProfileServiceInterface) *AdminController {
	return &AdminController{
		profileService: profileService,
	}
}

// Dashboard godoc
// @Summary List all accounts with aggregate counts
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (a *AdminController) Dashboard(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	dashboard, err := a.profileService.ListAccounts(c.Request.Context(), sess)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dashboard, "Accounts fetched successfully")
}

// DeleteUser godoc
// @Summary Delete an account and its stored photo
// @Tags Admin
// @Produce json
// @Param id path string true "Account id"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (a *AdminController) DeleteUser(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	if err := a.profileService.DeleteAccount(c.Request.Context(), sess, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "User deleted successfully")
}
