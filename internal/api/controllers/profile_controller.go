package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portal/internal/config"
	"portal/internal/models/request_models"
	"portal/internal/services"
	"portal/pkg/middleware"
	"portal/pkg/utils"
)

type ProfileController struct {
	profileService  services.ProfileServiceInterface
	photoService    services.PhotoServiceInterface
	identityService services.IdentityServiceInterface
	maxUploadBytes  int64
}

func NewProfileController(
	profileService services.ProfileServiceInterface,
	photoService services.PhotoServiceInterface,
	identityService services.IdentityServiceInterface,
	cfg *config.Config) *ProfileController {
	return &ProfileController{
		profileService:  profileService,
		photoService:    photoService,
		identityService: identityService,
		maxUploadBytes:  cfg.MaxUploadBytes,
	}
}

// GetProfile godoc
// @Summary Get own profile
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile [get]
func (p *ProfileController) GetProfile(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	account, err := p.profileService.GetProfile(c.Request.Context(), sess)
	if err != nil {
		// The row is gone, so the session no longer maps to anything;
		// drop it and make the client log in again.
		if errors.Is(err, utils.ErrAccountNotFound) {
			p.identityService.Logout(sess.ID)
		}
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Profile fetched successfully")
}

// UpdateContactInfo godoc
// @Summary Update phone and address
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body request_models.UpdateContactRequest true "Contact payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile [put]
func (p *ProfileController) UpdateContactInfo(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	var req request_models.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := p.profileService.UpdateContactInfo(c.Request.Context(), sess, req.Phone, req.Address); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Contact info updated successfully")
}

// UpdatePhoto godoc
// @Summary Upload a new profile photo
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Image file (png, jpg, jpeg, gif)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /profile/photo [post]
func (p *ProfileController) UpdatePhoto(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, p.maxUploadBytes)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.HandleServiceError(c, utils.ErrNoFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.HandleServiceError(c, utils.ErrNoFile)
		return
	}
	defer file.Close()

	filename, err := p.photoService.UpdatePhoto(c.Request.Context(), sess, fileHeader.Filename, file)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"photo": filename}, "Photo updated successfully")
}
