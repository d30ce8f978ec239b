package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/sidus-backend/internal/http/middleware"
	"github.com/tbourn/sidus-backend/internal/services"
)

// SaveProfileRequest is the onboarding questionnaire.
type SaveProfileRequest struct {
	Name          string `json:"name" example:"Ana"`
	BirthDate     string `json:"birthDate" example:"07/15/1990"`
	BirthTime     string `json:"birthTime" example:"Unknown"`
	BirthLocation string `json:"birthLocation" example:"Lisbon, Portugal"`
}

// ProfileResponse wraps a stored profile.
type ProfileResponse struct {
	Success bool              `json:"success" example:"true"`
	Data    *services.Profile `json:"data"`
}

// SaveProfile godoc
// @ID          saveProfile
// @Summary     Save the birth chart
// @Description Validates the onboarding answers, computes the Big Three and stores it with a short reading.
// @Tags        Profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  handlers.SaveProfileRequest  true  "Onboarding answers"
// @Success     200  {object}  handlers.ProfileResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profile [post]
func (h *Handlers) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.profiles.SaveBirthChart(c.Request.Context(), middleware.UserID(c), services.BirthInput{
		Name:          req.Name,
		BirthDate:     req.BirthDate,
		BirthTime:     req.BirthTime,
		BirthLocation: req.BirthLocation,
	})
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, ProfileResponse{Success: true, Data: p})
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Get the profile
// @Tags        Profile
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.ProfileResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "No profile yet"
// @Router      /profile [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, ProfileResponse{Success: true, Data: p})
}
