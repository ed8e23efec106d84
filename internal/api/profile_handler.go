package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

// SaveProfileRequest carries the client's onboarding attributes. Everything
// is optional; the completion score reflects what has been filled in.
type SaveProfileRequest struct {
	Age           int      `json:"age" binding:"omitempty,min=13,max=120"`
	HeightCm      int      `json:"heightCm" binding:"omitempty,min=50,max=280"`
	WeightKg      float64  `json:"weightKg" binding:"omitempty,gt=0"`
	Gender        string   `json:"gender"`
	Location      string   `json:"location"`
	Goals         []string `json:"goals"`
	TrainingStyle string   `json:"trainingStyle" binding:"omitempty,oneof=virtual in_person hybrid"`
	Frequency     int      `json:"frequency" binding:"omitempty,min=1,max=14"`
	ActivityLevel string   `json:"activityLevel"`
	Equipment     []string `json:"equipment"`
	Motivation    int      `json:"motivation" binding:"omitempty,min=1,max=10"`
	Discoverable  bool     `json:"discoverable"`
}

type ProfileResponse struct {
	ClientID             string   `json:"clientId"`
	Age                  int      `json:"age,omitempty"`
	HeightCm             int      `json:"heightCm,omitempty"`
	WeightKg             float64  `json:"weightKg,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	Location             string   `json:"location,omitempty"`
	Goals                []string `json:"goals,omitempty"`
	TrainingStyle        string   `json:"trainingStyle,omitempty"`
	Frequency            int      `json:"frequency,omitempty"`
	ActivityLevel        string   `json:"activityLevel,omitempty"`
	Equipment            []string `json:"equipment,omitempty"`
	Motivation           int      `json:"motivation,omitempty"`
	Discoverable         bool     `json:"discoverable"`
	CompletionPercentage int      `json:"completionPercentage"`
}

func MapProfileToResponse(p *domain.ClientProfile) ProfileResponse {
	if p == nil {
		return ProfileResponse{}
	}
	return ProfileResponse{
		ClientID:             p.ClientID.Hex(),
		Age:                  p.Age,
		HeightCm:             p.HeightCm,
		WeightKg:             p.WeightKg,
		Gender:               p.Gender,
		Location:             p.Location,
		Goals:                p.Goals,
		TrainingStyle:        p.TrainingStyle,
		Frequency:            p.Frequency,
		ActivityLevel:        p.ActivityLevel,
		Equipment:            p.Equipment,
		Motivation:           p.Motivation,
		Discoverable:         p.Discoverable,
		CompletionPercentage: p.CompletionPercentage,
	}
}

// --- Handler Methods ---

// SaveMyProfile upserts the authenticated client's profile.
func (h *ProfileHandler) SaveMyProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	clientID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.SaveProfile(c.Request.Context(), &domain.ClientProfile{
		ClientID:      clientID,
		Age:           req.Age,
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		Gender:        req.Gender,
		Location:      req.Location,
		Goals:         req.Goals,
		TrainingStyle: req.TrainingStyle,
		Frequency:     req.Frequency,
		ActivityLevel: req.ActivityLevel,
		Equipment:     req.Equipment,
		Motivation:    req.Motivation,
		Discoverable:  req.Discoverable,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile.")
		return
	}

	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// GetMyProfile returns the authenticated client's profile.
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	clientID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile.")
		}
		return
	}

	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// GetMyProfileCompletion returns just the completion score, for the
// onboarding progress indicator. Missing profile scores 0.
func (h *ProfileHandler) GetMyProfileCompletion(c *gin.Context) {
	clientID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	pct, err := h.profileService.GetProfileCompletion(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute profile completion.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"completionPercentage": pct})
}
