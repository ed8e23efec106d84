package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/service"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler holds the directory service dependency.
type DirectoryHandler struct {
	directoryService service.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directoryService service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// --- DTOs ---

type UpsertTrainerProfileRequest struct {
	Name       string  `json:"name" binding:"required"`
	Specialty  string  `json:"specialty" binding:"required"`
	HourlyRate float64 `json:"hourlyRate" binding:"required,gt=0"`
	Bio        string  `json:"bio"`
}

type TrainerProfileResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	HourlyRate float64 `json:"hourlyRate"`
	Rating     float64 `json:"rating,omitempty"`
	Bio        string  `json:"bio,omitempty"`
}

type AddTimeSlotRequest struct {
	Date      string `json:"date" binding:"required"`      // YYYY-MM-DD
	StartTime string `json:"startTime" binding:"required"` // HH:MM
	EndTime   string `json:"endTime" binding:"required"`
}

type TimeSlotResponse struct {
	ID        string `json:"id"`
	TrainerID string `json:"trainerId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// MapTrainerProfileToResponse converts a domain.TrainerProfile to its DTO.
func MapTrainerProfileToResponse(p *domain.TrainerProfile) TrainerProfileResponse {
	if p == nil {
		return TrainerProfileResponse{}
	}
	return TrainerProfileResponse{
		ID:         p.ID.Hex(),
		Name:       p.Name,
		Specialty:  p.Specialty,
		HourlyRate: p.HourlyRate,
		Rating:     p.Rating,
		Bio:        p.Bio,
	}
}

func MapTimeSlotToResponse(s *domain.TimeSlot) TimeSlotResponse {
	if s == nil {
		return TimeSlotResponse{}
	}
	return TimeSlotResponse{
		ID:        s.ID.Hex(),
		TrainerID: s.TrainerID.Hex(),
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Available: s.Available,
	}
}

// --- Handler Methods ---

// ListTrainers returns the browsable trainer directory.
func (h *DirectoryHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.directoryService.ListTrainers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list trainers.")
		return
	}

	responses := make([]TrainerProfileResponse, len(trainers))
	for i, t := range trainers {
		responses[i] = MapTrainerProfileToResponse(&t)
	}
	c.JSON(http.StatusOK, responses)
}

// GetTrainer returns one directory entry.
func (h *DirectoryHandler) GetTrainer(c *gin.Context) {
	trainerID, ok := parseIDParam(c, "trainerId")
	if !ok {
		return
	}

	trainer, err := h.directoryService.GetTrainer(c.Request.Context(), trainerID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve trainer.")
		}
		return
	}

	c.JSON(http.StatusOK, MapTrainerProfileToResponse(trainer))
}

// UpsertMyProfile creates or updates the authenticated trainer's directory entry.
func (h *DirectoryHandler) UpsertMyProfile(c *gin.Context) {
	var req UpsertTrainerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	profile, err := h.directoryService.UpsertTrainerProfile(c.Request.Context(), &domain.TrainerProfile{
		ID:         trainerID,
		Name:       req.Name,
		Specialty:  req.Specialty,
		HourlyRate: req.HourlyRate,
		Bio:        req.Bio,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save trainer profile.")
		return
	}

	c.JSON(http.StatusOK, MapTrainerProfileToResponse(profile))
}

// GetAvailableSlots returns a trainer's open slots for a given date.
// The date comes in as a required "date" query parameter.
func (h *DirectoryHandler) GetAvailableSlots(c *gin.Context) {
	trainerID, ok := parseIDParam(c, "trainerId")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'date' is required (YYYY-MM-DD).")
		return
	}

	slots, err := h.directoryService.GetAvailableSlots(c.Request.Context(), trainerID, date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	responses := make([]TimeSlotResponse, len(slots))
	for i, s := range slots {
		responses[i] = MapTimeSlotToResponse(&s)
	}
	c.JSON(http.StatusOK, responses)
}

// AddTimeSlot publishes a new opening in the authenticated trainer's calendar.
func (h *DirectoryHandler) AddTimeSlot(c *gin.Context) {
	var req AddTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	slot, err := h.directoryService.AddTimeSlot(c.Request.Context(), &domain.TimeSlot{
		TrainerID: trainerID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeSlot) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to add time slot.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapTimeSlotToResponse(slot))
}

// AssignClient links a client to the authenticated trainer's roster.
func (h *DirectoryHandler) AssignClient(c *gin.Context) {
	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}

	err := h.directoryService.AssignClientToTrainer(c.Request.Context(), trainerID, clientID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) || errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to assign client.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
