package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

// ExerciseRequest defines the JSON for creating or updating an exercise.
type ExerciseRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	MuscleGroups []string `json:"muscleGroups"`
	Equipment    []string `json:"equipment"`
	Difficulty   string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID           string    `json:"id"`
	TrainerID    string    `json:"trainerId"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	MuscleGroups []string  `json:"muscleGroups,omitempty"`
	Equipment    []string  `json:"equipment,omitempty"`
	Difficulty   string    `json:"difficulty,omitempty"`
	HasDemoVideo bool      `json:"hasDemoVideo"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type RequestDemoUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmDemoUploadRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
// The object key itself never leaves the server; clients only learn whether
// a video exists and fetch it through the presigned-URL endpoint.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:           ex.ID.Hex(),
		TrainerID:    ex.TrainerID.Hex(),
		Name:         ex.Name,
		Description:  ex.Description,
		MuscleGroups: ex.MuscleGroups,
		Equipment:    ex.Equipment,
		Difficulty:   ex.Difficulty,
		HasDemoVideo: ex.VideoObjectKey != "",
		CreatedAt:    ex.CreatedAt,
		UpdatedAt:    ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(&ex)
	}
	return responses
}

func (r ExerciseRequest) toInput() service.ExerciseInput {
	return service.ExerciseInput{
		Name:         r.Name,
		Description:  r.Description,
		MuscleGroups: r.MuscleGroups,
		Equipment:    r.Equipment,
		Difficulty:   r.Difficulty,
	}
}

// --- Handler Methods ---

// CreateExercise creates a new exercise for the authenticated trainer.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), trainerID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetMyExercises retrieves the authenticated trainer's exercise library.
func (h *ExerciseHandler) GetMyExercises(c *gin.Context) {
	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.GetExercisesByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise returns one exercise definition.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise updates an exercise owned by the authenticated trainer.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}
	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), trainerID, exerciseID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExerciseAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise deletes an exercise owned by the authenticated trainer.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}
	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	err := h.exerciseService.DeleteExercise(c.Request.Context(), trainerID, exerciseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExerciseAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// RequestDemoUpload returns a presigned PUT URL for a demonstration video.
func (h *ExerciseHandler) RequestDemoUpload(c *gin.Context) {
	var req RequestDemoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}
	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	resp, err := h.exerciseService.RequestDemoUploadURL(c.Request.Context(), trainerID, exerciseID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExerciseAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrUploadURLError):
			abortWithError(c, http.StatusInternalServerError, err.Error())
		default:
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmDemoUpload records the uploaded object on the exercise.
func (h *ExerciseHandler) ConfirmDemoUpload(c *gin.Context) {
	var req ConfirmDemoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}
	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.ConfirmDemoUpload(c.Request.Context(), trainerID, exerciseID, req.ObjectKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExerciseAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm upload.")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// GetDemoVideoURL returns a short-lived presigned GET URL for the demo video.
func (h *ExerciseHandler) GetDemoVideoURL(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	url, err := h.exerciseService.GetDemoVideoURL(c.Request.Context(), exerciseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound),
			errors.Is(err, service.ErrNoDemoVideo):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate video URL.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
