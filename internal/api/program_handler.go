package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/awright222/fitiva/internal/domain"
	"github.com/awright222/fitiva/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs ---

type ProgramExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	Sequence   int    `json:"sequence" binding:"required,min=1"`
	Sets       int    `json:"sets"`
	Reps       string `json:"reps"`
	Notes      string `json:"notes"`
}

type ProgramDayRequest struct {
	DayNumber int                      `json:"dayNumber" binding:"required,min=1"`
	Title     string                   `json:"title"`
	Exercises []ProgramExerciseRequest `json:"exercises"`
}

type CreateProgramRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Days        []ProgramDayRequest `json:"days"`
}

type AssignProgramRequest struct {
	ClientID  string `json:"clientId" binding:"required"`
	ProgramID string `json:"programId" binding:"required"`
}

type LogCompletionRequest struct {
	ProgramExerciseID string `json:"programExerciseId" binding:"required"`
	Sets              int    `json:"sets"`
	Reps              int    `json:"reps"`
	Notes             string `json:"notes"`
}

type LogCompletionResponse struct {
	LogID                string    `json:"logId"`
	CompletedAt          time.Time `json:"completedAt"`
	CompletionPercentage int       `json:"completionPercentage"`
}

type ClientProgramResponse struct {
	ID                   string          `json:"id"`
	ClientID             string          `json:"clientId"`
	ProgramID            string          `json:"programId"`
	TrainerID            string          `json:"trainerId"`
	CurrentDay           int             `json:"currentDay"`
	CompletionPercentage int             `json:"completionPercentage"`
	AssignedAt           time.Time       `json:"assignedAt"`
	Program              *domain.Program `json:"program,omitempty"`
}

func MapClientProgramToResponse(cp *domain.ClientProgram, program *domain.Program) ClientProgramResponse {
	if cp == nil {
		return ClientProgramResponse{}
	}
	return ClientProgramResponse{
		ID:                   cp.ID.Hex(),
		ClientID:             cp.ClientID.Hex(),
		ProgramID:            cp.ProgramID.Hex(),
		TrainerID:            cp.TrainerID.Hex(),
		CurrentDay:           cp.CurrentDay,
		CompletionPercentage: cp.CompletionPercentage,
		AssignedAt:           cp.AssignedAt,
		Program:              program,
	}
}

// --- Handler Methods ---

// CreateProgram lets a trainer build a new program template.
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	days := make([]domain.ProgramDay, len(req.Days))
	for i, d := range req.Days {
		day := domain.ProgramDay{DayNumber: d.DayNumber, Title: d.Title}
		for _, e := range d.Exercises {
			exerciseID, err := primitive.ObjectIDFromHex(e.ExerciseID)
			if err != nil {
				abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
				return
			}
			day.Exercises = append(day.Exercises, domain.ProgramExercise{
				ExerciseID: exerciseID,
				Sequence:   e.Sequence,
				Sets:       e.Sets,
				Reps:       e.Reps,
				Notes:      e.Notes,
			})
		}
		days[i] = day
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), &domain.Program{
		TrainerID:   trainerID,
		Name:        req.Name,
		Description: req.Description,
		Days:        days,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create program.")
		return
	}

	c.JSON(http.StatusCreated, program)
}

// GetMyPrograms lists the authenticated trainer's templates.
func (h *ProgramHandler) GetMyPrograms(c *gin.Context) {
	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	programs, err := h.programService.GetProgramsByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve programs.")
		return
	}
	c.JSON(http.StatusOK, programs)
}

// AssignProgram assigns one of the trainer's templates to a client.
func (h *ProgramHandler) AssignProgram(c *gin.Context) {
	var req AssignProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format.")
		return
	}
	programID, err := primitive.ObjectIDFromHex(req.ProgramID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format.")
		return
	}

	cp, err := h.programService.AssignProgram(c.Request.Context(), trainerID, clientID, programID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrProgramAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to assign program.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapClientProgramToResponse(cp, nil))
}

// GetMyClientPrograms lists the program instances assigned to the
// authenticated client.
func (h *ProgramHandler) GetMyClientPrograms(c *gin.Context) {
	clientID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	cps, err := h.programService.GetClientPrograms(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve programs.")
		return
	}

	responses := make([]ClientProgramResponse, len(cps))
	for i, cp := range cps {
		responses[i] = MapClientProgramToResponse(&cp, nil)
	}
	c.JSON(http.StatusOK, responses)
}

// GetClientProgram returns a client-program with its template resolved so
// the app can render the day-by-day plan.
func (h *ProgramHandler) GetClientProgram(c *gin.Context) {
	cpID, ok := parseIDParam(c, "clientProgramId")
	if !ok {
		return
	}

	details, err := h.programService.GetClientProgram(c.Request.Context(), cpID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientProgramNotFound),
			errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve program.")
		}
		return
	}

	// Only the assigned client or the owning trainer may look at it.
	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	if details.ClientID != userID && details.TrainerID != userID {
		abortWithError(c, http.StatusForbidden, "Access denied to this program.")
		return
	}

	c.JSON(http.StatusOK, MapClientProgramToResponse(&details.ClientProgram, details.Program))
}

// LogCompletion records an exercise completion and returns the updated
// completion percentage.
func (h *ProgramHandler) LogCompletion(c *gin.Context) {
	var req LogCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	cpID, ok := parseIDParam(c, "clientProgramId")
	if !ok {
		return
	}
	clientID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	programExerciseID, err := primitive.ObjectIDFromHex(req.ProgramExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program exercise ID format.")
		return
	}

	details, err := h.programService.GetClientProgram(c.Request.Context(), cpID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Client program not found.")
		return
	}
	if details.ClientID != clientID {
		abortWithError(c, http.StatusForbidden, "Access denied to this program.")
		return
	}

	log, percentage, err := h.programService.LogExerciseCompletion(c.Request.Context(), cpID, service.ExerciseCompletionInput{
		ProgramExerciseID: programExerciseID,
		Sets:              req.Sets,
		Reps:              req.Reps,
		Notes:             req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownProgramExercise):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClientProgramNotFound),
			errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to log completion.")
		}
		return
	}

	c.JSON(http.StatusCreated, LogCompletionResponse{
		LogID:                log.ID.Hex(),
		CompletedAt:          log.CompletedAt,
		CompletionPercentage: percentage,
	})
}

// CompletedToday reports whether a program exercise has been logged today,
// for the checkmark in the day view.
func (h *ProgramHandler) CompletedToday(c *gin.Context) {
	cpID, ok := parseIDParam(c, "clientProgramId")
	if !ok {
		return
	}
	programExerciseID, ok := parseIDParam(c, "programExerciseId")
	if !ok {
		return
	}
	clientID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	details, err := h.programService.GetClientProgram(c.Request.Context(), cpID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Client program not found.")
		return
	}
	if details.ClientID != clientID {
		abortWithError(c, http.StatusForbidden, "Access denied to this program.")
		return
	}

	done, err := h.programService.IsExerciseCompletedToday(c.Request.Context(), cpID, programExerciseID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to check completion.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"completedToday": done})
}

// AdvanceDay moves the client to the next day of their program.
func (h *ProgramHandler) AdvanceDay(c *gin.Context) {
	cpID, ok := parseIDParam(c, "clientProgramId")
	if !ok {
		return
	}
	clientID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	details, err := h.programService.GetClientProgram(c.Request.Context(), cpID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Client program not found.")
		return
	}
	if details.ClientID != clientID {
		abortWithError(c, http.StatusForbidden, "Access denied to this program.")
		return
	}

	cp, err := h.programService.AdvanceDay(c.Request.Context(), cpID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to advance day.")
		return
	}

	c.JSON(http.StatusOK, MapClientProgramToResponse(cp, nil))
}
