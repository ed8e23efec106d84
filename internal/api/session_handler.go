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

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

// BookSessionRequest defines the expected JSON for booking a session.
type BookSessionRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
	SlotID    string `json:"slotId" binding:"required"`
	Mode      string `json:"mode" binding:"required,oneof=in_person virtual self_guided"`
	VideoLink string `json:"videoLink" binding:"omitempty,url"`
	Notes     string `json:"notes"`
}

// UpdateSessionStatusRequest carries the requested lifecycle transition.
type UpdateSessionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled completed canceled"`
}

// UpdateSessionDetailsRequest carries optional edits for a pending session.
// Absent fields are left untouched.
type UpdateSessionDetailsRequest struct {
	SlotID    *string `json:"slotId"`
	VideoLink *string `json:"videoLink"`
	Notes     *string `json:"notes"`
}

type AssignSessionProgramRequest struct {
	ProgramID string `json:"programId" binding:"required"`
}

// SessionResponse is the DTO for returning session details.
type SessionResponse struct {
	ID              string    `json:"id"`
	TrainerID       string    `json:"trainerId"`
	ClientID        string    `json:"clientId"`
	SlotID          string    `json:"slotId"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Mode            string    `json:"mode"`
	VideoLink       string    `json:"videoLink,omitempty"`
	ProgramID       *string   `json:"programId,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MapSessionToResponse converts a domain.Session to SessionResponse DTO.
func MapSessionToResponse(s *domain.Session) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}
	resp := SessionResponse{
		ID:              s.ID.Hex(),
		TrainerID:       s.TrainerID.Hex(),
		ClientID:        s.ClientID.Hex(),
		SlotID:          s.SlotID.Hex(),
		ScheduledAt:     s.ScheduledAt,
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
		Mode:            string(s.Mode),
		VideoLink:       s.VideoLink,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.ProgramID != nil {
		hex := s.ProgramID.Hex()
		resp.ProgramID = &hex
	}
	return resp
}

// MapSessionsToResponse converts a slice of domain.Session to DTOs.
func MapSessionsToResponse(sessions []domain.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = MapSessionToResponse(&s)
	}
	return responses
}

// --- Handler Methods ---

// BookSession godoc
// @Summary Book a session with a trainer
// @Description Creates a session request in pending status and claims the time slot.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param booking body BookSessionRequest true "Booking details"
// @Success 201 {object} SessionResponse "Session requested"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Trainer or slot not found"
// @Failure 409 {object} gin.H "Slot already taken"
// @Router /sessions [post]
func (h *SessionHandler) BookSession(c *gin.Context) {
	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	clientID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format.")
		return
	}
	slotID, err := primitive.ObjectIDFromHex(req.SlotID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid slot ID format.")
		return
	}

	session, err := h.sessionService.CreateSession(c.Request.Context(), service.BookingRequest{
		ClientID:  clientID,
		TrainerID: trainerID,
		SlotID:    slotID,
		Mode:      domain.SessionMode(req.Mode),
		VideoLink: req.VideoLink,
		Notes:     req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingSelection),
			errors.Is(err, service.ErrInvalidSessionMode),
			errors.Is(err, service.ErrVideoLinkRequired),
			errors.Is(err, service.ErrSlotNotOwnedByTrainer):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSlotNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSlotTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to book session.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapSessionToResponse(session))
}

// UpdateSessionStatus applies one lifecycle transition to a session. Which
// transitions the caller may perform depends on their role.
func (h *SessionHandler) UpdateSessionStatus(c *gin.Context) {
	var req UpdateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sessionID, ok := parseIDParam(c, "sessionId")
	if !ok {
		return
	}
	actorID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify role from token.")
		return
	}

	session, err := h.sessionService.UpdateSessionStatus(c.Request.Context(), actorID, role, sessionID, domain.SessionStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTerminalStatus),
			errors.Is(err, service.ErrInvalidTransition):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrTransitionDenied),
			errors.Is(err, service.ErrSessionAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update session status.")
		}
		return
	}
	if session == nil {
		// Missing session is a no-op, not an error.
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// GetMySessions lists the sessions of the authenticated user, from whichever
// side of the booking they sit on.
func (h *SessionHandler) GetMySessions(c *gin.Context) {
	userID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify role from token.")
		return
	}

	var sessions []domain.Session
	if role == domain.RoleTrainer {
		sessions, err = h.sessionService.GetSessionsByTrainer(c.Request.Context(), userID)
	} else {
		sessions, err = h.sessionService.GetSessionsByClient(c.Request.Context(), userID)
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions.")
		return
	}

	c.JSON(http.StatusOK, MapSessionsToResponse(sessions))
}

// UpdateSessionDetails lets the booking client edit a pending session.
func (h *SessionHandler) UpdateSessionDetails(c *gin.Context) {
	var req UpdateSessionDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sessionID, ok := parseIDParam(c, "sessionId")
	if !ok {
		return
	}
	clientID, ok := getUserObjectID(c)
	if !ok {
		return
	}

	var slotID *primitive.ObjectID
	if req.SlotID != nil {
		id, err := primitive.ObjectIDFromHex(*req.SlotID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid slot ID format.")
			return
		}
		slotID = &id
	}

	session, err := h.sessionService.UpdateSessionDetails(c.Request.Context(), clientID, sessionID, slotID, req.VideoLink, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrSessionNotEditable):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrSlotNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSlotNotOwnedByTrainer),
			errors.Is(err, service.ErrVideoLinkRequired):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSlotTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update session.")
		}
		return
	}
	if session == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// AssignProgram attaches one of the trainer's programs to a self-guided session.
func (h *SessionHandler) AssignProgram(c *gin.Context) {
	var req AssignSessionProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sessionID, ok := parseIDParam(c, "sessionId")
	if !ok {
		return
	}
	trainerID, ok := getUserObjectID(c)
	if !ok {
		return
	}
	programID, err := primitive.ObjectIDFromHex(req.ProgramID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format.")
		return
	}

	session, err := h.sessionService.AssignProgramToSession(c.Request.Context(), trainerID, sessionID, programID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionAccessDenied),
			errors.Is(err, service.ErrProgramAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrNotSelfGuided):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to assign program.")
		}
		return
	}
	if session == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, MapSessionToResponse(session))
}
