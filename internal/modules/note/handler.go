package note

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"opsdesk/internal/domain"
	"opsdesk/internal/pkg/response"
	"opsdesk/internal/pkg/validator"
)

// Handler handles note HTTP requests
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notes := r.Group("/notes")
	{
		notes.POST("", h.CreateNote)
		notes.GET("", h.ListNotes)
		notes.DELETE("/:id", h.DeleteNote)
	}
}

// CreateNote handles POST /api/v1/notes
// @Summary Log a note on a lead or customer
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNoteRequest true "Note data"
// @Success 201 {object} response.Response{data=domain.Note}
// @Router /notes [post]
func (h *Handler) CreateNote(c *gin.Context) {
	authorID := c.GetInt64("staff_id")

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	note, err := h.service.Create(c.Request.Context(), authorID, req)
	if err != nil {
		switch err {
		case ErrParentNotFound:
			response.Error(c, http.StatusNotFound, "PARENT_NOT_FOUND", "Lead or customer not found")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "INVALID_PARENT", "Parent must be a lead or a customer")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, note)
}

// ListNotes handles GET /api/v1/notes?parent_type=lead&parent_id=N
func (h *Handler) ListNotes(c *gin.Context) {
	parentType := domain.NoteParent(c.Query("parent_type"))
	parentID, err := strconv.ParseInt(c.Query("parent_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_PARENT", "parent_type and parent_id query parameters are required")
		return
	}

	notes, err := h.service.ListByParent(c.Request.Context(), parentType, parentID)
	if err != nil {
		switch err {
		case ErrParentNotFound:
			response.Error(c, http.StatusNotFound, "PARENT_NOT_FOUND", "Lead or customer not found")
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "INVALID_PARENT", "Parent must be a lead or a customer")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"notes": notes})
}

// DeleteNote handles DELETE /api/v1/notes/:id
func (h *Handler) DeleteNote(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == ErrNoteNotFound {
			response.Error(c, http.StatusNotFound, "NOTE_NOT_FOUND", "Note not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Note deleted"})
}
