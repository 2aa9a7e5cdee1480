package note

import "opsdesk/internal/domain"

type CreateNoteRequest struct {
	ParentType domain.NoteParent `json:"parent_type" validate:"required,oneof=lead customer"`
	ParentID   int64             `json:"parent_id" validate:"required"`
	Kind       domain.NoteKind   `json:"kind" validate:"omitempty,oneof=note call email meeting"`
	Body       string            `json:"body" validate:"required"`
}
