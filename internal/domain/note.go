package domain

import "time"

type NoteParent string

const (
	NoteParentLead     NoteParent = "lead"
	NoteParentCustomer NoteParent = "customer"
)

type NoteKind string

const (
	NotePlain   NoteKind = "note"
	NoteCall    NoteKind = "call"
	NoteEmail   NoteKind = "email"
	NoteMeeting NoteKind = "meeting"
)

// Note is a communication log entry attached to a lead or a customer.
type Note struct {
	ID         int64      `json:"id"`
	ParentType NoteParent `json:"parent_type" gorm:"index:idx_note_parent"`
	ParentID   int64      `json:"parent_id" gorm:"index:idx_note_parent"`
	AuthorID   int64      `json:"author_id"`
	Kind       NoteKind   `json:"kind"`
	Body       string     `json:"body" validate:"required" gorm:"type:text"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Note) TableName() string { return "notes" }
