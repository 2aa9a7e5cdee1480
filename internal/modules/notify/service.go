package notify

import (
	"context"
	"log"
	"time"
)

// Event is a toast-style notification pushed to connected staff.
type Event struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
	At      time.Time      `json:"at"`
}

// Service broadcasts events over the hub and logs them for staff who
// are not connected.
type Service struct {
	hub *Hub
}

func NewService(hub *Hub) *Service {
	return &Service{hub: hub}
}

func (s *Service) Notify(_ context.Context, kind, message string, data map[string]any) {
	event := Event{
		Kind:    kind,
		Message: message,
		Data:    data,
		At:      time.Now(),
	}

	sent := s.hub.Broadcast(event)
	log.Printf("notify: %s %q delivered to %d clients", kind, message, sent)
}
