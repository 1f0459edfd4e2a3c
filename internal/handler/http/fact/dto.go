// Package fact provides the HTTP handler for the fact endpoint.
package fact

import "time"

// DTO represents the JSON structure for fact data transfer.
type DTO struct {
	Fact        string    `json:"fact" example:"Cats sleep 70% of their lives."`
	Length      int       `json:"length" example:"30"`
	RetrievedAt time.Time `json:"retrieved_at" example:"2026-08-30T12:00:00Z"`
}
