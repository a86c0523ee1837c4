package models

import (
	"time"
)

// RequestType defines what a request is about
type RequestType string

const (
	RequestTypeTree    RequestType = "TREE"
	RequestTypeProfile RequestType = "PROFILE"
	RequestTypeOther   RequestType = "OTHER"
)

// RequestStatus defines the request lifecycle state
type RequestStatus string

const (
	RequestStatusPending RequestStatus = "PENDING"
	RequestStatusOpen    RequestStatus = "OPEN"
	RequestStatusClosed  RequestStatus = "CLOSED"
)

// ValidRequestStatus reports whether s is one of the known states.
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusOpen, RequestStatusClosed:
		return true
	}
	return false
}

// Request defines a user-submitted ticket based on the 'requests' table.
// TargetID points at a tree or user row depending on Type; it carries no
// foreign key and may dangle.
type Request struct {
	ID          int64         `json:"id" db:"id"`
	UserID      int64         `json:"user_id" db:"user_id"`
	Type        RequestType   `json:"type" db:"type"`
	TargetID    *int64        `json:"target_id" db:"target_id"`
	Description string        `json:"description" db:"description"`
	Status      RequestStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	OpenedAt    *time.Time    `json:"opened_at" db:"opened_at"`
	ResolvedAt  *time.Time    `json:"resolved_at" db:"resolved_at"`
}
