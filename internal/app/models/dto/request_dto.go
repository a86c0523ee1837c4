package dto

import (
	"github.com/dmarkou/arboretum/internal/app/models"
)

// SubmitRequestRequest files a new request ticket
type SubmitRequestRequest struct {
	Type        models.RequestType `json:"type" binding:"required"`
	TargetID    *int64             `json:"target_id"`
	Description string             `json:"description" binding:"required"`
}

// RequestView is a request row with its resolved target name. TargetName is
// the tree name for TREE requests, the username for PROFILE requests, and
// null otherwise. Username is only populated on the admin listing.
type RequestView struct {
	models.Request
	TargetName *string `json:"target_name"`
	Username   *string `json:"username,omitempty"`
}

// RequestListResponse wraps a list of request views
type RequestListResponse struct {
	Envelope
	Requests []RequestView `json:"requests,omitempty"`
}

// RequestResponse wraps a single request view
type RequestResponse struct {
	Envelope
	Request *RequestView `json:"request,omitempty"`
}

// GetRequestRequest fetches one request. The row must match both the
// request id and the target id.
type GetRequestRequest struct {
	RequestID int64 `json:"request_id" binding:"required"`
	TargetID  int64 `json:"target_id"`
}

// UpdateRequestStatusRequest moves a request through its lifecycle
type UpdateRequestStatusRequest struct {
	RequestID int64                `json:"request_id" binding:"required"`
	Status    models.RequestStatus `json:"status" binding:"required"`
}
