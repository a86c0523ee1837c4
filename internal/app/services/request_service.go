package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/app/models/dto"
	"github.com/dmarkou/arboretum/internal/app/repositories"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
)

// RequestService handles the user request ticket lifecycle
type RequestService struct {
	requestRepo repositories.IRequestRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewRequestService creates a new RequestService
func NewRequestService(
	requestRepo repositories.IRequestRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func toRequestView(row repositories.RequestRow) dto.RequestView {
	return dto.RequestView{
		Request:    row.Request,
		TargetName: row.TargetName,
		Username:   row.Username,
	}
}

func toRequestViews(rows []repositories.RequestRow) []dto.RequestView {
	views := make([]dto.RequestView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toRequestView(row))
	}
	return views
}

// SubmitRequest files a new PENDING ticket for the caller
func (s *RequestService) SubmitRequest(ctx context.Context, userID int64, req dto.SubmitRequestRequest) error {
	switch req.Type {
	case models.RequestTypeTree, models.RequestTypeProfile, models.RequestTypeOther:
	default:
		return apperrors.NewBadRequestError("Invalid request type")
	}

	if err := s.requestRepo.Create(ctx, userID, req.Type, req.TargetID, req.Description); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Str("type", string(req.Type)).Msg("Request submitted")
	return nil
}

// GetUserRequests returns the caller's own tickets, newest first
func (s *RequestService) GetUserRequests(ctx context.Context, userID int64) ([]dto.RequestView, error) {
	rows, err := s.requestRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toRequestViews(rows), nil
}

// GetRequest returns one ticket addressed by both its id and target id
func (s *RequestService) GetRequest(ctx context.Context, req dto.GetRequestRequest) (*dto.RequestView, error) {
	row, err := s.requestRepo.GetByIDAndTarget(ctx, req.RequestID, req.TargetID)
	if err != nil {
		return nil, err
	}
	view := toRequestView(*row)
	return &view, nil
}

// GetAllAdminRequests returns every ticket with submitter names. Admin only.
func (s *RequestService) GetAllAdminRequests(ctx context.Context, callerID int64) ([]dto.RequestView, error) {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return nil, err
	}

	rows, err := s.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toRequestViews(rows), nil
}

// statusStamps decides which lifecycle timestamps a transition writes.
// Only the first entry into a state earns its stamp; revisits keep the
// original timestamp.
func statusStamps(current, next models.RequestStatus) (stampOpened, stampResolved bool) {
	stampOpened = next == models.RequestStatusOpen && current != models.RequestStatusOpen
	stampResolved = next == models.RequestStatusClosed && current != models.RequestStatusClosed
	return stampOpened, stampResolved
}

// UpdateRequestStatus moves a ticket to a new state. Admin only.
func (s *RequestService) UpdateRequestStatus(ctx context.Context, callerID int64, req dto.UpdateRequestStatusRequest) error {
	if err := requireAdmin(ctx, s.userRepo, callerID); err != nil {
		return err
	}

	if !models.ValidRequestStatus(req.Status) {
		return apperrors.ErrInvalidRequestStatus
	}

	current, err := s.requestRepo.GetStatus(ctx, req.RequestID)
	if err != nil {
		return err
	}

	stampOpened, stampResolved := statusStamps(current, req.Status)
	if err := s.requestRepo.UpdateStatus(ctx, req.RequestID, req.Status, stampOpened, stampResolved); err != nil {
		return err
	}

	s.logger.Info().
		Int64("requestID", req.RequestID).
		Str("from", string(current)).
		Str("to", string(req.Status)).
		Msg("Request status updated")
	return nil
}
