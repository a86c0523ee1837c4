package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkou/arboretum/internal/app/models"
	"github.com/dmarkou/arboretum/internal/pkg/apperrors"
	"github.com/dmarkou/arboretum/internal/pkg/logger"
)

// RequestRow is a request joined with its resolved target name and, on the
// admin listing, the submitter's username.
type RequestRow struct {
	models.Request
	TargetName *string
	Username   *string
}

// IRequestRepository defines database operations for request tickets
type IRequestRepository interface {
	Create(ctx context.Context, userID int64, reqType models.RequestType, targetID *int64, description string) error
	ListByUser(ctx context.Context, userID int64) ([]RequestRow, error)
	GetByIDAndTarget(ctx context.Context, requestID, targetID int64) (*RequestRow, error)
	ListAll(ctx context.Context) ([]RequestRow, error)
	GetStatus(ctx context.Context, id int64) (models.RequestStatus, error)
	UpdateStatus(ctx context.Context, id int64, status models.RequestStatus, stampOpened, stampResolved bool) error
}

// RequestRepository handles database operations for request tickets
type RequestRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new PENDING request
func (r *RequestRepository) Create(ctx context.Context, userID int64, reqType models.RequestType, targetID *int64, description string) error {
	sql, args, err := r.sb.Insert("requests").
		Columns("user_id", "type", "target_id", "description", "status", "created_at").
		Values(userID, reqType, targetID, description, models.RequestStatusPending, squirrel.Expr("NOW()")).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create request SQL")
		return fmt.Errorf("failed to build create request query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create request query")
		return fmt.Errorf("error creating request: %w", err)
	}

	return nil
}

// targetNameExpr resolves a human-readable target per request type:
// the tree name for TREE requests, the username for PROFILE requests.
const targetNameExpr = `
	CASE
		WHEN r.type = 'TREE' THEN t.name
		WHEN r.type = 'PROFILE' THEN u2.username
		ELSE NULL
	END AS target_name
`

func scanRequestRows(rows pgx.Rows, withSubmitter bool) ([]RequestRow, error) {
	var requests []RequestRow
	for rows.Next() {
		var req RequestRow
		dest := []interface{}{
			&req.ID,
			&req.UserID,
			&req.Type,
			&req.TargetID,
			&req.Description,
			&req.Status,
			&req.CreatedAt,
			&req.OpenedAt,
			&req.ResolvedAt,
		}
		if withSubmitter {
			dest = append(dest, &req.Username)
		}
		dest = append(dest, &req.TargetName)

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// ListByUser retrieves the caller's requests, newest first
func (r *RequestRepository) ListByUser(ctx context.Context, userID int64) ([]RequestRow, error) {
	query := `
		SELECT r.id, r.user_id, r.type, r.target_id, r.description, r.status,
		       r.created_at, r.opened_at, r.resolved_at,
		       ` + targetNameExpr + `
		FROM requests r
		LEFT JOIN trees t ON r.type = 'TREE' AND r.target_id = t.id
		LEFT JOIN users u2 ON r.type = 'PROFILE' AND r.target_id = u2.id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequestRows(rows, false)
}

// GetByIDAndTarget retrieves one request matching both the id and target id
func (r *RequestRepository) GetByIDAndTarget(ctx context.Context, requestID, targetID int64) (*RequestRow, error) {
	query := `
		SELECT r.id, r.user_id, r.type, r.target_id, r.description, r.status,
		       r.created_at, r.opened_at, r.resolved_at,
		       ` + targetNameExpr + `
		FROM requests r
		LEFT JOIN trees t ON r.type = 'TREE' AND r.target_id = t.id
		LEFT JOIN users u2 ON r.type = 'PROFILE' AND r.target_id = u2.id
		WHERE r.id = $1 AND r.target_id = $2
	`

	var req RequestRow
	err := r.db.QueryRow(ctx, query, requestID, targetID).Scan(
		&req.ID,
		&req.UserID,
		&req.Type,
		&req.TargetID,
		&req.Description,
		&req.Status,
		&req.CreatedAt,
		&req.OpenedAt,
		&req.ResolvedAt,
		&req.TargetName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving request: %w", err)
	}

	return &req, nil
}

// ListAll retrieves every request with submitter and target names, newest first
func (r *RequestRepository) ListAll(ctx context.Context) ([]RequestRow, error) {
	query := `
		SELECT r.id, r.user_id, r.type, r.target_id, r.description, r.status,
		       r.created_at, r.opened_at, r.resolved_at,
		       u.username,
		       ` + targetNameExpr + `
		FROM requests r
		LEFT JOIN users u ON r.user_id = u.id
		LEFT JOIN trees t ON r.type = 'TREE' AND r.target_id = t.id
		LEFT JOIN users u2 ON r.type = 'PROFILE' AND r.target_id = u2.id
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRequestRows(rows, true)
}

// GetStatus reads the current lifecycle state of a request
func (r *RequestRepository) GetStatus(ctx context.Context, id int64) (models.RequestStatus, error) {
	var status models.RequestStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM requests WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrRequestNotFound
		}
		return "", fmt.Errorf("error retrieving request status: %w", err)
	}
	return status, nil
}

// UpdateStatus moves a request to a new state. The opened_at and resolved_at
// stamps are written only when the caller marks the first entry into the
// corresponding state.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus, stampOpened, stampResolved bool) error {
	update := r.sb.Update("requests").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	if stampOpened {
		update = update.Set("opened_at", squirrel.Expr("NOW()"))
	}
	if stampResolved {
		update = update.Set("resolved_at", squirrel.Expr("NOW()"))
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating request status: %w", err)
	}

	return nil
}
