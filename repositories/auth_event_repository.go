package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/sign2pay-oauth/models"
)

// AuthEventRepository handles authorization audit trail persistence
type AuthEventRepository interface {
	Create(event *models.AuthEvent) error
	GetByRequestUID(requestUID string) ([]models.AuthEvent, error)
	GetRecent(limit int) ([]models.AuthEvent, error)
}

type sqliteAuthEventRepository struct {
	db *sql.DB
}

// NewAuthEventRepository creates a new auth event repository
func NewAuthEventRepository(db *sql.DB) AuthEventRepository {
	return &sqliteAuthEventRepository{db: db}
}

// Create inserts a new auth event and sets its ID and timestamp
func (r *sqliteAuthEventRepository) Create(event *models.AuthEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO auth_events (timestamp, request_uid, kind, detail, status_code, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(
		query,
		event.Timestamp,
		event.RequestUID,
		string(event.Kind),
		event.Detail,
		event.StatusCode,
		event.IPAddress,
		event.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to create auth event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get auth event ID: %w", err)
	}
	event.ID = id

	return nil
}

// GetByRequestUID returns every event recorded for a request, oldest first
func (r *sqliteAuthEventRepository) GetByRequestUID(requestUID string) ([]models.AuthEvent, error) {
	query := `
		SELECT id, timestamp, request_uid, kind, detail, status_code, ip_address, user_agent
		FROM auth_events
		WHERE request_uid = ?
		ORDER BY id
	`
	return r.query(query, requestUID)
}

// GetRecent returns the newest events first
func (r *sqliteAuthEventRepository) GetRecent(limit int) ([]models.AuthEvent, error) {
	query := `
		SELECT id, timestamp, request_uid, kind, detail, status_code, ip_address, user_agent
		FROM auth_events
		ORDER BY id DESC
		LIMIT ?
	`
	return r.query(query, limit)
}

func (r *sqliteAuthEventRepository) query(query string, args ...any) ([]models.AuthEvent, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query auth events: %w", err)
	}
	defer rows.Close()

	var events []models.AuthEvent
	for rows.Next() {
		var event models.AuthEvent
		var kind string
		err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.RequestUID,
			&kind,
			&event.Detail,
			&event.StatusCode,
			&event.IPAddress,
			&event.UserAgent,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auth event: %w", err)
		}
		event.Kind = models.AuthEventKind(kind)
		events = append(events, event)
	}

	return events, rows.Err()
}
