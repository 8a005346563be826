package repositories

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/blogem/sign2pay-oauth/database"
	"github.com/blogem/sign2pay-oauth/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	// Initialize test database using the actual migration system
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestAuthEventRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuthEventRepository(db)

	// Test Create
	redirect := &models.AuthEvent{
		RequestUID: "req-1",
		Kind:       models.AuthEventAuthorizeRedirect,
		Detail:     "https://app.sign2pay.com/oauth/authorize",
		IPAddress:  "127.0.0.1",
		UserAgent:  "go-test",
	}
	if err := repo.Create(redirect); err != nil {
		t.Fatalf("Failed to create auth event: %v", err)
	}
	if redirect.ID == 0 {
		t.Error("Expected event ID to be set after creation")
	}
	if redirect.Timestamp.IsZero() {
		t.Error("Expected event timestamp to be set after creation")
	}

	failed := &models.AuthEvent{
		RequestUID: "req-2",
		Kind:       models.AuthEventTokenExchangeFailed,
		Detail:     "invalid_grant: code expired",
		StatusCode: 400,
	}
	if err := repo.Create(failed); err != nil {
		t.Fatalf("Failed to create auth event: %v", err)
	}

	// Test GetByRequestUID
	events, err := repo.GetByRequestUID("req-2")
	if err != nil {
		t.Fatalf("Failed to get auth events by request uid: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Kind != models.AuthEventTokenExchangeFailed {
		t.Errorf("Expected kind %s, got %s", models.AuthEventTokenExchangeFailed, events[0].Kind)
	}
	if events[0].StatusCode != 400 {
		t.Errorf("Expected status code 400, got %d", events[0].StatusCode)
	}

	// Test GetRecent
	recent, err := repo.GetRecent(10)
	if err != nil {
		t.Fatalf("Failed to get recent auth events: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(recent))
	}
	if recent[0].ID != failed.ID {
		t.Errorf("Expected newest event first, got ID %d", recent[0].ID)
	}

	limited, err := repo.GetRecent(1)
	if err != nil {
		t.Fatalf("Failed to get recent auth events: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 event, got %d", len(limited))
	}

	none, err := repo.GetByRequestUID("missing")
	if err != nil {
		t.Fatalf("Failed to query missing request uid: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no events, got %d", len(none))
	}
}
