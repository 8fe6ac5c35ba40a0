package test_utils

import (
	"database/sql"
	"testing"

	"github.com/kentuckyfb/Payday/pkg/user"
)

// StoreTestUser inserts a user row and returns it, for repository tests that
// need a valid owner id.
func StoreTestUser(t *testing.T, db *sql.DB, uid string) user.User {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO users (uid, display_name, default_hourly_rate) VALUES (?, ?, ?)",
		uid, "Test User", 0.0,
	)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test user id: %v", err)
	}
	return user.User{Id: int(id), Uid: uid, DisplayName: "Test User"}
}
