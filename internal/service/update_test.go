package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/MehdiShad/CardexPro/internal/domain"
	"github.com/MehdiShad/CardexPro/internal/repository/sqlite"
	"github.com/MehdiShad/CardexPro/internal/service"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        email,
		FirstName:    "Old",
		LastName:     "Name",
		IsActive:     true,
		PasswordHash: "hash",
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestUpdateUser_ChangesOnlyPresentFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "update@example.com")

	updated, changed, err := service.UpdateUser(ctx, db.Users(), user,
		[]string{"first_name", "last_name"},
		map[string]any{"first_name": "New"},
	)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true")
	}
	if updated.FirstName != "New" {
		t.Fatalf("expected first name New, got %s", updated.FirstName)
	}
	if updated.LastName != "Name" {
		t.Fatalf("last name should be untouched, got %s", updated.LastName)
	}

	stored, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.FirstName != "New" || stored.LastName != "Name" {
		t.Fatalf("persisted state mismatch: %q %q", stored.FirstName, stored.LastName)
	}
}

func TestUpdateUser_NoChange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "same@example.com")
	before := user.UpdatedAt

	_, changed, err := service.UpdateUser(ctx, db.Users(), user,
		[]string{"first_name", "last_name"},
		map[string]any{"first_name": "Old", "last_name": "Name"},
	)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if changed {
		t.Fatal("expected changed=false when values are identical")
	}

	stored, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.UpdatedAt.Equal(before) {
		t.Fatal("expected no write when nothing changed")
	}
}

func TestUpdateUser_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "idem@example.com")

	data := map[string]any{"first_name": "First", "last_name": "Second"}
	fields := []string{"first_name", "last_name"}

	_, changed, err := service.UpdateUser(ctx, db.Users(), user, fields, data)
	if err != nil {
		t.Fatalf("first UpdateUser: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true on first call")
	}

	_, changed, err = service.UpdateUser(ctx, db.Users(), user, fields, data)
	if err != nil {
		t.Fatalf("second UpdateUser: %v", err)
	}
	if changed {
		t.Fatal("expected changed=false on second identical call")
	}
}

func TestUpdateUser_AbsentFieldIsNotCleared(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "absent@example.com")

	_, changed, err := service.UpdateUser(ctx, db.Users(), user,
		[]string{"first_name", "last_name"},
		map[string]any{},
	)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if changed {
		t.Fatal("expected changed=false for empty data")
	}
	if user.FirstName != "Old" || user.LastName != "Name" {
		t.Fatal("absent fields must keep their values")
	}
}

func TestUpdateUser_FieldOutsideAllowedListIsIgnored(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "scoped@example.com")

	// Email is present in data but not in the allowed field list.
	_, changed, err := service.UpdateUser(ctx, db.Users(), user,
		[]string{"first_name"},
		map[string]any{"email": "other@example.com", "first_name": "Scoped"},
	)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true")
	}

	stored, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Email != "scoped@example.com" {
		t.Fatalf("email outside the allowed list must not change, got %s", stored.Email)
	}
}

func TestUpdateUser_UnknownAllowedField(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "unknown@example.com")

	_, _, err := service.UpdateUser(ctx, db.Users(), user,
		[]string{"no_such_field"},
		map[string]any{"no_such_field": "x"},
	)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateUser_ValidationFailureAbortsWrite(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "validate@example.com")

	// Uppercase email violates the lowercase invariant.
	_, _, err := service.UpdateUser(ctx, db.Users(), user,
		[]string{"email"},
		map[string]any{"email": "UPPER@example.com"},
	)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	stored, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Email != "validate@example.com" {
		t.Fatalf("failed validation must not persist anything, got %s", stored.Email)
	}
}

func TestUpdateUser_WrongValueType(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "type@example.com")

	_, _, err := service.UpdateUser(ctx, db.Users(), user,
		[]string{"first_name"},
		map[string]any{"first_name": 42},
	)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-string value, got %v", err)
	}
}
