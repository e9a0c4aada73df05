package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vinothini113/spa-application/internal/constants"
	"github.com/vinothini113/spa-application/internal/models"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "users.xml"))
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	st := tempStore(t)

	users, err := st.ReadAll()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty store, got %d users", len(users))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	st := tempStore(t)

	lastLogin := time.Now().UTC().Truncate(time.Second)
	want := []models.User{
		{
			ID:           1,
			Username:     "admin",
			PasswordHash: "$2a$10$hash",
			Role:         constants.RoleAdmin,
			Email:        "admin@example.com",
			FullName:     "System Administrator",
			CreatedAt:    time.Now().UTC().Truncate(time.Second),
			LastLoginAt:  &lastLogin,
		},
		{
			ID:           2,
			Username:     "vino",
			PasswordHash: "$2a$10$other",
			Role:         constants.RoleGeneralUser,
			Email:        "vino@example.com",
			FullName:     "Vinothini Dayalan",
			CreatedAt:    time.Now().UTC().Truncate(time.Second),
		},
	}

	if err := st.WriteAll(want); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := st.ReadAll()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}
	if got[0].Username != "admin" || got[0].PasswordHash != "$2a$10$hash" || got[0].Role != constants.RoleAdmin {
		t.Fatalf("unexpected first user: %+v", got[0])
	}
	if !got[0].CreatedAt.Equal(want[0].CreatedAt) {
		t.Fatalf("created at mismatch: got=%v want=%v", got[0].CreatedAt, want[0].CreatedAt)
	}
	if got[0].LastLoginAt == nil || !got[0].LastLoginAt.Equal(lastLogin) {
		t.Fatalf("last login mismatch: %v", got[0].LastLoginAt)
	}
	if got[1].LastLoginAt != nil {
		t.Fatalf("expected nil last login, got %v", got[1].LastLoginAt)
	}
}

func TestFileStoreWriteReplacesContents(t *testing.T) {
	st := tempStore(t)

	if err := st.WriteAll([]models.User{
		{ID: 1, Username: "a", Role: constants.RoleAdmin},
		{ID: 2, Username: "b", Role: constants.RoleGeneralUser},
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := st.WriteAll([]models.User{
		{ID: 2, Username: "b", Role: constants.RoleAdmin},
	}); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	users, err := st.ReadAll()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(users) != 1 || users[0].ID != 2 {
		t.Fatalf("expected single user with id 2, got %+v", users)
	}
}

func TestFileStoreSortsByID(t *testing.T) {
	st := tempStore(t)

	if err := st.WriteAll([]models.User{
		{ID: 3, Username: "c"},
		{ID: 1, Username: "a"},
		{ID: 2, Username: "b"},
	}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	users, err := st.ReadAll()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	for i, want := range []uint{1, 2, 3} {
		if users[i].ID != want {
			t.Fatalf("expected id %d at position %d, got %d", want, i, users[i].ID)
		}
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.xml")
	if err := os.WriteFile(path, []byte("not-xml <<<"), 0o644); err != nil {
		t.Fatalf("seed corrupt file failed: %v", err)
	}

	st := NewFileStore(path)
	if _, err := st.ReadAll(); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
