package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"pettouch/internal/models"
	"pettouch/internal/plans"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for testing
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			connString = "host=localhost port=5432 user=postgres password=postgres dbname=pettouch_test sslmode=disable"
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestProfile inserts a profile row for testing
func SetupTestProfile(t *testing.T, db *TestDB, email string, tier plans.Tier) uuid.UUID {
	t.Helper()

	profileID := uuid.New()
	query := `
		INSERT INTO profiles (id, email, password_hash, full_name, role, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (email) DO NOTHING
	`
	_, err := db.Pool.Exec(context.Background(), query, profileID, email, "x", "Test User", "user", string(tier), time.Now())
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return profileID
}

// SetupTestPet inserts a pet row owned by the given profile
func SetupTestPet(t *testing.T, db *TestDB, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	petID := uuid.New()
	query := `
		INSERT INTO pets (id, owner_id, name, type, age, children_count, notes, image_url, plan, scan_count, last_scanned_at, created_at)
		VALUES ($1, $2, $3, 'dog', 3, 0, '', NULL, 'basic', 0, NULL, $4)
	`
	_, err := db.Pool.Exec(context.Background(), query, petID, ownerID, name, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test pet: %v", err)
	}

	return petID
}

// NewTestPet builds an in-memory pet for unit tests
func NewTestPet(ownerID uuid.UUID) *models.Pet {
	return &models.Pet{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          "Rex",
		Type:          "dog",
		Age:           3,
		ChildrenCount: 0,
		Notes:         "friendly",
		Plan:          string(plans.TierBasic),
		CreatedAt:     time.Now(),
	}
}

// NewTestProfile builds an in-memory profile for unit tests
func NewTestProfile(tier plans.Tier) *models.Profile {
	name := "Test User"
	return &models.Profile{
		ID:        uuid.New(),
		Email:     "test@example.com",
		FullName:  &name,
		Role:      "user",
		Plan:      string(tier),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CleanupTestData removes test rows created by the helpers above
func CleanupTestData(t *testing.T, db *TestDB, profileIDs ...uuid.UUID) {
	t.Helper()

	for _, id := range profileIDs {
		if _, err := db.Pool.Exec(context.Background(), `DELETE FROM pets WHERE owner_id = $1`, id); err != nil {
			t.Logf("Failed to clean up pets for %s: %v", id, err)
		}
		if _, err := db.Pool.Exec(context.Background(), `DELETE FROM profiles WHERE id = $1`, id); err != nil {
			t.Logf("Failed to clean up profile %s: %v", id, err)
		}
	}
}
