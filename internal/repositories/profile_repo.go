package repositories

import (
	"context"
	"errors"

	"pettouch/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailTaken      = errors.New("email already registered")
)

const uniqueViolationCode = "23505"

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdatePlan(ctx context.Context, id uuid.UUID, plan string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Profile, error)
}

type profileRepo struct {
	db Database
}

func NewProfileRepo(db Database) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, full_name, role, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, profile.ID, profile.Email, profile.PasswordHash, profile.FullName, profile.Role, profile.Plan)
	if err != nil {
		// Concurrent signups race past the pre-insert lookup; the unique
		// index is the authority
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `
		SELECT id, email, password_hash, full_name, role, plan, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&profile.ID, &profile.Email, &profile.PasswordHash, &profile.FullName, &profile.Role, &profile.Plan, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `
		SELECT id, email, password_hash, full_name, role, plan, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&profile.ID, &profile.Email, &profile.PasswordHash, &profile.FullName, &profile.Role, &profile.Plan, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET email = $1, full_name = $2, plan = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, profile.Email, profile.FullName, profile.Plan, profile.ID)
	return err
}

func (r *profileRepo) UpdatePlan(ctx context.Context, id uuid.UUID, plan string) error {
	query := `
		UPDATE profiles
		SET plan = $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, plan, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM profiles WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *profileRepo) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	query := `
		SELECT id, email, password_hash, full_name, role, plan, created_at, updated_at
		FROM profiles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		profile := &models.Profile{}
		if err := rows.Scan(&profile.ID, &profile.Email, &profile.PasswordHash, &profile.FullName, &profile.Role, &profile.Plan, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
