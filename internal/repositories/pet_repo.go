package repositories

import (
	"context"
	"errors"

	"pettouch/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrPetNotFound = errors.New("pet not found")

type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error)
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Pet, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Pet, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	IncrementScanCount(ctx context.Context, id uuid.UUID) error
}

type petRepo struct {
	db Database
}

func NewPetRepo(db Database) PetRepository {
	return &petRepo{db: db}
}

// Create inserts the pet and reads back the server-assigned timestamp so
// callers and the cache hold the same record the row does.
func (r *petRepo) Create(ctx context.Context, pet *models.Pet) error {
	query := `
		INSERT INTO pets (id, owner_id, name, type, age, children_count, notes, image_url, plan, scan_count, last_scanned_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, NULL, NOW())
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, pet.ID, pet.OwnerID, pet.Name, pet.Type, pet.Age, pet.ChildrenCount, pet.Notes, pet.ImageURL, pet.Plan).Scan(&pet.CreatedAt)
}

func (r *petRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	pet := &models.Pet{}
	query := `
		SELECT id, owner_id, name, type, age, children_count, notes, image_url, plan, scan_count, last_scanned_at, created_at
		FROM pets
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&pet.ID, &pet.OwnerID, &pet.Name, &pet.Type, &pet.Age, &pet.ChildrenCount, &pet.Notes, &pet.ImageURL, &pet.Plan, &pet.ScanCount, &pet.LastScannedAt, &pet.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	return pet, nil
}

func (r *petRepo) Update(ctx context.Context, pet *models.Pet) error {
	query := `
		UPDATE pets
		SET name = $1, type = $2, age = $3, children_count = $4, notes = $5, image_url = $6
		WHERE id = $7
	`
	tag, err := r.db.Exec(ctx, query, pet.Name, pet.Type, pet.Age, pet.ChildrenCount, pet.Notes, pet.ImageURL, pet.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPetNotFound
	}
	return nil
}

func (r *petRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM pets WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPetNotFound
	}
	return nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Pet, error) {
	query := `
		SELECT id, owner_id, name, type, age, children_count, notes, image_url, plan, scan_count, last_scanned_at, created_at
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

func (r *petRepo) ListAll(ctx context.Context, limit, offset int) ([]*models.Pet, error) {
	query := `
		SELECT id, owner_id, name, type, age, children_count, notes, image_url, plan, scan_count, last_scanned_at, created_at
		FROM pets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

func (r *petRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM pets WHERE owner_id = $1`
	err := r.db.QueryRow(ctx, query, ownerID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementScanCount bumps the scan counter in a single statement so
// concurrent scans of the same tag never lose updates.
func (r *petRepo) IncrementScanCount(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE pets
		SET scan_count = scan_count + 1, last_scanned_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPetNotFound
	}
	return nil
}

func scanPets(rows pgx.Rows) ([]*models.Pet, error) {
	var pets []*models.Pet
	for rows.Next() {
		pet := &models.Pet{}
		if err := rows.Scan(&pet.ID, &pet.OwnerID, &pet.Name, &pet.Type, &pet.Age, &pet.ChildrenCount, &pet.Notes, &pet.ImageURL, &pet.Plan, &pet.ScanCount, &pet.LastScannedAt, &pet.CreatedAt); err != nil {
			return nil, err
		}
		pets = append(pets, pet)
	}
	return pets, rows.Err()
}
