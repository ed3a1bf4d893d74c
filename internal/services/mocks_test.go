package services

import (
	"context"
	"io"
	"time"

	"pettouch/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockPetRepo struct {
	mock.Mock
}

func (m *mockPetRepo) Create(ctx context.Context, pet *models.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *mockPetRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	args := m.Called(ctx, id)
	if pet, ok := args.Get(0).(*models.Pet); ok {
		return pet, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPetRepo) Update(ctx context.Context, pet *models.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *mockPetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*models.Pet, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if pets, ok := args.Get(0).([]*models.Pet); ok {
		return pets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPetRepo) ListAll(ctx context.Context, limit, offset int) ([]*models.Pet, error) {
	args := m.Called(ctx, limit, offset)
	if pets, ok := args.Get(0).([]*models.Pet); ok {
		return pets, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPetRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *mockPetRepo) IncrementScanCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if profile, ok := args.Get(0).(*models.Profile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if profile, ok := args.Get(0).(*models.Profile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) UpdatePlan(ctx context.Context, id uuid.UUID, plan string) error {
	args := m.Called(ctx, id, plan)
	return args.Error(0)
}

func (m *mockProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProfileRepo) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	args := m.Called(ctx, limit, offset)
	if profiles, ok := args.Get(0).([]*models.Profile); ok {
		return profiles, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCacheService struct {
	mock.Mock
}

func (m *mockCacheService) GetPet(ctx context.Context, petID uuid.UUID) (*models.Pet, error) {
	args := m.Called(ctx, petID)
	if pet, ok := args.Get(0).(*models.Pet); ok {
		return pet, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCacheService) SetPet(ctx context.Context, pet *models.Pet, ttl time.Duration) error {
	args := m.Called(ctx, pet, ttl)
	return args.Error(0)
}

func (m *mockCacheService) DeletePet(ctx context.Context, petID uuid.UUID) error {
	args := m.Called(ctx, petID)
	return args.Error(0)
}

func (m *mockCacheService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if profile, ok := args.Get(0).(*models.Profile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCacheService) SetProfile(ctx context.Context, profile *models.Profile, ttl time.Duration) error {
	args := m.Called(ctx, profile, ttl)
	return args.Error(0)
}

func (m *mockCacheService) DeleteProfile(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockCacheService) GetAdminStats(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if stats, ok := args.Get(0).(map[string]int); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCacheService) SetAdminStats(ctx context.Context, stats map[string]int, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *mockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *mockCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	args := m.Called(ctx, key, window)
	return args.Error(0)
}

func (m *mockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockMinioService struct {
	mock.Mock
}

func (m *mockMinioService) UploadPetImage(ctx context.Context, ownerID, petID uuid.UUID, filename string, reader io.Reader, size int64) (string, error) {
	args := m.Called(ctx, ownerID, petID, filename, reader, size)
	return args.String(0), args.Error(1)
}

func (m *mockMinioService) GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *mockMinioService) DeleteImage(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *mockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}
