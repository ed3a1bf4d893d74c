package services

import (
	"context"
	"log"
	"time"

	"pettouch/internal/caching"
	"pettouch/internal/models"
	"pettouch/internal/plans"
	"pettouch/internal/repositories"
)

const (
	adminStatsTTL = 5 * time.Minute

	// Full-table fetch ceiling. Should become a server-side aggregate
	// query before the dataset outgrows this.
	adminFetchLimit = 10000
)

// AdminStats is the dashboard rollup
type AdminStats struct {
	TotalUsers   int `json:"total_users"`
	TotalPets    int `json:"total_pets"`
	TotalScans   int `json:"total_scans"`
	PremiumUsers int `json:"premium_users"`
}

type AdminService interface {
	Stats(ctx context.Context) (*AdminStats, error)
	// RefreshStats recomputes the rollup and repopulates the cache
	RefreshStats(ctx context.Context) (*AdminStats, error)
	RecentUsers(ctx context.Context, limit int) ([]*models.Profile, error)
	RecentPets(ctx context.Context, limit int) ([]*models.Pet, error)
}

type adminService struct {
	profileRepo  repositories.ProfileRepository
	petRepo      repositories.PetRepository
	cacheService caching.CacheService
}

func NewAdminService(profileRepo repositories.ProfileRepository, petRepo repositories.PetRepository, cacheService caching.CacheService) AdminService {
	return &adminService{
		profileRepo:  profileRepo,
		petRepo:      petRepo,
		cacheService: cacheService,
	}
}

func (s *adminService) Stats(ctx context.Context) (*AdminStats, error) {
	if cached, err := s.cacheService.GetAdminStats(ctx); cached != nil {
		return &AdminStats{
			TotalUsers:   cached["total_users"],
			TotalPets:    cached["total_pets"],
			TotalScans:   cached["total_scans"],
			PremiumUsers: cached["premium_users"],
		}, nil
	} else if err != nil {
		log.Printf("Cache error for admin stats: %v", err)
	}

	return s.RefreshStats(ctx)
}

func (s *adminService) RefreshStats(ctx context.Context) (*AdminStats, error) {
	pets, err := s.petRepo.ListAll(ctx, adminFetchLimit, 0)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.List(ctx, adminFetchLimit, 0)
	if err != nil {
		return nil, err
	}

	stats := &AdminStats{
		TotalUsers: len(profiles),
		TotalPets:  len(pets),
	}
	for _, pet := range pets {
		stats.TotalScans += pet.ScanCount
	}
	for _, profile := range profiles {
		if tier, _ := plans.ParseTier(profile.Plan); tier != plans.TierBasic {
			stats.PremiumUsers++
		}
	}

	cached := map[string]int{
		"total_users":   stats.TotalUsers,
		"total_pets":    stats.TotalPets,
		"total_scans":   stats.TotalScans,
		"premium_users": stats.PremiumUsers,
	}
	if cacheErr := s.cacheService.SetAdminStats(ctx, cached, adminStatsTTL); cacheErr != nil {
		log.Printf("Failed to cache admin stats: %v", cacheErr)
	}

	return stats, nil
}

func (s *adminService) RecentUsers(ctx context.Context, limit int) ([]*models.Profile, error) {
	limit, _ = validListLimit(limit)
	return s.profileRepo.List(ctx, limit, 0)
}

func (s *adminService) RecentPets(ctx context.Context, limit int) ([]*models.Pet, error) {
	limit, _ = validListLimit(limit)
	return s.petRepo.ListAll(ctx, limit, 0)
}

func validListLimit(limit int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return limit, 0
}
