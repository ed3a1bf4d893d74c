package services

import (
	"context"
	"log"
	"time"

	"pettouch/internal/caching"
	"pettouch/internal/models"
	"pettouch/internal/repositories"

	"github.com/google/uuid"
)

// DefaultScanTimeout bounds the public tag lookup so a slow backend turns
// into an error state instead of an indefinite wait.
const DefaultScanTimeout = 10 * time.Second

// ScanService serves the public tag page: anyone who scans a pet's tag gets
// the profile, and each view counts as one scan.
type ScanService interface {
	// PublicProfile resolves the pet behind a tag and records the scan.
	// Recording is fire and forget: the profile is returned whether or not
	// the increment succeeds.
	PublicProfile(ctx context.Context, petID uuid.UUID) (*models.Pet, error)
	// RecordScan applies the single atomic counter increment for one view.
	RecordScan(ctx context.Context, petID uuid.UUID) error
}

type scanService struct {
	petRepo      repositories.PetRepository
	cacheService caching.CacheService
	timeout      time.Duration
}

func NewScanService(petRepo repositories.PetRepository, cacheService caching.CacheService, timeout time.Duration) ScanService {
	if timeout <= 0 {
		timeout = DefaultScanTimeout
	}
	return &scanService{
		petRepo:      petRepo,
		cacheService: cacheService,
		timeout:      timeout,
	}
}

func (s *scanService) PublicProfile(ctx context.Context, petID uuid.UUID) (*models.Pet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	pet, err := s.petRepo.GetByID(ctx, petID)
	if err != nil {
		// Not found or backend failure: nothing is recorded
		return nil, err
	}

	// The increment rides its own context so finishing the request does not
	// cancel it mid flight.
	go func() {
		recordCtx, recordCancel := context.WithTimeout(context.Background(), s.timeout)
		defer recordCancel()
		if err := s.RecordScan(recordCtx, petID); err != nil {
			log.Printf("Failed to record scan for pet %s: %v", petID.String(), err)
		}
	}()

	return pet, nil
}

func (s *scanService) RecordScan(ctx context.Context, petID uuid.UUID) error {
	if err := s.petRepo.IncrementScanCount(ctx, petID); err != nil {
		return err
	}

	// Drop the cached record so the next read sees the new counter
	if cacheErr := s.cacheService.DeletePet(ctx, petID); cacheErr != nil {
		log.Printf("Failed to invalidate cache for pet %s after scan: %v", petID.String(), cacheErr)
	}
	return nil
}
