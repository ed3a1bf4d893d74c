package services

import (
	"context"
	"errors"
	"log"
	"time"

	"pettouch/internal/caching"
	"pettouch/internal/models"
	"pettouch/internal/plans"
	"pettouch/internal/repositories"

	"github.com/google/uuid"
)

const profileCacheTTL = 5 * time.Minute

// Session is the resolved identity of an authenticated request: who the
// user is, what plan they are on, and whether they are an admin. The role
// and plan always come from the stored profile, never from the token or
// the email address.
type Session struct {
	Account *models.Profile
	Plan    plans.Tier
	IsAdmin bool
}

// SessionService resolves profiles into sessions
type SessionService interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*Session, error)
	// Refresh bypasses the profile cache so a session resolved right after
	// a profile mutation observes that mutation.
	Refresh(ctx context.Context, userID uuid.UUID) (*Session, error)
}

type sessionService struct {
	profileRepo repositories.ProfileRepository
	cacheSvc    caching.CacheService
}

func NewSessionService(profileRepo repositories.ProfileRepository, cacheSvc caching.CacheService) SessionService {
	return &sessionService{
		profileRepo: profileRepo,
		cacheSvc:    cacheSvc,
	}
}

func (s *sessionService) Resolve(ctx context.Context, userID uuid.UUID) (*Session, error) {
	if cached, err := s.cacheSvc.GetProfile(ctx, userID); cached != nil {
		return sessionFromProfile(cached), nil
	} else if err != nil {
		log.Printf("Cache error resolving profile %s: %v", userID.String(), err)
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			// An identity without a profile row still gets a minimal
			// signed-in session rather than a failed request.
			log.Printf("WARN: no profile found for user %s, using defaults", userID.String())
			return &Session{
				Account: &models.Profile{ID: userID, Role: "user", Plan: string(plans.TierBasic)},
				Plan:    plans.TierBasic,
				IsAdmin: false,
			}, nil
		}
		return nil, err
	}

	if cacheErr := s.cacheSvc.SetProfile(ctx, profile, profileCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache profile %s: %v", userID.String(), cacheErr)
	}

	return sessionFromProfile(profile), nil
}

func (s *sessionService) Refresh(ctx context.Context, userID uuid.UUID) (*Session, error) {
	if err := s.cacheSvc.DeleteProfile(ctx, userID); err != nil {
		log.Printf("Failed to invalidate cached profile %s: %v", userID.String(), err)
	}
	return s.Resolve(ctx, userID)
}

func sessionFromProfile(profile *models.Profile) *Session {
	tier, ok := plans.ParseTier(profile.Plan)
	if !ok && profile.Plan != "" {
		log.Printf("WARN: profile %s has unknown plan %q, treating as basic", profile.ID.String(), profile.Plan)
	}
	return &Session{
		Account: profile,
		Plan:    tier,
		IsAdmin: profile.Role == "admin",
	}
}
