package services

import (
	"context"
	"fmt"

	"pettouch/internal/plans"
	"pettouch/internal/repositories"

	"github.com/google/uuid"
)

// PlanService handles the plan catalog and plan changes
type PlanService interface {
	Available() map[plans.Tier]plans.Info
	// ChangePlan persists the new tier and returns a freshly resolved
	// session so the caller immediately observes the change.
	ChangePlan(ctx context.Context, userID uuid.UUID, newPlan string) (*Session, error)
}

type planService struct {
	profileRepo repositories.ProfileRepository
	sessionSvc  SessionService
}

func NewPlanService(profileRepo repositories.ProfileRepository, sessionSvc SessionService) PlanService {
	return &planService{
		profileRepo: profileRepo,
		sessionSvc:  sessionSvc,
	}
}

func (s *planService) Available() map[plans.Tier]plans.Info {
	return plans.Catalog()
}

func (s *planService) ChangePlan(ctx context.Context, userID uuid.UUID, newPlan string) (*Session, error) {
	tier, ok := plans.ParseTier(newPlan)
	if !ok {
		return nil, fmt.Errorf("invalid plan: %s", newPlan)
	}

	if err := s.profileRepo.UpdatePlan(ctx, userID, string(tier)); err != nil {
		return nil, err
	}

	// Read after write: refresh drops the cached profile before resolving
	return s.sessionSvc.Refresh(ctx, userID)
}
