package services

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"pettouch/internal/caching"
	"pettouch/internal/common"
	"pettouch/internal/models"
	"pettouch/internal/plans"
	"pettouch/internal/repositories"

	"github.com/google/uuid"
)

const petCacheTTL = 15 * time.Minute

var (
	// ErrPetLimitReached means the account's plan does not allow another
	// pet. It is raised before any insert is attempted.
	ErrPetLimitReached = errors.New("pet limit reached for current plan")
	// ErrNotPetOwner means the pet exists but belongs to another account.
	ErrNotPetOwner = errors.New("pet belongs to another account")
)

// ImageUpload carries an optional pet photo from a multipart request.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
	Size     int64
}

type PetService interface {
	List(ctx context.Context, session *Session, limit, offset int) ([]*models.Pet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error)
	GetOwned(ctx context.Context, session *Session, id uuid.UUID) (*models.Pet, error)
	Create(ctx context.Context, session *Session, pet *models.Pet, image *ImageUpload) (*models.Pet, error)
	Update(ctx context.Context, session *Session, id uuid.UUID, update *models.PetUpdate, image *ImageUpload) (*models.Pet, error)
	Delete(ctx context.Context, session *Session, id uuid.UUID) error
}

type petService struct {
	petRepo      repositories.PetRepository
	minioService MinioService
	cacheService caching.CacheService
}

func NewPetService(petRepo repositories.PetRepository, minioService MinioService, cacheService caching.CacheService) PetService {
	return &petService{
		petRepo:      petRepo,
		minioService: minioService,
		cacheService: cacheService,
	}
}

// List returns the caller's pets, or every pet in the system when the
// session is an admin one. Both orderings are newest first.
func (s *petService) List(ctx context.Context, session *Session, limit, offset int) ([]*models.Pet, error) {
	if session.IsAdmin {
		return s.petRepo.ListAll(ctx, limit, offset)
	}
	return s.petRepo.ListByOwner(ctx, session.Account.ID, limit, offset)
}

func (s *petService) GetByID(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	if cached, err := s.cacheService.GetPet(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for pet %s: %v", id.String(), err)
	}

	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetPet(ctx, pet, petCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache pet %s: %v", id.String(), cacheErr)
	}

	return pet, nil
}

// GetOwned is the edit-path lookup: it additionally verifies ownership.
// Admins may open any pet.
func (s *petService) GetOwned(ctx context.Context, session *Session, id uuid.UUID) (*models.Pet, error) {
	pet, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin && pet.OwnerID != session.Account.ID {
		return nil, ErrNotPetOwner
	}
	return pet, nil
}

func (s *petService) Create(ctx context.Context, session *Session, pet *models.Pet, image *ImageUpload) (*models.Pet, error) {
	if err := common.ValidateRequiredString(pet.Name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidatePetType(pet.Type); err != nil {
		return nil, err
	}
	if err := common.ValidateNonNegativeInt(pet.Age, "age"); err != nil {
		return nil, err
	}
	if err := common.ValidateNonNegativeInt(pet.ChildrenCount, "children_count"); err != nil {
		return nil, err
	}

	// Entitlement check happens before any storage call
	count, err := s.petRepo.CountByOwner(ctx, session.Account.ID)
	if err != nil {
		return nil, err
	}
	if !plans.CanAddMorePets(session.Plan, count) {
		return nil, ErrPetLimitReached
	}

	pet.ID = uuid.New()
	pet.OwnerID = session.Account.ID
	pet.Plan = string(session.Plan)
	pet.ScanCount = 0
	pet.LastScannedAt = nil

	// An image URL only ever comes out of attachImage; a caller-supplied
	// one would sidestep the custom-photo entitlement.
	pet.ImageURL = nil
	s.attachImage(ctx, session, pet, image)

	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.SetPet(ctx, pet, petCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache pet %s: %v", pet.ID.String(), cacheErr)
	}

	return pet, nil
}

// Update merges the partial edit into the stored record: nil fields keep
// their previous values.
func (s *petService) Update(ctx context.Context, session *Session, id uuid.UUID, update *models.PetUpdate, image *ImageUpload) (*models.Pet, error) {
	pet, err := s.GetOwned(ctx, session, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if err := common.ValidateRequiredString(*update.Name, "name"); err != nil {
			return nil, err
		}
		pet.Name = *update.Name
	}
	if update.Type != nil {
		if err := common.ValidatePetType(*update.Type); err != nil {
			return nil, err
		}
		pet.Type = *update.Type
	}
	if update.Age != nil {
		if err := common.ValidateNonNegativeInt(*update.Age, "age"); err != nil {
			return nil, err
		}
		pet.Age = *update.Age
	}
	if update.ChildrenCount != nil {
		if err := common.ValidateNonNegativeInt(*update.ChildrenCount, "children_count"); err != nil {
			return nil, err
		}
		pet.ChildrenCount = *update.ChildrenCount
	}
	if update.Notes != nil {
		pet.Notes = *update.Notes
	}
	if update.ImageURL != nil {
		// Same entitlement as the upload path; without it the field is
		// ignored, not rejected
		if plans.CanUseFeature(session.Plan, plans.FeatureCustomPhoto) {
			pet.ImageURL = update.ImageURL
		} else {
			log.Printf("Ignoring image_url for pet %s: plan %s has no custom photo entitlement", pet.ID.String(), session.Plan)
		}
	}

	s.attachImage(ctx, session, pet, image)

	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, err
	}

	if cacheErr := s.cacheService.DeletePet(ctx, id); cacheErr != nil {
		log.Printf("Failed to invalidate cache for pet %s: %v", id.String(), cacheErr)
	}

	return pet, nil
}

func (s *petService) Delete(ctx context.Context, session *Session, id uuid.UUID) error {
	if _, err := s.GetOwned(ctx, session, id); err != nil {
		return err
	}

	if err := s.petRepo.Delete(ctx, id); err != nil {
		return err
	}

	if cacheErr := s.cacheService.DeletePet(ctx, id); cacheErr != nil {
		log.Printf("Failed to invalidate cache for pet %s: %v", id.String(), cacheErr)
	}

	return nil
}

// attachImage uploads a supplied photo when the plan allows custom photos.
// Without the entitlement the file is ignored, not rejected.
func (s *petService) attachImage(ctx context.Context, session *Session, pet *models.Pet, image *ImageUpload) {
	if image == nil {
		return
	}
	if !plans.CanUseFeature(session.Plan, plans.FeatureCustomPhoto) {
		log.Printf("Ignoring pet image for %s: plan %s has no custom photo entitlement", pet.ID.String(), session.Plan)
		return
	}

	url, err := s.minioService.UploadPetImage(ctx, pet.OwnerID, pet.ID, image.Filename, image.Reader, image.Size)
	if err != nil {
		log.Printf("Failed to upload image for pet %s: %v", pet.ID.String(), err)
		return
	}
	pet.ImageURL = &url
}
