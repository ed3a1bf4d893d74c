package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"pettouch/internal/common"
	"pettouch/internal/models"
	"pettouch/internal/repositories"
	"pettouch/internal/services"

	"github.com/labstack/echo/v4"
)

// PetHandlers handles pet registry HTTP requests
type PetHandlers struct {
	petService services.PetService
	sessionSvc services.SessionService
}

// NewPetHandlers creates a new pet handlers instance
func NewPetHandlers(petService services.PetService, sessionSvc services.SessionService) *PetHandlers {
	return &PetHandlers{
		petService: petService,
		sessionSvc: sessionSvc,
	}
}

func (h *PetHandlers) resolveSession(c echo.Context) (*services.Session, error) {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	session, err := h.sessionSvc.Resolve(ctx, userID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve session")
	}
	return session, nil
}

// imageFromForm pulls an optional image file out of a multipart request.
// A missing file is not an error.
func imageFromForm(c echo.Context) (*services.ImageUpload, multipart.File, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil, nil
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded image")
	}
	return &services.ImageUpload{
		Filename: fileHeader.Filename,
		Reader:   src,
		Size:     fileHeader.Size,
	}, src, nil
}

// ListPets handles GET /pets
func (h *PetHandlers) ListPets(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := h.resolveSession(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	pets, err := h.petService.List(ctx, session, limit, offset)
	if err != nil {
		log.Printf("Failed to list pets for %s: %v", session.Account.ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list pets")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"pets":   pets,
		"limit":  limit,
		"offset": offset,
	})
}

// GetPet handles GET /pets/:id
func (h *PetHandlers) GetPet(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := h.resolveSession(c)
	if err != nil {
		return err
	}

	petID, err := common.ValidateUUID(c.Param("id"), "pet id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pet, err := h.petService.GetOwned(ctx, session, petID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPetNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Pet not found")
		case errors.Is(err, services.ErrNotPetOwner):
			return echo.NewHTTPError(http.StatusForbidden, "Pet belongs to another account")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch pet")
		}
	}

	return c.JSON(http.StatusOK, pet)
}

// CreatePet handles POST /pets. The body may be JSON or multipart form
// data with an optional image file.
func (h *PetHandlers) CreatePet(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := h.resolveSession(c)
	if err != nil {
		return err
	}

	var pet models.Pet
	image, src, err := imageFromForm(c)
	if err != nil {
		return err
	}
	if src != nil {
		defer src.Close()
		pet.Name = c.FormValue("name")
		pet.Type = c.FormValue("type")
		pet.Age, _ = strconv.Atoi(c.FormValue("age"))
		pet.ChildrenCount, _ = strconv.Atoi(c.FormValue("children_count"))
		pet.Notes = c.FormValue("notes")
	} else if err := c.Bind(&pet); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(pet.Name, "name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidatePetType(pet.Type); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateNonNegativeInt(pet.Age, "age"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateNonNegativeInt(pet.ChildrenCount, "children_count"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.petService.Create(ctx, session, &pet, image)
	if err != nil {
		if errors.Is(err, services.ErrPetLimitReached) {
			return echo.NewHTTPError(http.StatusForbidden, "Pet limit reached for current plan, upgrade to register more pets")
		}
		log.Printf("Failed to create pet for %s: %v", session.Account.ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create pet")
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdatePet handles PUT /pets/:id
func (h *PetHandlers) UpdatePet(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := h.resolveSession(c)
	if err != nil {
		return err
	}

	petID, err := common.ValidateUUID(c.Param("id"), "pet id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var update models.PetUpdate
	image, src, err := imageFromForm(c)
	if err != nil {
		return err
	}
	if src != nil {
		defer src.Close()
		if v := c.FormValue("name"); v != "" {
			update.Name = &v
		}
		if v := c.FormValue("type"); v != "" {
			update.Type = &v
		}
		if v := c.FormValue("age"); v != "" {
			age, _ := strconv.Atoi(v)
			update.Age = &age
		}
		if v := c.FormValue("children_count"); v != "" {
			count, _ := strconv.Atoi(v)
			update.ChildrenCount = &count
		}
		if v := c.FormValue("notes"); v != "" {
			update.Notes = &v
		}
	} else if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if update.Name != nil {
		if err := common.ValidateRequiredString(*update.Name, "name"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if update.Type != nil {
		if err := common.ValidatePetType(*update.Type); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if update.Age != nil {
		if err := common.ValidateNonNegativeInt(*update.Age, "age"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if update.ChildrenCount != nil {
		if err := common.ValidateNonNegativeInt(*update.ChildrenCount, "children_count"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	updated, err := h.petService.Update(ctx, session, petID, &update, image)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrPetNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Pet not found")
		case errors.Is(err, services.ErrNotPetOwner):
			return echo.NewHTTPError(http.StatusForbidden, "Pet belongs to another account")
		default:
			log.Printf("Failed to update pet %s: %v", petID, err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update pet")
		}
	}

	return c.JSON(http.StatusOK, updated)
}

// DeletePet handles DELETE /pets/:id
func (h *PetHandlers) DeletePet(c echo.Context) error {
	ctx := c.Request().Context()

	session, err := h.resolveSession(c)
	if err != nil {
		return err
	}

	petID, err := common.ValidateUUID(c.Param("id"), "pet id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.petService.Delete(ctx, session, petID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPetNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Pet not found")
		case errors.Is(err, services.ErrNotPetOwner):
			return echo.NewHTTPError(http.StatusForbidden, "Pet belongs to another account")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete pet")
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Pet deleted successfully"})
}
