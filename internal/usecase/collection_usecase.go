package usecase

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"boutique/internal/domain/model"
	repo "boutique/internal/repository"
)

type CollectionUsecase struct {
	collectionRepo repo.CollectionRepository
}

func NewCollectionUsecase(collectionRepo repo.CollectionRepository) *CollectionUsecase {
	return &CollectionUsecase{collectionRepo: collectionRepo}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func (u *CollectionUsecase) List(ctx context.Context) ([]model.Collection, error) {
	items, err := u.collectionRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CollectionUsecase) GetBySlug(ctx context.Context, slug string) (model.Collection, error) {
	if strings.TrimSpace(slug) == "" {
		return model.Collection{}, NewHTTPError(http.StatusBadRequest, "slug invalide")
	}

	c, err := u.collectionRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return model.Collection{}, NewHTTPError(http.StatusNotFound, "collection introuvable")
	}
	if err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

type SaveCollectionInput struct {
	Name        string
	Slug        string
	Description string
	Image       string
}

func (in SaveCollectionInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 255 {
		return NewHTTPError(http.StatusBadRequest, "nom invalide")
	}
	if !slugPattern.MatchString(in.Slug) {
		return NewHTTPError(http.StatusBadRequest, "slug invalide")
	}
	return nil
}

func (u *CollectionUsecase) Create(ctx context.Context, in SaveCollectionInput) (model.Collection, error) {
	if err := in.validate(); err != nil {
		return model.Collection{}, err
	}

	//unicité du slug
	_, err := u.collectionRepo.FindBySlug(ctx, in.Slug)
	if err == nil {
		return model.Collection{}, NewHTTPError(http.StatusConflict, "slug déjà utilisé")
	}
	if err != repo.ErrNotFound {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.collectionRepo.Create(ctx, model.Collection{
		Name:        strings.TrimSpace(in.Name),
		Slug:        in.Slug,
		Description: in.Description,
		Image:       in.Image,
	})
	if err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

func (u *CollectionUsecase) Update(ctx context.Context, id int64, in SaveCollectionInput) (model.Collection, error) {
	if id <= 0 {
		return model.Collection{}, NewHTTPError(http.StatusBadRequest, "id invalide")
	}
	if err := in.validate(); err != nil {
		return model.Collection{}, err
	}

	existing, err := u.collectionRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Collection{}, NewHTTPError(http.StatusNotFound, "collection introuvable")
	}
	if err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Slug != existing.Slug {
		if _, err := u.collectionRepo.FindBySlug(ctx, in.Slug); err == nil {
			return model.Collection{}, NewHTTPError(http.StatusConflict, "slug déjà utilisé")
		} else if err != repo.ErrNotFound {
			return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Slug = in.Slug
	existing.Description = in.Description
	existing.Image = in.Image

	if err := u.collectionRepo.Update(ctx, existing); err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return existing, nil
}

func (u *CollectionUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id invalide")
	}

	err := u.collectionRepo.SoftDelete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "collection introuvable")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
