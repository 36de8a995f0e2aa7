package usecase

import (
	"context"
	"net/http"
	"strings"

	repo "boutique/internal/repository"
)

// Personnalisation de l'accueil : lignes clé/valeur lues par la vitrine,
// écrites en bloc par le dashboard.
type SiteConfigUsecase struct {
	configRepo repo.SiteConfigRepository
}

func NewSiteConfigUsecase(configRepo repo.SiteConfigRepository) *SiteConfigUsecase {
	return &SiteConfigUsecase{configRepo: configRepo}
}

func (u *SiteConfigUsecase) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := u.configRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// UpsertAll enregistre toutes les paires soumises par l'éditeur d'accueil.
func (u *SiteConfigUsecase) UpsertAll(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return NewHTTPError(http.StatusBadRequest, "aucune valeur")
	}
	for key := range values {
		k := strings.TrimSpace(key)
		if k == "" || len(k) > 100 {
			return NewHTTPError(http.StatusBadRequest, "clé invalide")
		}
	}

	for key, value := range values {
		if err := u.configRepo.Upsert(ctx, strings.TrimSpace(key), value); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}

func (u *SiteConfigUsecase) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return NewHTTPError(http.StatusBadRequest, "clé invalide")
	}
	if err := u.configRepo.Delete(ctx, strings.TrimSpace(key)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
