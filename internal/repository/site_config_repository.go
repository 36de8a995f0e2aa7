package repository

import (
	"context"

	"boutique/internal/domain/model"
)

// Configuration clé/valeur du site.
type SiteConfigRepository interface {
	ListAll(ctx context.Context) ([]model.SiteConfig, error)
	Get(ctx context.Context, key string) (model.SiteConfig, bool, error)
	//crée ou remplace la valeur
	Upsert(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
