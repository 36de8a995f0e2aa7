package model

import "time"

// SiteConfig : configuration clé/valeur du site (textes d'accueil, bannières...).
// Le dashboard "personnaliser l'accueil" lit et écrit ces lignes.
type SiteConfig struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
