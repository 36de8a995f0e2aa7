package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	//prix en centimes
	Price int64 `gorm:"not null" json:"price"`
	//stock au niveau produit, autoritaire seulement quand l'article n'a pas de variante
	Quantity     int64          `gorm:"not null;default:0" json:"quantity"`
	Image        string         `gorm:"type:varchar(512)" json:"image"`
	CollectionID *int64         `gorm:"index" json:"collection_id,omitempty"`
	IsActive     bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// ProductVariant : une combinaison taille/couleur avec son propre prix et son propre stock.
type ProductVariant struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Size      string    `gorm:"type:varchar(20)" json:"taille"`
	Color     string    `gorm:"type:varchar(50)" json:"couleur"`
	Price     int64     `gorm:"not null" json:"price"`
	Quantity  int64     `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
