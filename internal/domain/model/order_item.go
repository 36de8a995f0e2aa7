package model

import "time"

// OrderItem : une ligne d'achat. Nom, prix, taille et couleur sont des
// instantanés pris au moment de la commande, jamais relus depuis le catalogue.
type OrderItem struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64  `gorm:"not null;index" json:"orderId"`
	ProductID int64  `gorm:"not null;index" json:"productId"`
	VariantID *int64 `gorm:"index" json:"variantId,omitempty"`
	Name      string `gorm:"type:varchar(255);not null" json:"nom"`
	//prix unitaire en centimes
	UnitPrice int64     `gorm:"not null" json:"prix"`
	Quantity  int64     `gorm:"not null" json:"quantite"`
	Size      string    `gorm:"type:varchar(20)" json:"taille,omitempty"`
	Color     string    `gorm:"type:varchar(50)" json:"couleur,omitempty"`
	Image     string    `gorm:"type:varchar(512)" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
