package model

import "time"

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeAmount     DiscountType = "AMOUNT"
)

// Discount : un code promotionnel.
// Value est un pourcentage (0-100) pour PERCENTAGE, des centimes pour AMOUNT.
type Discount struct {
	ID          int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string       `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Description string       `gorm:"type:text" json:"description"`
	Type        DiscountType `gorm:"type:varchar(20);not null" json:"type"`
	Value       int64        `gorm:"not null" json:"value"`
	//montant minimum de commande en centimes
	MinAmount *int64 `json:"minAmount,omitempty"`
	MaxUses   *int64 `json:"maxUses,omitempty"`
	//n'augmente jamais que via une commande aboutie
	UsedCount int64      `gorm:"not null;default:0" json:"usedCount"`
	IsActive  bool       `gorm:"not null;default:true" json:"isActive"`
	StartsAt  *time.Time `json:"startsAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
