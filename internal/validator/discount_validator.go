package validator

import (
	"time"

	"boutique/internal/domain/model"
)

// État d'affichage d'un code promo (badges du dashboard).
type DiscountState string

const (
	DiscountStateActive     DiscountState = "active"
	DiscountStateExpired    DiscountState = "expired"
	DiscountStateNotStarted DiscountState = "not-started"
	DiscountStateInactive   DiscountState = "inactive"
)

// Classify est indicatif : l'acceptation réelle d'un code au checkout
// repasse par Usable côté serveur au moment de la création de la
// commande, jamais par un état mis en cache côté client.
func Classify(d model.Discount, now time.Time) DiscountState {
	if d.ExpiresAt != nil && !d.ExpiresAt.After(now) {
		return DiscountStateExpired
	}
	if d.StartsAt != nil && d.StartsAt.After(now) {
		return DiscountStateNotStarted
	}
	if d.IsActive {
		return DiscountStateActive
	}
	return DiscountStateInactive
}

// RemainingUses : utilisations restantes, nil = illimité.
func RemainingUses(d model.Discount) *int64 {
	if d.MaxUses == nil {
		return nil
	}
	left := *d.MaxUses - d.UsedCount
	if left < 0 {
		left = 0
	}
	return &left
}

// Usable : le prédicat qui fait foi.
// actif ET commencé ET non expiré ET utilisations restantes.
func Usable(d model.Discount, now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartsAt != nil && d.StartsAt.After(now) {
		return false
	}
	if d.ExpiresAt != nil && !d.ExpiresAt.After(now) {
		return false
	}
	if d.MaxUses != nil && d.UsedCount >= *d.MaxUses {
		return false
	}
	return true
}

// MeetsMinAmount vérifie l'éligibilité au montant minimum.
func MeetsMinAmount(d model.Discount, subtotal int64) bool {
	if d.MinAmount == nil {
		return true
	}
	return subtotal >= *d.MinAmount
}
