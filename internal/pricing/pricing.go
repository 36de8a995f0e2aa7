// Package pricing calcule les montants d'une commande : sous-total,
// remise et total. Fonctions pures, tous les montants en centimes.
package pricing

import "boutique/internal/domain/model"

type LineItem struct {
	//prix unitaire en centimes
	UnitPrice int64
	Quantity  int64
}

// DiscountSpec : la remise demandée. Value est un pourcentage (0-100)
// pour PERCENTAGE, des centimes pour AMOUNT.
type DiscountSpec struct {
	Type  model.DiscountType
	Value int64
}

type Quote struct {
	Subtotal       int64
	DiscountAmount int64
	Total          int64
}

// Compute applique les règles de calcul :
//   - sous-total = Σ(prix × quantité)
//   - PERCENTAGE : sous-total × valeur / 100
//   - AMOUNT : min(valeur, sous-total), une remise fixe ne dépasse jamais
//     le sous-total
//   - total = max(0, sous-total − remise)
//
// Les valeurs numériques invalides (négatives) comptent pour 0, jamais
// d'erreur : le front reste réactif.
func Compute(items []LineItem, discount *DiscountSpec) Quote {
	var subtotal int64
	for _, it := range items {
		price := it.UnitPrice
		qty := it.Quantity
		if price < 0 {
			price = 0
		}
		if qty < 0 {
			qty = 0
		}
		subtotal += price * qty
	}

	var discountAmount int64
	if discount != nil {
		value := discount.Value
		if value < 0 {
			value = 0
		}
		switch discount.Type {
		case model.DiscountTypePercentage:
			discountAmount = subtotal * value / 100
		case model.DiscountTypeAmount:
			discountAmount = value
			if discountAmount > subtotal {
				discountAmount = subtotal
			}
		}
	}

	//plancher défensif : couvre un pourcentage > 100 passé au travers
	total := subtotal - discountAmount
	if total < 0 {
		total = 0
	}

	return Quote{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
	}
}
