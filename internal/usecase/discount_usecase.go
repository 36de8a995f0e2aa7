package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"boutique/internal/domain/model"
	repo "boutique/internal/repository"
	"boutique/internal/validator"
)

type DiscountUsecase struct {
	discountRepo repo.DiscountRepository
}

func NewDiscountUsecase(discountRepo repo.DiscountRepository) *DiscountUsecase {
	return &DiscountUsecase{discountRepo: discountRepo}
}

// Un code annoté de son état d'affichage (badge du dashboard).
// L'état est indicatif : le checkout revérifie le prédicat côté serveur.
type DiscountOutput struct {
	model.Discount
	State         validator.DiscountState `json:"state"`
	RemainingUses *int64                  `json:"remainingUses,omitempty"`
}

type DiscountListOutput struct {
	Items []DiscountOutput `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func toDiscountOutput(d model.Discount, now time.Time) DiscountOutput {
	return DiscountOutput{
		Discount:      d,
		State:         validator.Classify(d, now),
		RemainingUses: validator.RemainingUses(d),
	}
}

func (u *DiscountUsecase) List(ctx context.Context, page int, limit int) (DiscountListOutput, error) {
	if page < 1 {
		return DiscountListOutput{}, NewHTTPError(http.StatusBadRequest, "page invalide")
	}
	if limit < 1 || limit > 100 {
		return DiscountListOutput{}, NewHTTPError(http.StatusBadRequest, "limite invalide")
	}

	items, total, err := u.discountRepo.List(ctx, page, limit)
	if err != nil {
		return DiscountListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	outs := make([]DiscountOutput, 0, len(items))
	for _, d := range items {
		outs = append(outs, toDiscountOutput(d, now))
	}

	return DiscountListOutput{Items: outs, Total: total, Page: page, Limit: limit}, nil
}

type SaveDiscountInput struct {
	Code        string
	Description string
	Type        string
	Value       int64
	MinAmount   *int64
	MaxUses     *int64
	IsActive    bool
	StartsAt    *time.Time
	ExpiresAt   *time.Time
}

func (in SaveDiscountInput) validate() error {
	code := strings.TrimSpace(in.Code)
	if code == "" || len(code) > 50 {
		return NewHTTPError(http.StatusBadRequest, "code invalide")
	}
	if in.Type != string(model.DiscountTypePercentage) && in.Type != string(model.DiscountTypeAmount) {
		return NewHTTPError(http.StatusBadRequest, "type de remise invalide")
	}
	if in.Value < 0 {
		return NewHTTPError(http.StatusBadRequest, "valeur invalide")
	}
	//un pourcentage ne dépasse jamais 100
	if in.Type == string(model.DiscountTypePercentage) && in.Value > 100 {
		return NewHTTPError(http.StatusBadRequest, "pourcentage invalide")
	}
	if in.MinAmount != nil && *in.MinAmount < 0 {
		return NewHTTPError(http.StatusBadRequest, "montant minimum invalide")
	}
	if in.MaxUses != nil && *in.MaxUses < 1 {
		return NewHTTPError(http.StatusBadRequest, "nombre d'utilisations invalide")
	}
	if in.StartsAt != nil && in.ExpiresAt != nil && !in.ExpiresAt.After(*in.StartsAt) {
		return NewHTTPError(http.StatusBadRequest, "fenêtre de validité invalide")
	}
	return nil
}

func (u *DiscountUsecase) Create(ctx context.Context, in SaveDiscountInput) (DiscountOutput, error) {
	if err := in.validate(); err != nil {
		return DiscountOutput{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(in.Code))

	//unicité du code
	if _, found, err := u.discountRepo.FindByCode(ctx, code); err != nil {
		return DiscountOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	} else if found {
		return DiscountOutput{}, NewHTTPError(http.StatusConflict, "code déjà utilisé")
	}

	d, err := u.discountRepo.Create(ctx, model.Discount{
		Code:        code,
		Description: in.Description,
		Type:        model.DiscountType(in.Type),
		Value:       in.Value,
		MinAmount:   in.MinAmount,
		MaxUses:     in.MaxUses,
		IsActive:    in.IsActive,
		StartsAt:    in.StartsAt,
		ExpiresAt:   in.ExpiresAt,
	})
	if err != nil {
		return DiscountOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toDiscountOutput(d, time.Now()), nil
}

func (u *DiscountUsecase) Update(ctx context.Context, id int64, in SaveDiscountInput) (DiscountOutput, error) {
	if id <= 0 {
		return DiscountOutput{}, NewHTTPError(http.StatusBadRequest, "id invalide")
	}
	if err := in.validate(); err != nil {
		return DiscountOutput{}, err
	}

	existing, err := u.discountRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return DiscountOutput{}, NewHTTPError(http.StatusNotFound, "code introuvable")
	}
	if err != nil {
		return DiscountOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code != existing.Code {
		if _, found, err := u.discountRepo.FindByCode(ctx, code); err != nil {
			return DiscountOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		} else if found {
			return DiscountOutput{}, NewHTTPError(http.StatusConflict, "code déjà utilisé")
		}
	}

	existing.Code = code
	existing.Description = in.Description
	existing.Type = model.DiscountType(in.Type)
	existing.Value = in.Value
	existing.MinAmount = in.MinAmount
	existing.MaxUses = in.MaxUses
	existing.IsActive = in.IsActive
	existing.StartsAt = in.StartsAt
	existing.ExpiresAt = in.ExpiresAt

	if err := u.discountRepo.Update(ctx, existing); err != nil {
		return DiscountOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toDiscountOutput(existing, time.Now()), nil
}

func (u *DiscountUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id invalide")
	}

	err := u.discountRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "code introuvable")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Aperçu de remise pour le panier côté vitrine.
type CheckCodeOutput struct {
	Code           string             `json:"code"`
	Type           model.DiscountType `json:"type"`
	Value          int64              `json:"value"`
	DiscountAmount int64              `json:"discountAmount"`
}

// CheckCode est purement indicatif : l'application réelle du code repasse
// par la création de commande, qui revérifie tout et consomme l'utilisation.
func (u *DiscountUsecase) CheckCode(ctx context.Context, code string, subtotal int64) (CheckCodeOutput, error) {
	if strings.TrimSpace(code) == "" {
		return CheckCodeOutput{}, NewHTTPError(http.StatusBadRequest, "code requis")
	}
	if subtotal < 0 {
		return CheckCodeOutput{}, NewHTTPError(http.StatusBadRequest, "montant invalide")
	}

	d, found, err := u.discountRepo.FindByCode(ctx, code)
	if err != nil {
		return CheckCodeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !found {
		return CheckCodeOutput{}, NewHTTPError(http.StatusNotFound, "code promo inconnu")
	}
	if !validator.Usable(d, time.Now()) {
		return CheckCodeOutput{}, NewHTTPError(http.StatusBadRequest, "code promo non utilisable")
	}
	if !validator.MeetsMinAmount(d, subtotal) {
		return CheckCodeOutput{}, NewHTTPError(http.StatusBadRequest, "montant minimum non atteint pour ce code")
	}

	var amount int64
	switch d.Type {
	case model.DiscountTypePercentage:
		amount = subtotal * d.Value / 100
	case model.DiscountTypeAmount:
		amount = d.Value
		if amount > subtotal {
			amount = subtotal
		}
	}

	return CheckCodeOutput{
		Code:           d.Code,
		Type:           d.Type,
		Value:          d.Value,
		DiscountAmount: amount,
	}, nil
}
