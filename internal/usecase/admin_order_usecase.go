package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"boutique/internal/domain/model"
	"boutique/internal/pricing"
	repo "boutique/internal/repository"
)

// Mutations du dashboard : édition, statut, suppression. Chaque opération
// est journalisée (qui / quoi / avant / après).
type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

func NewAdminOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, auditRepo: auditRepo}
}

// Patch : seuls les champs non nil sont appliqués.
type UpdateOrderInput struct {
	CustomerName       *string
	CustomerEmail      *string
	CustomerPhone      *string
	CustomerStreet     *string
	CustomerPostalCode *string
	CustomerCity       *string
	CustomerCountry    *string
	Status             *string
	Notes              *string
	DiscountType       *string
	DiscountValue      *int64
	//liste de remplacement complète des articles, pas un diff
	Items []PlaceOrderItemInput
}

// UpdateOrder applique un patch du dashboard. Si une liste d'articles est
// fournie, toutes les lignes existantes sont supprimées puis recréées et
// les montants recalculés. L'édition ne réconcilie PAS le stock des
// articles retirés ou modifiés : les corrections passent par l'écran de
// stock du dashboard.
func (u *AdminOrderUsecase) UpdateOrder(ctx context.Context, adminID int64, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "id invalide")
	}
	if in.Status != nil && !model.IsValidOrderStatus(*in.Status) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "statut invalide")
	}
	if in.DiscountType != nil && *in.DiscountType != "" &&
		*in.DiscountType != string(model.DiscountTypePercentage) &&
		*in.DiscountType != string(model.DiscountTypeAmount) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "type de remise invalide")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 || it.UnitPrice < 0 || strings.TrimSpace(it.Name) == "" {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "article invalide")
		}
	}

	var out OrderOutput
	var before model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "commande introuvable")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		before = o

		applyString := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		applyString(&o.CustomerName, in.CustomerName)
		applyString(&o.CustomerEmail, in.CustomerEmail)
		applyString(&o.CustomerPhone, in.CustomerPhone)
		applyString(&o.CustomerStreet, in.CustomerStreet)
		applyString(&o.CustomerPostalCode, in.CustomerPostalCode)
		applyString(&o.CustomerCity, in.CustomerCity)
		applyString(&o.CustomerCountry, in.CustomerCountry)
		applyString(&o.Notes, in.Notes)
		if in.Status != nil {
			o.Status = model.OrderStatus(*in.Status)
		}
		if in.DiscountType != nil {
			o.DiscountType = model.DiscountType(*in.DiscountType)
		}
		if in.DiscountValue != nil {
			o.DiscountValue = *in.DiscountValue
		}

		var items []model.OrderItem

		if in.Items != nil {
			//remplace tout : purge puis recréation de la liste complète
			if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			now := time.Now()
			items = make([]model.OrderItem, 0, len(in.Items))
			for _, it := range in.Items {
				items = append(items, model.OrderItem{
					OrderID:   orderID,
					ProductID: it.ProductID,
					VariantID: it.VariantID,
					Name:      it.Name,
					UnitPrice: it.UnitPrice,
					Quantity:  it.Quantity,
					Size:      it.Size,
					Color:     it.Color,
					Image:     it.Image,
					CreatedAt: now,
				})
			}
			if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else {
			items, err = r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//recalcul des montants qui font foi
		lineItems := make([]pricing.LineItem, 0, len(items))
		for _, it := range items {
			lineItems = append(lineItems, pricing.LineItem{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
		}
		var spec *pricing.DiscountSpec
		if o.DiscountType != "" {
			spec = &pricing.DiscountSpec{Type: o.DiscountType, Value: o.DiscountValue}
		}
		quote := pricing.Compute(lineItems, spec)
		o.SubtotalAmount = quote.Subtotal
		o.DiscountAmount = quote.DiscountAmount
		o.TotalAmount = quote.Total

		if err := r.Orders().Update(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{Order: o, Items: items}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	u.writeAudit(ctx, adminID, model.AuditActionUpdateOrder, orderID, before, out.Order)
	return out, nil
}

// UpdateStatus : transition libre entre statuts connus (le dashboard ne
// contraint pas la progression).
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, adminID int64, orderID int64, status string) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "id invalide")
	}
	if !model.IsValidOrderStatus(status) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "statut invalide")
	}

	var out OrderOutput
	var before model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "commande introuvable")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		before = o

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(status)); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "commande introuvable")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatus(status)
		out = OrderOutput{Order: o, Items: items}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	u.writeAudit(ctx, adminID, model.AuditActionUpdateOrderStatus, orderID, before, out.Order)
	return out, nil
}

// DeleteOrder supprime une commande et restitue le stock de chaque ligne
// (l'inverse exact du décrément de création), sauf si la commande était
// déjà annulée — son stock a déjà été rendu. Restitution et suppression
// tiennent dans la même transaction : un échec au milieu ne laisse ni
// stock ni commande modifiés.
func (u *AdminOrderUsecase) DeleteOrder(ctx context.Context, adminID int64, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id invalide")
	}

	var before model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "commande introuvable")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		before = o

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.Status != model.OrderStatusCancelled {
			for _, it := range items {
				if it.VariantID != nil {
					err = r.Inventory().IncreaseVariantStock(ctx, *it.VariantID, it.Quantity)
				} else {
					err = r.Inventory().IncreaseProductStock(ctx, it.ProductID, it.Quantity)
				}
				if err != nil && err != repo.ErrNotFound {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				//ErrNotFound : produit retiré du catalogue depuis, rien à restituer
			}
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return err
	}

	u.writeAudit(ctx, adminID, model.AuditActionDeleteOrder, orderID, before, model.Order{})
	return nil
}

// Consultation du journal des opérations du dashboard.
func (u *AdminOrderUsecase) ListAuditLogs(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "pagination invalide")
	}

	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

// Journalisation hors transaction : un échec d'audit ne doit pas annuler
// l'opération déjà validée.
func (u *AdminOrderUsecase) writeAudit(ctx context.Context, adminID int64, action model.AuditAction, orderID int64, before model.Order, after model.Order) {
	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)

	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	})
}
