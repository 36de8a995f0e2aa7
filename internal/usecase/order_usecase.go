package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"boutique/internal/domain/model"
	"boutique/internal/pricing"
	repo "boutique/internal/repository"
	"boutique/internal/validator"
)

// Conflit de numéro de commande : la réponse embarque la commande déjà
// existante pour qu'un client puisse réconcilier un renvoi idempotent.
type ConflictError struct {
	Message  string
	Existing OrderOutput
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%d: %s", http.StatusConflict, e.Message)
}

func AsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}

// OrderUsecase coordonne la création et la lecture des commandes.
// Toute mutation commande+stock passe par une seule transaction.
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type PlaceOrderItemInput struct {
	ProductID int64  `json:"productId"`
	VariantID *int64 `json:"variantId"`
	Name      string `json:"nom"`
	UnitPrice int64  `json:"prix"`
	Quantity  int64  `json:"quantite"`
	Size      string `json:"taille"`
	Color     string `json:"couleur"`
	Image     string `json:"image"`
}

type PlaceOrderInput struct {
	OrderNumber        string
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	CustomerStreet     string
	CustomerPostalCode string
	CustomerCity       string
	CustomerCountry    string
	//remise explicite (dashboard) ou code promo (checkout), pas les deux
	DiscountType  string
	DiscountValue int64
	DiscountCode  string
	//montant annoncé par le client ; les montants qui font foi sont
	//recalculés côté serveur
	TotalAmount int64
	Notes       string
	Items       []PlaceOrderItemInput
}

type OrderOutput struct {
	model.Order
	Items []model.OrderItem `json:"items"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type OrderListOutput struct {
	Orders     []OrderOutput `json:"orders"`
	Pagination Pagination    `json:"pagination"`
}

// PlaceOrder crée une commande : validation, remise, décrément de stock
// et insertion, le tout dans une transaction. Le décrément est une
// écriture conditionnelle (quantity >= demandé) : 0 ligne affectée vaut
// stock insuffisant et fait échouer toute la transaction, aucune écriture
// partielle n'est donc observable.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	orderNumber := strings.TrimSpace(in.OrderNumber)
	if orderNumber == "" || len(orderNumber) > 64 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "numéro de commande requis")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "articles requis")
	}
	if in.TotalAmount <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "montant total invalide")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "article invalide")
		}
		if it.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "quantité invalide")
		}
		if it.UnitPrice < 0 || strings.TrimSpace(it.Name) == "" {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "article invalide")
		}
	}
	if in.DiscountType != "" &&
		in.DiscountType != string(model.DiscountTypePercentage) &&
		in.DiscountType != string(model.DiscountTypeAmount) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "type de remise invalide")
	}

	lineItems := make([]pricing.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		lineItems = append(lineItems, pricing.LineItem{UnitPrice: it.UnitPrice, Quantity: it.Quantity})
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//même numéro => renvoyer la commande existante en conflit,
		//jamais de deuxième ligne ni de double décrément
		existing, found, err := r.Orders().FindByOrderNumber(ctx, orderNumber)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			return &ConflictError{
				Message:  "numéro de commande déjà utilisé",
				Existing: OrderOutput{Order: existing, Items: items},
			}
		}

		//résolution de la remise : code promo revérifié côté serveur
		//au moment T de la création, l'affichage client ne fait pas foi
		discountSpec, discountCode, err := u.resolveDiscount(ctx, r, in, pricing.Compute(lineItems, nil).Subtotal)
		if err != nil {
			return err
		}

		quote := pricing.Compute(lineItems, discountSpec)

		//décrément conditionnel par article : variante si précisée,
		//sinon compteur produit
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		now := time.Now()
		for _, it := range in.Items {
			var ok bool
			if it.VariantID != nil {
				ok, err = r.Inventory().DecreaseVariantStockIfEnough(ctx, *it.VariantID, it.Quantity)
			} else {
				ok, err = r.Inventory().DecreaseProductStockIfEnough(ctx, it.ProductID, it.Quantity)
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "Stock insuffisant pour "+itemLabel(it))
			}

			orderItems = append(orderItems, model.OrderItem{
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

		var discountType model.DiscountType
		var discountValue int64
		if discountSpec != nil {
			discountType = discountSpec.Type
			discountValue = discountSpec.Value
		}

		order := model.Order{
			OrderNumber:        orderNumber,
			CustomerName:       in.CustomerName,
			CustomerEmail:      in.CustomerEmail,
			CustomerPhone:      in.CustomerPhone,
			CustomerStreet:     in.CustomerStreet,
			CustomerPostalCode: in.CustomerPostalCode,
			CustomerCity:       in.CustomerCity,
			CustomerCountry:    in.CustomerCountry,
			Status:             model.OrderStatusPending,
			SubtotalAmount:     quote.Subtotal,
			DiscountType:       discountType,
			DiscountValue:      discountValue,
			DiscountAmount:     quote.DiscountAmount,
			TotalAmount:        quote.Total,
			DiscountCode:       discountCode,
			Notes:              in.Notes,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			//course sur l'index unique : deux créations simultanées avec
			//le même numéro, on renvoie la gagnante en conflit
			ex2, found2, err2 := r.Orders().FindByOrderNumber(ctx, orderNumber)
			if err2 == nil && found2 {
				items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
				if err3 != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				return &ConflictError{
					Message:  "numéro de commande déjà utilisé",
					Existing: OrderOutput{Order: ex2, Items: items2},
				}
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		for i := range orderItems {
			orderItems[i].OrderID = orderID
		}
		out = OrderOutput{Order: order, Items: orderItems}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// resolveDiscount choisit la remise applicable et consomme une utilisation
// du code le cas échéant. Appelé dans la transaction de création.
func (u *OrderUsecase) resolveDiscount(ctx context.Context, r repo.TxRepos, in PlaceOrderInput, subtotal int64) (*pricing.DiscountSpec, string, error) {
	if in.DiscountCode == "" {
		if in.DiscountType == "" {
			return nil, "", nil
		}
		return &pricing.DiscountSpec{
			Type:  model.DiscountType(in.DiscountType),
			Value: in.DiscountValue,
		}, "", nil
	}

	d, found, err := r.Discounts().FindByCode(ctx, in.DiscountCode)
	if err != nil {
		return nil, "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !found {
		return nil, "", NewHTTPError(http.StatusBadRequest, "code promo inconnu")
	}
	if !validator.Usable(d, time.Now()) {
		return nil, "", NewHTTPError(http.StatusBadRequest, "code promo non utilisable")
	}
	if !validator.MeetsMinAmount(d, subtotal) {
		return nil, "", NewHTTPError(http.StatusBadRequest, "montant minimum non atteint pour ce code")
	}

	//used_count < max_uses revérifié par l'UPDATE conditionnel : deux
	//checkouts simultanés ne consomment jamais la même dernière utilisation
	ok, err := r.Discounts().IncrementUsageIfAvailable(ctx, d.ID)
	if err != nil {
		return nil, "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		return nil, "", NewHTTPError(http.StatusBadRequest, "code promo épuisé")
	}

	return &pricing.DiscountSpec{Type: d.Type, Value: d.Value}, d.Code, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "id invalide")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "commande introuvable")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{Order: o, Items: items}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Lecture par numéro (suivi de commande côté vitrine).
func (u *OrderUsecase) GetOrderByNumber(ctx context.Context, orderNumber string) (OrderOutput, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "numéro de commande requis")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, found, err := r.Orders().FindByOrderNumber(ctx, orderNumber)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !found {
			return NewHTTPError(http.StatusNotFound, "commande introuvable")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderOutput{Order: o, Items: items}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context, f repo.OrderListFilter) (OrderListOutput, error) {
	if f.Page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "page invalide")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "limite invalide")
	}
	if f.Status != "" && !model.IsValidOrderStatus(f.Status) {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "statut invalide")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().List(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, OrderOutput{Order: o, Items: items})
		}

		totalPages := total / int64(f.Limit)
		if total%int64(f.Limit) != 0 {
			totalPages++
		}

		out = OrderListOutput{
			Orders: outs,
			Pagination: Pagination{
				Page:       f.Page,
				Limit:      f.Limit,
				Total:      total,
				TotalPages: totalPages,
			},
		}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

// libellé d'article pour les messages de stock
func itemLabel(it PlaceOrderItemInput) string {
	label := it.Name
	if it.Size != "" {
		label += " (taille " + it.Size
		if it.Color != "" {
			label += ", couleur " + it.Color
		}
		label += ")"
	} else if it.Color != "" {
		label += " (couleur " + it.Color + ")"
	}
	return label
}
