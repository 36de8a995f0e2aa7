package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"boutique/internal/domain/model"
	repo "boutique/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

// GET /products
type ListProductsInput struct {
	Page         int
	Limit        int
	Q            string
	CollectionID *int64
	MinPrice     *int64
	MaxPrice     *int64
	Sort         string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "page invalide")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "limite invalide")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "recherche trop longue")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price doit être >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price doit être >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price doit être <= max_price")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "tri invalide")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:         in.Page,
		Limit:        in.Limit,
		Q:            strings.TrimSpace(in.Q),
		CollectionID: in.CollectionID,
		MinPrice:     in.MinPrice,
		MaxPrice:     in.MaxPrice,
		Sort:         in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// Fiche produit avec variantes (prix et stock par taille/couleur).
func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "id produit invalide")
	}

	p, err := u.productRepo.FindByIDWithVariants(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "produit introuvable")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "produit introuvable")
	}

	return p, nil
}

type SaveProductInput struct {
	Name         string
	Description  string
	Price        int64
	Quantity     int64
	Image        string
	CollectionID *int64
	IsActive     bool
}

func (in SaveProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 255 {
		return NewHTTPError(http.StatusBadRequest, "nom invalide")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "prix invalide")
	}
	if in.Quantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "quantité invalide")
	}
	return nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in SaveProductInput) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		Quantity:     in.Quantity,
		Image:        in.Image,
		CollectionID: in.CollectionID,
		IsActive:     in.IsActive,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in SaveProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "id produit invalide")
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		ID:           productID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		Quantity:     in.Quantity,
		Image:        in.Image,
		CollectionID: in.CollectionID,
		IsActive:     in.IsActive,
	}
	err := u.productRepo.Update(ctx, p)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "produit introuvable")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id produit invalide")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "produit introuvable")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type SaveVariantInput struct {
	Size     string
	Color    string
	Price    int64
	Quantity int64
}

func (u *ProductUsecase) CreateVariant(ctx context.Context, productID int64, in SaveVariantInput) (model.ProductVariant, error) {
	if productID <= 0 {
		return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "id produit invalide")
	}
	if in.Price < 0 || in.Quantity < 0 {
		return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "variante invalide")
	}

	//le produit doit exister
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return model.ProductVariant{}, NewHTTPError(http.StatusNotFound, "produit introuvable")
		}
		return model.ProductVariant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	v, err := u.productRepo.CreateVariant(ctx, model.ProductVariant{
		ProductID: productID,
		Size:      in.Size,
		Color:     in.Color,
		Price:     in.Price,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return model.ProductVariant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return v, nil
}

func (u *ProductUsecase) UpdateVariant(ctx context.Context, variantID int64, in SaveVariantInput) (model.ProductVariant, error) {
	if variantID <= 0 {
		return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "id variante invalide")
	}
	if in.Price < 0 || in.Quantity < 0 {
		return model.ProductVariant{}, NewHTTPError(http.StatusBadRequest, "variante invalide")
	}

	existing, err := u.productRepo.FindVariantByID(ctx, variantID)
	if err == repo.ErrNotFound {
		return model.ProductVariant{}, NewHTTPError(http.StatusNotFound, "variante introuvable")
	}
	if err != nil {
		return model.ProductVariant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	existing.Size = in.Size
	existing.Color = in.Color
	existing.Price = in.Price
	existing.Quantity = in.Quantity
	if err := u.productRepo.UpdateVariant(ctx, existing); err != nil {
		return model.ProductVariant{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return existing, nil
}

func (u *ProductUsecase) DeleteVariant(ctx context.Context, variantID int64) error {
	if variantID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id variante invalide")
	}

	err := u.productRepo.DeleteVariant(ctx, variantID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "variante introuvable")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SetStock pose la valeur courante d'un compteur de stock (produit ou
// variante), trace l'écart dans l'historique et journalise l'opération.
func (u *ProductUsecase) SetStock(ctx context.Context, adminID int64, productID int64, variantID *int64, newStock int64, reason string) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "id produit invalide")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock invalide")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "motif requis")
	}

	var oldStock int64

	if variantID != nil {
		v, err := u.productRepo.FindVariantByID(ctx, *variantID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "variante introuvable")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		oldStock = v.Quantity
		if err := u.inventoryRepo.SetVariantStock(ctx, *variantID, newStock); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	} else {
		p, err := u.productRepo.FindByID(ctx, productID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "produit introuvable")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		oldStock = p.Quantity
		if err := u.inventoryRepo.SetProductStock(ctx, productID, newStock); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	_ = u.inventoryRepo.CreateAdjustment(ctx, model.InventoryAdjustment{
		ProductID:   productID,
		VariantID:   variantID,
		AdminUserID: adminID,
		Delta:       newStock - oldStock,
		Reason:      strings.TrimSpace(reason),
	})

	beforeJSON, _ := json.Marshal(map[string]int64{"quantity": oldStock})
	afterJSON, _ := json.Marshal(map[string]int64{"quantity": newStock})
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	})

	return nil
}
