package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// ItemUsecase orchestrates the item master operations.
type ItemUsecase struct {
	items repository.ItemRepository
}

// NewItemUsecase builds the usecase.
func NewItemUsecase(items repository.ItemRepository) *ItemUsecase {
	return &ItemUsecase{items: items}
}

func validItemCategory(c string) bool {
	switch c {
	case entity.ItemCategoryRawMaterial, entity.ItemCategorySemiFinished,
		entity.ItemCategoryFinished, entity.ItemCategoryConsumable:
		return true
	}
	return false
}

// Create registers a new item. The item code is the business key; duplicates
// are rejected.
func (u *ItemUsecase) Create(req *dto.CreateItemRequest) (*dto.ItemResponse, error) {
	req.ItemCode = strings.TrimSpace(req.ItemCode)
	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.ItemCode == "" || req.ItemName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validItemCategory(req.ItemCategory) {
		return nil, domain.ErrInvalidInput
	}
	if req.UnitPrice.IsNegative() || req.ScrapUnitPrice.IsNegative() || req.SafetyStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.Item{
		ID:             uuid.New().String(),
		ItemCode:       req.ItemCode,
		ItemName:       req.ItemName,
		Spec:           req.Spec,
		ItemCategory:   req.ItemCategory,
		InventoryType:  req.InventoryType,
		Unit:           req.Unit,
		UnitPrice:      req.UnitPrice,
		ScrapUnitPrice: req.ScrapUnitPrice,
		SafetyStock:    req.SafetyStock,
		Thickness:      req.Thickness,
		Width:          req.Width,
		Height:         req.Height,
		CustomerID:     req.CustomerID,
		SupplierID:     req.SupplierID,
		UseYN:          "Y",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.items.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID loads one item.
func (u *ItemUsecase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := u.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update applies a partial update. Current stock is deliberately untouched
// here; it moves only through inventory transactions.
func (u *ItemUsecase) Update(id string, req *dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := u.items.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.ItemName != nil {
		name := strings.TrimSpace(*req.ItemName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.ItemName = name
	}
	if req.Spec != nil {
		item.Spec = *req.Spec
	}
	if req.ItemCategory != nil {
		if !validItemCategory(*req.ItemCategory) {
			return nil, domain.ErrInvalidInput
		}
		item.ItemCategory = *req.ItemCategory
	}
	if req.InventoryType != nil {
		item.InventoryType = *req.InventoryType
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.UnitPrice = *req.UnitPrice
	}
	if req.ScrapUnitPrice != nil {
		if req.ScrapUnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.ScrapUnitPrice = *req.ScrapUnitPrice
	}
	if req.SafetyStock != nil {
		if req.SafetyStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.SafetyStock = *req.SafetyStock
	}
	if req.Thickness != nil {
		item.Thickness = *req.Thickness
	}
	if req.Width != nil {
		item.Width = *req.Width
	}
	if req.Height != nil {
		item.Height = *req.Height
	}
	if req.CustomerID != nil {
		item.CustomerID = *req.CustomerID
	}
	if req.SupplierID != nil {
		item.SupplierID = *req.SupplierID
	}
	item.UpdatedAt = time.Now()

	if err := u.items.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List returns a filtered page of items.
func (u *ItemUsecase) List(filter repository.ItemFilter, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	items, total, err := u.items.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete soft-deletes the item (use_yn = 'N'). History stays intact.
func (u *ItemUsecase) Delete(id string) error {
	item, err := u.items.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return u.items.SoftDelete(id)
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:             item.ID,
		ItemCode:       item.ItemCode,
		ItemName:       item.ItemName,
		Spec:           item.Spec,
		ItemCategory:   item.ItemCategory,
		InventoryType:  item.InventoryType,
		Unit:           item.Unit,
		UnitPrice:      item.UnitPrice,
		ScrapUnitPrice: item.ScrapUnitPrice,
		CurrentStock:   item.CurrentStock,
		SafetyStock:    item.SafetyStock,
		LowStock:       item.BelowSafetyStock(),
		Thickness:      item.Thickness,
		Width:          item.Width,
		Height:         item.Height,
		CustomerID:     item.CustomerID,
		SupplierID:     item.SupplierID,
		UseYN:          item.UseYN,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}
