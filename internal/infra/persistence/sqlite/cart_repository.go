package sqlite

import (
	"context"

	"shoplocal/internal/domain/entity"
	"shoplocal/internal/domain/repository"
	"shoplocal/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// Load returns the persisted cart. An empty store yields an empty cart.
func (repo *cartRepository) Load(ctx context.Context) (*entity.Cart, error) {
	var itemModels []model.CartItemModel

	if err := repo.db.WithContext(ctx).
		Order("position ASC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	cart := &entity.Cart{Items: make([]entity.CartItem, 0, len(itemModels))}
	for _, itemM := range itemModels {
		cart.Items = append(cart.Items, entity.CartItem{
			ProductID: itemM.ProductID,
			Name:      itemM.Name,
			Price:     itemM.Price,
			Image:     itemM.Image,
			Quantity:  itemM.Quantity,
		})
	}

	return cart, nil
}

// Save replaces the stored cart wholesale. Replace-all keeps ordering and
// removals trivially consistent with the in-memory cart.
func (repo *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	if cart == nil {
		return errors.New("cannot save a nil cart")
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.CartItemModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to clear cart items")
		}

		if len(cart.Items) == 0 {
			return nil
		}

		itemModels := make([]model.CartItemModel, 0, len(cart.Items))
		for i, item := range cart.Items {
			itemModels = append(itemModels, model.CartItemModel{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Image:     item.Image,
				Quantity:  item.Quantity,
				Position:  i,
			})
		}

		if err := tx.Create(&itemModels).Error; err != nil {
			return errors.Wrap(err, "failed to save cart items")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to save cart")
	}

	return nil
}

// Clear drops every cart line.
func (repo *cartRepository) Clear(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.CartItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}
