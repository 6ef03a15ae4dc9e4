package sqlite

import (
	"context"

	"shoplocal/internal/domain/repository"
	"shoplocal/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// visitRepository implements the repository.VisitRepository interface.
type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository is the constructor for visitRepository.
func NewVisitRepository(db *gorm.DB) repository.VisitRepository {
	return &visitRepository{db: db}
}

// Seen reports whether the vendor has been visited before.
func (repo *visitRepository) Seen(ctx context.Context, vendorID int64) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.VisitModel{}).
		Where("vendor_id = ?", vendorID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check vendor visit")
	}

	return count > 0, nil
}

// MarkSeen records a visit. Marking an already-seen vendor is a no-op.
func (repo *visitRepository) MarkSeen(ctx context.Context, vendorID int64) error {
	visitM := model.VisitModel{VendorID: vendorID}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&visitM).Error; err != nil {
		return errors.Wrap(err, "failed to record vendor visit")
	}

	return nil
}

// All returns every visited vendor id.
func (repo *visitRepository) All(ctx context.Context) ([]int64, error) {
	var ids []int64

	if err := repo.db.WithContext(ctx).
		Model(&model.VisitModel{}).
		Order("created_at ASC").
		Pluck("vendor_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vendor visits")
	}

	return ids, nil
}
