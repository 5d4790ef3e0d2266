package repositories

import (
	"context"
	"errors"

	"doktor.link/configs/configslog"
	"doktor.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const slotViewColumns = `s.id, s.start_time, s.end_time, s.user_id, u.username AS doctor_username,
	s.location, s.notes, (a.id IS NOT NULL) AS booked`

// ISlotRepository availability_slots access.
type ISlotRepository interface {
	Create(ctx context.Context, slot *models.AvailabilitySlot) error
	FindByID(ctx context.Context, id uint) (*models.AvailabilitySlot, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.AvailabilitySlot, error)
	ListAll(ctx context.Context) ([]models.SlotView, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]models.SlotView, error)
}

// SlotRepository implements ISlotRepository.
type SlotRepository struct {
	*BaseRepository[models.AvailabilitySlot]
}

// NewSlotRepository creates a SlotRepository on db.
func NewSlotRepository(db *gorm.DB) ISlotRepository {
	return &SlotRepository{BaseRepository: NewBaseRepository[models.AvailabilitySlot](db)}
}

// FindByIDForUpdate reads the slot with a row lock. Only meaningful inside a transaction.
func (r *SlotRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.AvailabilitySlot, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var slot models.AvailabilitySlot
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SlotRepository.FindByIDForUpdate: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &slot, nil
}

// ListAll every slot ordered by start time.
func (r *SlotRepository) ListAll(ctx context.Context) ([]models.SlotView, error) {
	return r.list(ctx, nil)
}

// ListByDoctor slots owned by doctorID ordered by start time.
func (r *SlotRepository) ListByDoctor(ctx context.Context, doctorID uint) ([]models.SlotView, error) {
	return r.list(ctx, &doctorID)
}

func (r *SlotRepository) list(ctx context.Context, doctorID *uint) ([]models.SlotView, error) {
	query := r.getDB(ctx).Table("availability_slots AS s").
		Select(slotViewColumns).
		Joins("JOIN users u ON u.id = s.user_id").
		Joins("LEFT JOIN appointments a ON a.slot_id = s.id")
	if doctorID != nil {
		query = query.Where("s.user_id = ?", *doctorID)
	}

	views := make([]models.SlotView, 0)
	if err := query.Order("s.start_time ASC, s.id ASC").Scan(&views).Error; err != nil {
		configslog.Log.Error("SlotRepository.list: DB error", zap.Error(err))
		return nil, err
	}
	return views, nil
}

var _ ISlotRepository = (*SlotRepository)(nil)
