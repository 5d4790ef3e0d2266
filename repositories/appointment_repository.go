package repositories

import (
	"context"

	"doktor.link/configs/configslog"
	"doktor.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const appointmentViewColumns = `a.id, a.title, a.slot_id, a.patient_id, p.username AS patient_username,
	s.user_id AS doctor_id, d.username AS doctor_username, s.start_time, s.end_time, a.created_at`

// IAppointmentRepository appointments access.
type IAppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	ExistsForSlot(ctx context.Context, slotID uint) (bool, error)
	ListByPatient(ctx context.Context, patientID uint) ([]models.AppointmentView, error)
	ListByDoctor(ctx context.Context, doctorID uint) ([]models.AppointmentView, error)
}

// AppointmentRepository implements IAppointmentRepository.
type AppointmentRepository struct {
	*BaseRepository[models.Appointment]
}

// NewAppointmentRepository creates an AppointmentRepository on db.
func NewAppointmentRepository(db *gorm.DB) IAppointmentRepository {
	return &AppointmentRepository{BaseRepository: NewBaseRepository[models.Appointment](db)}
}

// ExistsForSlot reports whether slotID already has an appointment.
func (r *AppointmentRepository) ExistsForSlot(ctx context.Context, slotID uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Appointment{}).Where("slot_id = ?", slotID).Count(&count).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.ExistsForSlot: DB error", zap.Uint("slotID", slotID), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// ListByPatient appointments booked by patientID.
func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.AppointmentView, error) {
	return r.list(ctx, "a.patient_id = ?", patientID)
}

// ListByDoctor appointments on slots owned by doctorID.
func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID uint) ([]models.AppointmentView, error) {
	return r.list(ctx, "s.user_id = ?", doctorID)
}

func (r *AppointmentRepository) list(ctx context.Context, where string, id uint) ([]models.AppointmentView, error) {
	views := make([]models.AppointmentView, 0)
	err := r.getDB(ctx).Table("appointments AS a").
		Select(appointmentViewColumns).
		Joins("JOIN availability_slots s ON s.id = a.slot_id").
		Joins("JOIN users p ON p.id = a.patient_id").
		Joins("JOIN users d ON d.id = s.user_id").
		Where(where, id).
		Order("s.start_time ASC, a.id ASC").
		Scan(&views).Error
	if err != nil {
		configslog.Log.Error("AppointmentRepository.list: DB error", zap.String("filter", where), zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return views, nil
}

var _ IAppointmentRepository = (*AppointmentRepository)(nil)
