package services

import (
	"context"
	"errors"

	"doktor.link/configs/configslog"
	"doktor.link/models"
	"doktor.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookingServiceError booking engine errors.
type BookingServiceError string

func (e BookingServiceError) Error() string { return string(e) }

const (
	ErrSlotAlreadyBooked BookingServiceError = "slot already booked"
)

// IBookingService turns open slots into appointments.
type IBookingService interface {
	BookAppointment(ctx context.Context, slotID, patientID uint) (*models.Appointment, error)
	ListAppointmentsForPatient(ctx context.Context, patientID uint) ([]models.AppointmentView, error)
	ListAppointmentsForDoctor(ctx context.Context, doctorID uint) ([]models.AppointmentView, error)
}

// BookingService implements IBookingService.
type BookingService struct {
	db   *gorm.DB
	repo repositories.IAppointmentRepository
}

// NewBookingService creates a BookingService on db.
func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db, repo: repositories.NewAppointmentRepository(db)}
}

// BookingTitle display title of an appointment booked by username.
func BookingTitle(username string) string {
	return "Appointment with " + username
}

// BookAppointment books slotID for patientID. The slot row is locked for the
// transaction and slot_id is unique, so a second booking of the same slot
// fails with ErrSlotAlreadyBooked.
func (s *BookingService) BookAppointment(ctx context.Context, slotID, patientID uint) (*models.Appointment, error) {
	var booked *models.Appointment

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slotRepoTx := repositories.NewSlotRepository(tx)
		userRepoTx := repositories.NewUserRepository(tx)
		appointmentRepoTx := repositories.NewAppointmentRepository(tx)

		// a. lock the slot
		slot, err := slotRepoTx.FindByIDForUpdate(ctx, slotID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		// b. Open -> Booked only once
		exists, err := appointmentRepoTx.ExistsForSlot(ctx, slot.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrSlotAlreadyBooked
		}

		// c. title comes from the stored patient, not the caller
		patient, err := userRepoTx.FindByID(ctx, patientID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		appointment := &models.Appointment{
			Title:     BookingTitle(patient.Username),
			SlotID:    slot.ID,
			PatientID: patient.ID,
		}
		if err := appointmentRepoTx.Create(ctx, appointment); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return ErrSlotAlreadyBooked
			}
			return err
		}
		booked = appointment
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, ErrSlotNotFound) || errors.Is(txErr, ErrSlotAlreadyBooked) || errors.Is(txErr, ErrUserNotFound) {
			configslog.Log.Info("Booking rejected", zap.Uint("slotID", slotID), zap.Uint("patientID", patientID), zap.Error(txErr))
		} else {
			configslog.Log.Error("BookAppointment transaction failed", zap.Uint("slotID", slotID), zap.Uint("patientID", patientID), zap.Error(txErr))
		}
		return nil, txErr
	}

	configslog.Log.Info("Appointment booked", zap.Uint("appointmentID", booked.ID), zap.Uint("slotID", slotID), zap.Uint("patientID", patientID))
	return booked, nil
}

// ListAppointmentsForPatient appointments the patient booked.
func (s *BookingService) ListAppointmentsForPatient(ctx context.Context, patientID uint) ([]models.AppointmentView, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// ListAppointmentsForDoctor appointments on any slot the doctor owns.
func (s *BookingService) ListAppointmentsForDoctor(ctx context.Context, doctorID uint) ([]models.AppointmentView, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

var _ IBookingService = (*BookingService)(nil)
