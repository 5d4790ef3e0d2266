package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doktor.link/configs/configslog"
	"doktor.link/models"
	"doktor.link/repositories"
	"doktor.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ScheduleServiceError schedule store errors.
type ScheduleServiceError string

func (e ScheduleServiceError) Error() string { return string(e) }

const (
	ErrInvalidInterval    ScheduleServiceError = "end time must be after start time"
	ErrMalformedTimestamp ScheduleServiceError = "invalid date format"
	ErrSlotNotFound       ScheduleServiceError = "slot not found"
	ErrScheduleInvalidArg ScheduleServiceError = "invalid schedule input"
)

// SlotDetails optional descriptive fields of a slot.
type SlotDetails struct {
	Location string
	Notes    string
}

// IScheduleService availability windows of doctors.
// Callers must have checked that doctorID belongs to a doctor.
type IScheduleService interface {
	AddAvailability(ctx context.Context, doctorID uint, start, end time.Time, details SlotDetails) (*models.AvailabilitySlot, error)
	AddAvailabilityFromStrings(ctx context.Context, doctorID uint, start, end string, details SlotDetails) (*models.AvailabilitySlot, error)
	ListAllSlots(ctx context.Context) ([]models.SlotView, error)
	ListSlotsForDoctor(ctx context.Context, doctorID uint) ([]models.SlotView, error)
	GetSlot(ctx context.Context, slotID uint) (*models.AvailabilitySlot, error)
}

// ScheduleService implements IScheduleService.
type ScheduleService struct {
	repo repositories.ISlotRepository
}

// NewScheduleService creates a ScheduleService on db.
func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{repo: repositories.NewSlotRepository(db)}
}

// AddAvailability stores [start, end) for doctorID. No overlap check with existing slots.
func (s *ScheduleService) AddAvailability(ctx context.Context, doctorID uint, start, end time.Time, details SlotDetails) (*models.AvailabilitySlot, error) {
	if doctorID == 0 {
		return nil, fmt.Errorf("%w: doctor id is required", ErrScheduleInvalidArg)
	}
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	slot := &models.AvailabilitySlot{
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
		UserID:    doctorID,
		Location:  strings.TrimSpace(details.Location),
		Notes:     strings.TrimSpace(details.Notes),
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		configslog.Log.Error("AddAvailability: create failed", zap.Uint("doctorID", doctorID), zap.Error(err))
		return nil, err
	}

	configslog.Log.Info("Availability added",
		zap.Uint("slotID", slot.ID),
		zap.Uint("doctorID", doctorID),
		zap.Time("start", slot.StartTime),
		zap.Time("end", slot.EndTime),
	)
	return slot, nil
}

// AddAvailabilityFromStrings parses ISO-8601 inputs then calls AddAvailability.
func (s *ScheduleService) AddAvailabilityFromStrings(ctx context.Context, doctorID uint, start, end string, details SlotDetails) (*models.AvailabilitySlot, error) {
	startTime, err := utils.ParseTimestamp(start)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time %q", ErrMalformedTimestamp, start)
	}
	endTime, err := utils.ParseTimestamp(end)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time %q", ErrMalformedTimestamp, end)
	}
	return s.AddAvailability(ctx, doctorID, startTime, endTime, details)
}

// ListAllSlots every slot by ascending start time, for patients browsing.
func (s *ScheduleService) ListAllSlots(ctx context.Context) ([]models.SlotView, error) {
	return s.repo.ListAll(ctx)
}

// ListSlotsForDoctor the doctor's own calendar.
func (s *ScheduleService) ListSlotsForDoctor(ctx context.Context, doctorID uint) ([]models.SlotView, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// GetSlot returns ErrSlotNotFound when slotID does not exist.
func (s *ScheduleService) GetSlot(ctx context.Context, slotID uint) (*models.AvailabilitySlot, error) {
	slot, err := s.repo.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

var _ IScheduleService = (*ScheduleService)(nil)
