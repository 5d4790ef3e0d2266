package services_test

import (
	"context"
	"testing"
	"time"

	"doktor.link/database/dbtest"
	"doktor.link/models"
	"doktor.link/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	credentials *services.CredentialService
	schedule    *services.ScheduleService
	booking     *services.BookingService
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := dbtest.Open(t)
	return fixture{
		db:          db,
		credentials: services.NewCredentialService(db, bcrypt.MinCost),
		schedule:    services.NewScheduleService(db),
		booking:     services.NewBookingService(db),
	}
}

func (f fixture) provision(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()
	u, err := f.credentials.ProvisionUser(context.Background(), username, "password123", role)
	require.NoError(t, err)
	return u
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

// ----- credential store -----

func TestProvisionAndAuthenticate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	u := f.provision(t, "doctor_a", models.RoleDoctor)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "password123", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")))

	got, err := f.credentials.Authenticate(ctx, "doctor_a", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, models.RoleDoctor, got.Role)

	_, err = f.credentials.Authenticate(ctx, "doctor_a", "password124")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	f := setup(t)
	_, err := f.credentials.Authenticate(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = f.credentials.Authenticate(context.Background(), "", "")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestProvisionValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.provision(t, "patient_b", models.RolePatient)

	tests := []struct {
		name     string
		username string
		password string
		role     models.Role
		want     error
	}{
		{"duplicate username", "patient_b", "other", models.RolePatient, services.ErrDuplicateUsername},
		{"duplicate with padding", "  patient_b ", "other", models.RoleDoctor, services.ErrDuplicateUsername},
		{"empty username", "", "x", models.RolePatient, services.ErrCredentialRequired},
		{"empty password", "new_user", "", models.RolePatient, services.ErrCredentialRequired},
		{"unknown role", "new_user", "x", models.Role("admin"), services.ErrInvalidRole},
		{"password too long", "new_user", string(make([]byte, 73)), models.RolePatient, services.ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.credentials.ProvisionUser(ctx, tt.username, tt.password, tt.role)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestChangePassword(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.provision(t, "patient_b", models.RolePatient)

	err := f.credentials.ChangePassword(ctx, u.ID, "wrong", "newpass456")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	require.NoError(t, f.credentials.ChangePassword(ctx, u.ID, "password123", "newpass456"))

	_, err = f.credentials.Authenticate(ctx, "patient_b", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = f.credentials.Authenticate(ctx, "patient_b", "newpass456")
	assert.NoError(t, err)

	err = f.credentials.ChangePassword(ctx, 999, "x", "y")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

// ----- schedule store -----

func TestAddAvailabilityRetrievable(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	doc := f.provision(t, "doctor_a", models.RoleDoctor)

	start := at("2025-01-01T09:00")
	slot, err := f.schedule.AddAvailability(ctx, doc.ID, start, start.Add(30*time.Minute), services.SlotDetails{Location: " Room 4 ", Notes: "bring results"})
	require.NoError(t, err)

	got, err := f.schedule.GetSlot(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, start.Equal(got.StartTime))
	assert.True(t, start.Add(30*time.Minute).Equal(got.EndTime))
	assert.Equal(t, doc.ID, got.UserID)
	assert.Equal(t, "Room 4", got.Location)
	assert.Equal(t, "bring results", got.Notes)
}

func TestAddAvailabilityInvalidInterval(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	doc := f.provision(t, "doctor_a", models.RoleDoctor)
	start := at("2025-01-01T09:00")

	for _, end := range []time.Time{start, start.Add(-time.Minute), start.Add(-24 * time.Hour)} {
		_, err := f.schedule.AddAvailability(ctx, doc.ID, start, end, services.SlotDetails{})
		assert.ErrorIs(t, err, services.ErrInvalidInterval)
	}

	slots, err := f.schedule.ListAllSlots(ctx)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAddAvailabilityFromStrings(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	doc := f.provision(t, "doctor_a", models.RoleDoctor)

	slot, err := f.schedule.AddAvailabilityFromStrings(ctx, doc.ID, "2025-01-01T09:00", "2025-01-01T09:30", services.SlotDetails{})
	require.NoError(t, err)
	assert.True(t, at("2025-01-01T09:00").Equal(slot.StartTime))

	_, err = f.schedule.AddAvailabilityFromStrings(ctx, doc.ID, "not-a-date", "2025-01-01T09:30", services.SlotDetails{})
	assert.ErrorIs(t, err, services.ErrMalformedTimestamp)

	_, err = f.schedule.AddAvailabilityFromStrings(ctx, doc.ID, "2025-01-01T09:00", "", services.SlotDetails{})
	assert.ErrorIs(t, err, services.ErrMalformedTimestamp)

	_, err = f.schedule.AddAvailabilityFromStrings(ctx, doc.ID, "2025-01-01T10:00", "2025-01-01T09:30", services.SlotDetails{})
	assert.ErrorIs(t, err, services.ErrInvalidInterval)
}

func TestListSlotsOrdering(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	docA := f.provision(t, "doctor_a", models.RoleDoctor)
	docC := f.provision(t, "doctor_c", models.RoleDoctor)

	mk := func(doctorID uint, start string) {
		s := at(start)
		_, err := f.schedule.AddAvailability(ctx, doctorID, s, s.Add(time.Hour), services.SlotDetails{})
		require.NoError(t, err)
	}
	mk(docA.ID, "2025-01-03T09:00")
	mk(docC.ID, "2025-01-01T09:00")
	mk(docA.ID, "2025-01-02T09:00")

	all, err := f.schedule.ListAllSlots(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].StartTime.Before(all[i].StartTime))
	}
	assert.Equal(t, "doctor_c", all[0].DoctorUsername)

	own, err := f.schedule.ListSlotsForDoctor(ctx, docA.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.True(t, at("2025-01-02T09:00").Equal(own[0].StartTime))
	for _, s := range own {
		assert.Equal(t, docA.ID, s.UserID)
		assert.False(t, s.Booked)
	}
}

func TestGetSlotNotFound(t *testing.T) {
	f := setup(t)
	_, err := f.schedule.GetSlot(context.Background(), 42)
	assert.ErrorIs(t, err, services.ErrSlotNotFound)
}

// ----- booking engine -----

func TestBookingScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	doc := f.provision(t, "doctor_a", models.RoleDoctor)
	pat := f.provision(t, "patient_b", models.RolePatient)

	slot, err := f.schedule.AddAvailability(ctx, doc.ID, at("2025-01-01T09:00"), at("2025-01-01T09:30"), services.SlotDetails{})
	require.NoError(t, err)

	appt, err := f.booking.BookAppointment(ctx, slot.ID, pat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Appointment with patient_b", appt.Title)
	assert.Equal(t, slot.ID, appt.SlotID)
	assert.Equal(t, pat.ID, appt.PatientID)

	forPatient, err := f.booking.ListAppointmentsForPatient(ctx, pat.ID)
	require.NoError(t, err)
	require.Len(t, forPatient, 1)
	assert.Equal(t, slot.ID, forPatient[0].SlotID)
	assert.Equal(t, "doctor_a", forPatient[0].DoctorUsername)
	assert.True(t, at("2025-01-01T09:00").Equal(forPatient[0].StartTime))

	forDoctor, err := f.booking.ListAppointmentsForDoctor(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, forDoctor, 1)
	assert.Equal(t, appt.ID, forDoctor[0].ID)
	assert.Equal(t, "patient_b", forDoctor[0].PatientUsername)

	slots, err := f.schedule.ListAllSlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].Booked)
}

func TestBookSameSlotTwice(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	doc := f.provision(t, "doctor_a", models.RoleDoctor)
	pat := f.provision(t, "patient_b", models.RolePatient)
	other := f.provision(t, "patient_c", models.RolePatient)

	slot, err := f.schedule.AddAvailability(ctx, doc.ID, at("2025-01-01T09:00"), at("2025-01-01T09:30"), services.SlotDetails{})
	require.NoError(t, err)

	_, err = f.booking.BookAppointment(ctx, slot.ID, pat.ID)
	require.NoError(t, err)

	_, err = f.booking.BookAppointment(ctx, slot.ID, pat.ID)
	assert.ErrorIs(t, err, services.ErrSlotAlreadyBooked)

	_, err = f.booking.BookAppointment(ctx, slot.ID, other.ID)
	assert.ErrorIs(t, err, services.ErrSlotAlreadyBooked)

	var count int64
	require.NoError(t, f.db.Model(&models.Appointment{}).Where("slot_id = ?", slot.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookMissingSlot(t *testing.T) {
	f := setup(t)
	pat := f.provision(t, "patient_b", models.RolePatient)

	_, err := f.booking.BookAppointment(context.Background(), 12345, pat.ID)
	assert.ErrorIs(t, err, services.ErrSlotNotFound)
}

func TestBookUnknownPatient(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	doc := f.provision(t, "doctor_a", models.RoleDoctor)
	slot, err := f.schedule.AddAvailability(ctx, doc.ID, at("2025-01-01T09:00"), at("2025-01-01T09:30"), services.SlotDetails{})
	require.NoError(t, err)

	_, err = f.booking.BookAppointment(ctx, slot.ID, 777)
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	list, err := f.booking.ListAppointmentsForDoctor(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
