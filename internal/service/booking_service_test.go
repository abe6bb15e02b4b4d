package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medbook/medbook-api/internal/models"
	"github.com/medbook/medbook-api/internal/repository"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
)

type mockAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]models.Appointment
	nextID       int
}

func (m *mockAppointmentRepo) slotKey(a *models.Appointment) string {
	return a.DoctorID + "|" + a.DateString() + "|" + a.Time
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appointments == nil {
		m.appointments = make(map[string]models.Appointment)
	}
	key := m.slotKey(appt)
	for _, existing := range m.appointments {
		if existing.Status == models.AppointmentScheduled && m.slotKey(&existing) == key {
			return repository.ErrDuplicateSlot
		}
	}
	m.nextID++
	appt.ID = fmt.Sprintf("appt-%d", m.nextID)
	appt.Status = models.AppointmentScheduled
	appt.CreatedAt = time.Now()
	m.appointments[appt.ID] = *appt
	return nil
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.appointments[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAppointmentRepo) FindView(ctx context.Context, id string) (*models.AppointmentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.appointments[id]; ok {
		return &models.AppointmentView{
			ID:         a.ID,
			PatientID:  a.PatientID,
			DoctorID:   a.DoctorID,
			Date:       a.DateString(),
			Time:       a.Time,
			Status:     a.Status,
			Reason:     a.Reason,
			DoctorName: "Dr. Test",
			Speciality: "Cardiology",
			Hospital:   "General",
			CreatedAt:  a.CreatedAt,
		}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAppointmentRepo) ListViewsByPatient(ctx context.Context, patientID string) ([]models.AppointmentView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var views []models.AppointmentView
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			views = append(views, models.AppointmentView{ID: a.ID, PatientID: a.PatientID, DoctorID: a.DoctorID, Date: a.DateString(), Time: a.Time, Status: a.Status, Reason: a.Reason})
		}
	}
	return views, nil
}

func (m *mockAppointmentRepo) Cancel(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok || a.Status != models.AppointmentScheduled {
		return false, nil
	}
	a.Status = models.AppointmentCancelled
	m.appointments[id] = a
	return true, nil
}

type mockUserReader struct {
	users map[string]*models.User
}

func (m *mockUserReader) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

type mockApprovedDoctorReader struct {
	doctors map[string]*models.Doctor
}

func (m *mockApprovedDoctorReader) FindApprovedByID(ctx context.Context, id string) (*models.Doctor, error) {
	if d, ok := m.doctors[id]; ok && d.ApprovalState == models.ApprovalApproved {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, code, appErr.Code)
}

func newBookingFixture() (*BookingService, *mockAppointmentRepo) {
	repo := &mockAppointmentRepo{}
	users := &mockUserReader{users: map[string]*models.User{"p1": {ID: "p1", Role: models.RolePatient}}}
	doctors := &mockApprovedDoctorReader{doctors: map[string]*models.Doctor{
		"d1": {ID: "d1", ApprovalState: models.ApprovalApproved},
		"d2": {ID: "d2", ApprovalState: models.ApprovalPending},
	}}
	svc := NewBookingService(repo, users, doctors, validator.New(), zap.NewNop(), time.Second)
	return svc, repo
}

func TestBookingServiceBook(t *testing.T) {
	svc, repo := newBookingFixture()

	view, err := svc.Book(context.Background(), BookRequest{PatientID: "p1", DoctorID: "d1", Date: "2025-03-10", Time: "09:30", Reason: "check-up"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", view.Date)
	assert.Equal(t, "09:30", view.Time)
	assert.Equal(t, models.AppointmentScheduled, view.Status)
	assert.Equal(t, "check-up", view.Reason)
	assert.Len(t, repo.appointments, 1)
}

func TestBookingServiceBookDefaultsReason(t *testing.T) {
	svc, _ := newBookingFixture()

	view, err := svc.Book(context.Background(), BookRequest{PatientID: "p1", DoctorID: "d1", Date: "2025-03-10", Time: "09:30", Reason: "   "})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultReason, view.Reason)
}

func TestBookingServiceBookValidation(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		req  BookRequest
	}{
		{"missing fields", BookRequest{PatientID: "p1"}},
		{"bad date", BookRequest{PatientID: "p1", DoctorID: "d1", Date: "10-03-2025", Time: "09:30"}},
		{"bad time", BookRequest{PatientID: "p1", DoctorID: "d1", Date: "2025-03-10", Time: "9am"}},
		{"unknown patient", BookRequest{PatientID: "ghost", DoctorID: "d1", Date: "2025-03-10", Time: "09:30"}},
		{"unknown doctor", BookRequest{PatientID: "p1", DoctorID: "ghost", Date: "2025-03-10", Time: "09:30"}},
		{"unapproved doctor", BookRequest{PatientID: "p1", DoctorID: "d2", Date: "2025-03-10", Time: "09:30"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book(ctx, tc.req)
			assertErrorCode(t, err, appErrors.ErrValidation.Code)
		})
	}
}

func TestBookingServiceBookConflict(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()
	req := BookRequest{PatientID: "p1", DoctorID: "d1", Date: "2025-03-10", Time: "09:30"}

	_, err := svc.Book(ctx, req)
	require.NoError(t, err)

	_, err = svc.Book(ctx, req)
	assertErrorCode(t, err, appErrors.ErrSlotTaken.Code)

	// A different time on the same day is still free.
	_, err = svc.Book(ctx, BookRequest{PatientID: "p1", DoctorID: "d1", Date: "2025-03-10", Time: "10:00"})
	require.NoError(t, err)
}

func TestBookingServiceConcurrentBookSingleWinner(t *testing.T) {
	svc, repo := newBookingFixture()
	req := BookRequest{PatientID: "p1", DoctorID: "d1", Date: "2025-03-10", Time: "09:30"}

	const racers = 16
	results := make(chan error, racers)
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < racers; i++ {
		go func() {
			start.Wait()
			_, err := svc.Book(context.Background(), req)
			results <- err
		}()
	}
	start.Done()

	var wins, conflicts int
	for i := 0; i < racers; i++ {
		err := <-results
		if err == nil {
			wins++
			continue
		}
		assertErrorCode(t, err, appErrors.ErrSlotTaken.Code)
		conflicts++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)

	scheduled := 0
	for _, a := range repo.appointments {
		if a.Status == models.AppointmentScheduled {
			scheduled++
		}
	}
	assert.Equal(t, 1, scheduled)
}

func TestBookingServiceCancel(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()

	view, err := svc.Book(ctx, BookRequest{PatientID: "p1", DoctorID: "d1", Date: "2025-03-10", Time: "09:30"})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCancelled, cancelled.Status)

	_, err = svc.Cancel(ctx, view.ID)
	assertErrorCode(t, err, appErrors.ErrAlreadyCancelled.Code)

	_, err = svc.Cancel(ctx, "missing")
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestBookingServiceRebookAfterCancel(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()
	req := BookRequest{PatientID: "p1", DoctorID: "d1", Date: "2025-03-10", Time: "09:30"}

	first, err := svc.Book(ctx, req)
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, first.ID)
	require.NoError(t, err)

	// The cancelled row no longer holds the slot.
	second, err := svc.Book(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBookingServiceListForPatient(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()

	_, err := svc.Book(ctx, BookRequest{PatientID: "p1", DoctorID: "d1", Date: "2025-03-10", Time: "09:30"})
	require.NoError(t, err)
	_, err = svc.Book(ctx, BookRequest{PatientID: "p1", DoctorID: "d1", Date: "2025-03-11", Time: "09:30"})
	require.NoError(t, err)

	views, err := svc.ListForPatient(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, views, 2)

	_, err = svc.ListForPatient(ctx, "ghost")
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}
