package appointment

import (
	"context"
	"sync"
	"time"

	domain "github.com/BrunoVenuto/saas-barber-sub000/internal/domain/appointment"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
)

// fakeRepo guarda tudo em memória e reproduz, no CreateAppointment, a
// constraint de exclusão do Postgres: sob lock, intervalo sobreposto de
// linha não cancelada é rejeitado como slot_taken.
type fakeRepo struct {
	mu sync.Mutex

	shop     models.Barbershop
	barber   models.Barber
	services map[uint]models.Service
	windows  []models.WorkingHourWindow
	apps     []models.Appointment

	nextID    uint
	createErr error

	// beforeCreate roda antes do lock do CreateAppointment; os testes usam
	// para enfiar um concorrente entre o re-check e a escrita.
	beforeCreate func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop: models.Barbershop{
			ID:                1,
			Name:              "Navalha de Prata",
			Slug:              "navalha",
			Timezone:          "UTC",
			MinAdvanceMinutes: 60,
		},
		barber: models.Barber{
			ID:           7,
			BarbershopID: 1,
			Name:         "Bruno",
			Role:         "owner",
			Active:       true,
		},
		services: map[uint]models.Service{
			3: {ID: 3, BarbershopID: 1, Name: "Corte", DurationMin: 60, Active: true},
		},
		nextID: 100,
	}
}

func (f *fakeRepo) addWindow(barberID *uint, weekday int, start, end string) {
	f.windows = append(f.windows, models.WorkingHourWindow{
		BarbershopID: f.shop.ID,
		BarberID:     barberID,
		Weekday:      weekday,
		StartTime:    start,
		EndTime:      end,
	})
}

func (f *fakeRepo) addAppointment(status string, start, end time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	f.apps = append(f.apps, models.Appointment{
		ID:        f.nextID,
		BarberID:  f.barber.ID,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	})
}

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if id != f.shop.ID {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}
	shop := f.shop
	return &shop, nil
}

func (f *fakeRepo) GetBarber(_ context.Context, barbershopID, barberID uint) (*models.Barber, error) {
	if barbershopID != f.shop.ID || barberID != f.barber.ID {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	barber := f.barber
	return &barber, nil
}

func (f *fakeRepo) GetService(_ context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok || barbershopID != f.shop.ID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return &svc, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, barbershopID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{
		ID:           42,
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}, nil
}

func (f *fakeRepo) ListWindowsForWeekday(_ context.Context, barbershopID, barberID uint, weekday int) ([]models.WorkingHourWindow, error) {
	var out []models.WorkingHourWindow
	for _, w := range f.windows {
		if w.BarbershopID != barbershopID || w.Weekday != weekday {
			continue
		}
		if w.BarberID != nil && *w.BarberID != barberID {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeRepo) ReplaceWindowsForBarber(_ context.Context, barbershopID, barberID uint, windows []models.WorkingHourWindow) error {
	kept := f.windows[:0]
	for _, w := range f.windows {
		if w.BarbershopID == barbershopID && w.BarberID != nil && *w.BarberID == barberID {
			continue
		}
		kept = append(kept, w)
	}
	f.windows = append(kept, windows...)
	return nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	for _, existing := range f.apps {
		if existing.BarberID != ap.BarberID {
			continue
		}
		if !domain.NormalizeStatus(existing.Status).Blocks() {
			continue
		}
		if ap.StartTime.Before(existing.EndTime) && existing.StartTime.Before(ap.EndTime) {
			return httperr.ErrBusiness("slot_taken")
		}
	}

	f.nextID++
	ap.ID = f.nextID
	f.apps = append(f.apps, *ap)
	return nil
}

func (f *fakeRepo) GetAppointmentForBarber(_ context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.apps {
		if f.apps[i].ID == appointmentID && f.apps[i].BarberID == barberID {
			ap := f.apps[i]
			ap.Status = string(domain.NormalizeStatus(ap.Status))
			return &ap, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.apps {
		if f.apps[i].ID == ap.ID {
			f.apps[i] = *ap
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.apps {
		if ap.BarberID != barberID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	return f.ListAppointmentsForDay(ctx, barberID, start, end)
}

var _ domain.Repository = (*fakeRepo)(nil)
