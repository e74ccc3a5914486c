package appointment

import (
	"context"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/audit"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/cache"
	domain "github.com/BrunoVenuto/saas-barber-sub000/internal/domain/appointment"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	auditDisp *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		cache: c,
		audit: auditDisp,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// cancelado libera o intervalo → slots do dia mudaram
	loc := timezone.Location(shop.Timezone)
	uc.cache.Invalidate(ctx, barberID, ap.StartTime.In(loc).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		BarberID:     &barberID,
		Action:       "appointment_canceled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
