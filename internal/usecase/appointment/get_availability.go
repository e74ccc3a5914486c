package appointment

import (
	"context"
	"time"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/cache"
	domain "github.com/BrunoVenuto/saas-barber-sub000/internal/domain/appointment"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewGetAvailability(repo domain.Repository, c *cache.AvailabilityCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: c}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	slotMinutes := service.DurationMin
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}

	dateKey := in.Date.Format("2006-01-02")
	if starts, ok := uc.cache.Get(ctx, in.BarberID, in.ServiceID, dateKey); ok {
		return toTimeSlots(starts, slotMinutes), nil
	}

	starts, err := uc.computeStarts(ctx, in, slotMinutes)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(ctx, in.BarberID, in.ServiceID, dateKey, starts)

	return toTimeSlots(starts, slotMinutes), nil
}

// computeStarts relê banco e roda o engine puro — sem cache no caminho.
func (uc *GetAvailability) computeStarts(
	ctx context.Context,
	in domain.AvailabilityInput,
	slotMinutes int,
) ([]string, error) {

	// weekday no calendário local da barbearia (in.Date já chega no fuso dela)
	weekday := int(in.Date.Weekday())

	rows, err := uc.repo.ListWindowsForWeekday(ctx, in.BarbershopID, in.BarberID, weekday)
	if err != nil {
		return nil, err
	}

	windows, err := domain.ParseWindows(rows)
	if err != nil {
		// configuração quebrada: falha a chamada, nunca minutos lixo
		return nil, err
	}

	loc := in.Date.Location()
	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	apps, err := uc.repo.ListAppointmentsForDay(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	reserved := domain.ReservedIntervals(apps, dayStart)

	return domain.ComputeAvailableSlots(windows, reserved, slotMinutes), nil
}

func toTimeSlots(starts []string, slotMinutes int) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, len(starts))
	for _, s := range starts {
		min, err := domain.ParseClock(s)
		if err != nil {
			continue
		}
		slots = append(slots, domain.TimeSlot{
			Start: s,
			End:   domain.FormatClock(min + slotMinutes),
		})
	}
	return slots
}
