package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/audit"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/cache"
	domain "github.com/BrunoVenuto/saas-barber-sub000/internal/domain/appointment"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/timezone"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string
}

// ======================================================
// USE CASE — Reservation Writer
// ======================================================
//
// Duas garantias, separadas de propósito:
//   1. re-check otimista contra intervalos recém-lidos do banco — só UX,
//      dois chamadores podem passar por ele ao mesmo tempo;
//   2. constraint de exclusão do Postgres na escrita — a defesa que vale.
// Rejeição da constraint vira slot_taken (recuperável: recalcular e
// escolher de novo). Qualquer outro erro de store propaga cru.

type CreateReservation struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
}

func NewCreateReservation(
	repo domain.Repository,
	c *cache.AvailabilityCache,
	auditDisp *audit.Dispatcher,
) *CreateReservation {
	return &CreateReservation{
		repo:  repo,
		cache: c,
		audit: auditDisp,
	}
}

// writeTimeout limita a escrita; estourando, o chamador NÃO pode assumir
// que gravou — precisa reler o estado antes de tentar de novo.
const writeTimeout = 10 * time.Second

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Identidade do cliente (antes de qualquer I/O de escrita)
	// --------------------------------------------------
	if !validators.IsClientNameValid(in.ClientName) {
		return nil, httperr.ErrBusiness("invalid_client_name")
	}

	phone, ok := validators.NormalizePhone(in.ClientPhone)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_client_phone")
	}

	// e-mail é opcional, mas se veio precisa de domínio que exista
	if in.ClientEmail != "" && !validators.IsEmailDomainValid(in.ClientEmail) {
		return nil, httperr.ErrBusiness("invalid_client_email")
	}

	// --------------------------------------------------
	// 2️⃣ Barbearia + data/hora no fuso dela
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima
	// --------------------------------------------------
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4️⃣ Barbeiro + serviço
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	slotMinutes := service.DurationMin
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}

	end := start.Add(time.Duration(slotMinutes) * time.Minute)

	// --------------------------------------------------
	// 5️⃣ Re-check otimista: janelas + intervalos FRESCOS do banco
	// --------------------------------------------------
	if err := uc.recheckSlot(ctx, shop, barber.ID, start, slotMinutes); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		phone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Escrita — constraint do banco decide o empate
	// --------------------------------------------------
	ap := &models.Appointment{
		PublicID:     uuid.New(),
		BarbershopID: in.BarbershopID,
		BarberID:     barber.ID,
		ClientID:     client.ID,
		ServiceID:    service.ID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := uc.repo.CreateAppointment(writeCtx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Slot gravado some da disponibilidade na hora
	// --------------------------------------------------
	uc.cache.Invalidate(ctx, barber.ID, start.Format("2006-01-02"))

	// --------------------------------------------------
	// 9️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		BarberID:     &barber.ID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

// recheckSlot refaz o cálculo com dados recém-lidos e distingue os dois
// motivos de recusa: fora do expediente vs horário já tomado.
func (uc *CreateReservation) recheckSlot(
	ctx context.Context,
	shop *models.Barbershop,
	barberID uint,
	start time.Time,
	slotMinutes int,
) error {

	weekday := int(start.Weekday())

	rows, err := uc.repo.ListWindowsForWeekday(ctx, shop.ID, barberID, weekday)
	if err != nil {
		return err
	}

	windows, err := domain.ParseWindows(rows)
	if err != nil {
		return err
	}

	startMin := start.Hour()*60 + start.Minute()
	chosen := domain.FormatClock(startMin)

	inWindow := false
	for _, s := range domain.ComputeAvailableSlots(windows, nil, slotMinutes) {
		if s == chosen {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return httperr.ErrBusiness("outside_working_hours")
	}

	loc := start.Location()
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	apps, err := uc.repo.ListAppointmentsForDay(ctx, barberID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return err
	}

	candidate := domain.Interval{Start: startMin, End: startMin + slotMinutes}
	for _, r := range domain.ReservedIntervals(apps, dayStart) {
		if candidate.Overlaps(r) {
			return httperr.ErrBusiness("slot_taken")
		}
	}

	return nil
}
