package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"
)

// Segunda-feira bem no futuro, pra antecedência mínima nunca atrapalhar.
const (
	testDate    = "2030-01-07"
	testWeekday = 1
)

func newWriterRepo() *fakeRepo {
	repo := newFakeRepo()
	barberID := repo.barber.ID
	repo.addWindow(&barberID, testWeekday, "09:00", "12:00")
	return repo
}

func validInput() CreateReservationInput {
	return CreateReservationInput{
		BarbershopID: 1,
		BarberID:     7,
		ClientName:   "João Silva",
		ClientPhone:  "(11) 98888-7777",
		ServiceID:    3,
		Date:         testDate,
		Time:         "09:00",
	}
}

func TestCreateReservation_Success(t *testing.T) {
	repo := newWriterRepo()
	uc := NewCreateReservation(repo, nil, nil)

	ap, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Status != "pending" {
		t.Fatalf("novo agendamento deveria nascer pending, veio %q", ap.Status)
	}
	if ap.PublicID == uuid.Nil {
		t.Fatal("PublicID não foi gerado")
	}
	if got := ap.EndTime.Sub(ap.StartTime); got != 60*time.Minute {
		t.Fatalf("duração gravada = %v, esperado 60m", got)
	}
	if ap.StartTime.Format("2006-01-02 15:04") != testDate+" 09:00" {
		t.Fatalf("start gravado = %v", ap.StartTime)
	}
	if len(repo.apps) != 1 {
		t.Fatalf("esperava 1 linha no store, tem %d", len(repo.apps))
	}
}

func TestCreateReservation_Validation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateReservationInput)
		wantErr string
	}{
		{"nome curto", func(in *CreateReservationInput) { in.ClientName = "J" }, "invalid_client_name"},
		{"nome vazio", func(in *CreateReservationInput) { in.ClientName = "   " }, "invalid_client_name"},
		{"telefone curto", func(in *CreateReservationInput) { in.ClientPhone = "1234" }, "invalid_client_phone"},
		{"telefone sem digito", func(in *CreateReservationInput) { in.ClientPhone = "abc-def" }, "invalid_client_phone"},
		{"email sem dominio", func(in *CreateReservationInput) { in.ClientEmail = "joao@" }, "invalid_client_email"},
		{"email sem arroba", func(in *CreateReservationInput) { in.ClientEmail = "joao.silva" }, "invalid_client_email"},
		{"data lixo", func(in *CreateReservationInput) { in.Date = "07/01/2030" }, "invalid_date_or_time"},
		{"hora lixo", func(in *CreateReservationInput) { in.Time = "9h" }, "invalid_date_or_time"},
		{"barbeiro inexistente", func(in *CreateReservationInput) { in.BarberID = 999 }, "barber_not_found"},
		{"serviço inexistente", func(in *CreateReservationInput) { in.ServiceID = 999 }, "service_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newWriterRepo()
			uc := NewCreateReservation(repo, nil, nil)

			in := validInput()
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			if !httperr.IsBusiness(err, tc.wantErr) {
				t.Fatalf("esperava %s, veio %v", tc.wantErr, err)
			}
			if len(repo.apps) != 0 {
				t.Fatal("nada deveria ter sido gravado")
			}
		})
	}
}

func TestCreateReservation_TooSoon(t *testing.T) {
	repo := newWriterRepo()
	uc := NewCreateReservation(repo, nil, nil)

	in := validInput()
	in.Date = "2020-01-06" // segunda, mas no passado

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "too_soon") {
		t.Fatalf("esperava too_soon, veio %v", err)
	}
}

func TestCreateReservation_OutsideWorkingHours(t *testing.T) {
	cases := []struct {
		name string
		date string
		hour string
	}{
		{"antes do expediente", testDate, "08:00"},
		{"depois do expediente", testDate, "12:00"},
		{"não cabe até o fim da janela", testDate, "11:30"},
		{"dia sem janela", "2030-01-08", "09:00"}, // terça
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newWriterRepo()
			uc := NewCreateReservation(repo, nil, nil)

			in := validInput()
			in.Date = tc.date
			in.Time = tc.hour

			_, err := uc.Execute(context.Background(), in)
			if !httperr.IsBusiness(err, "outside_working_hours") {
				t.Fatalf("esperava outside_working_hours, veio %v", err)
			}
		})
	}
}

func TestCreateReservation_SlotTakenOnRecheck(t *testing.T) {
	repo := newWriterRepo()
	uc := NewCreateReservation(repo, nil, nil)

	day, _ := time.Parse("2006-01-02", testDate)
	repo.addAppointment("pending",
		day.Add(10*time.Hour),
		day.Add(11*time.Hour),
	)

	in := validInput()
	in.Time = "10:00"

	_, err := uc.Execute(context.Background(), in)
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("esperava slot_taken, veio %v", err)
	}
}

func TestCreateReservation_CanceledDoesNotBlock(t *testing.T) {
	repo := newWriterRepo()
	uc := NewCreateReservation(repo, nil, nil)

	day, _ := time.Parse("2006-01-02", testDate)
	repo.addAppointment("canceled",
		day.Add(10*time.Hour),
		day.Add(11*time.Hour),
	)

	in := validInput()
	in.Time = "10:00"

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("cancelado não deveria bloquear o horário: %v", err)
	}
}

// Concorrente grava o mesmo intervalo DEPOIS do re-check otimista: só a
// constraint do store segura. O chamador recebe slot_taken e pode
// recalcular a disponibilidade.
func TestCreateReservation_SlotTakenOnWrite(t *testing.T) {
	repo := newWriterRepo()
	uc := NewCreateReservation(repo, nil, nil)

	day, _ := time.Parse("2006-01-02", testDate)
	repo.beforeCreate = func() {
		repo.beforeCreate = nil
		repo.addAppointment("pending",
			day.Add(9*time.Hour),
			day.Add(10*time.Hour),
		)
	}

	_, err := uc.Execute(context.Background(), validInput())
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("esperava slot_taken da escrita, veio %v", err)
	}
	if len(repo.apps) != 1 {
		t.Fatalf("só o concorrente deveria estar no store, tem %d linhas", len(repo.apps))
	}
}

func TestCreateReservation_ConcurrentSameSlot(t *testing.T) {
	repo := newWriterRepo()
	uc := NewCreateReservation(repo, nil, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validInput())
		}(i)
	}
	wg.Wait()

	var wins, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, "slot_taken"):
			taken++
		default:
			t.Fatalf("erro inesperado: %v", err)
		}
	}

	if wins != 1 || taken != 1 {
		t.Fatalf("esperava exatamente 1 vencedor e 1 slot_taken, veio %d/%d", wins, taken)
	}
	if len(repo.apps) != 1 {
		t.Fatalf("o store deveria ter exatamente 1 linha, tem %d", len(repo.apps))
	}
}

func TestCreateReservation_StoreErrorPropagates(t *testing.T) {
	repo := newWriterRepo()
	repo.createErr = errors.New("driver: bad connection")
	uc := NewCreateReservation(repo, nil, nil)

	_, err := uc.Execute(context.Background(), validInput())
	if err == nil {
		t.Fatal("esperava erro de store")
	}
	if httperr.BusinessCode(err) != "" {
		t.Fatalf("erro de store não pode virar erro de negócio: %v", err)
	}
	if err.Error() != "driver: bad connection" {
		t.Fatalf("mensagem original perdida: %v", err)
	}
}
