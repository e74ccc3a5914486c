package appointment

import "github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// NormalizeStatus absorve os vocabulários legados na fronteira de dados.
// Acima do repositório só circula o vocabulário canônico.
func NormalizeStatus(s string) Status {
	switch s {
	case "scheduled", "pending":
		return StatusPending
	case "confirmed":
		return StatusConfirmed
	case "done", "completed":
		return StatusCompleted
	case "cancelled", "canceled":
		return StatusCanceled
	default:
		return Status(s)
	}
}

// Blocks diz se um agendamento neste status ocupa o horário.
// Só cancelado libera o intervalo.
func (s Status) Blocks() bool {
	return s != StatusCanceled
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current == StatusCanceled || current == StatusCompleted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus: todo agendamento nasce pendente.
func InitialStatus() Status {
	return StatusPending
}
