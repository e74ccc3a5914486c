package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"
)

// mapReservationError traduz o desfecho do Reservation Writer para HTTP.
// slot_taken → 409 (recuperável: recalcular disponibilidade e escolher
// outro horário). Erro de store propaga como 500 com a mensagem original.
func mapReservationError(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "invalid_client_name":
		httperr.BadRequest(c, "invalid_client_name", "Nome do cliente inválido.")
	case "invalid_client_phone":
		httperr.BadRequest(c, "invalid_client_phone", "Telefone do cliente inválido.")
	case "invalid_client_email":
		httperr.BadRequest(c, "invalid_client_email", "E-mail do cliente inválido.")
	case "invalid_date_or_time":
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou horário inválido.")
	case "too_soon":
		httperr.BadRequest(c, "too_soon", "Horário muito próximo; escolha outro.")
	case "barber_not_found":
		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
	case "service_not_found":
		httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
	case "outside_working_hours":
		httperr.BadRequest(c, "outside_working_hours", "Fora do horário de atendimento.")
	case "slot_taken":
		httperr.Conflict(c, "slot_taken", "Horário acabou de ser reservado; recarregue a disponibilidade.")
	default:
		httperr.Internal(c, "reservation_failed", err.Error())
	}
}
