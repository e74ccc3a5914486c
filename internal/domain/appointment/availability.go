package appointment

import (
	"sort"
	"time"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
)

// ===============================
// Availability Engine
// ===============================
//
// Função pura: janelas de expediente + intervalos já reservados + duração
// do serviço → lista ordenada de inícios livres ("HH:MM"). Sem efeito
// colateral, mesma entrada produz sempre a mesma saída.

// Window é uma janela de expediente em minutos desde meia-noite.
type Window struct {
	Start int
	End   int
}

// Interval é um intervalo meio-aberto [Start, End) já reservado.
type Interval struct {
	Start int
	End   int
}

// Overlaps testa sobreposição de intervalos meio-abertos:
// [a,b) e [c,d) se sobrepõem sse a < d && c < b.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// ParseWindows converte janelas persistidas ("HH:MM") em minutos.
// Janela com start >= end é configuração quebrada: falha a chamada.
func ParseWindows(rows []models.WorkingHourWindow) ([]Window, error) {
	out := make([]Window, 0, len(rows))
	for _, row := range rows {
		start, err := ParseClock(row.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := ParseClock(row.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, ErrWindowInverted(row.StartTime, row.EndTime)
		}
		out = append(out, Window{Start: start, End: end})
	}
	return out, nil
}

// ComputeAvailableSlots gera os inícios agendáveis para um dia.
//
// Regras:
//   - candidatos avançam de slotMinutes em slotMinutes a partir do início
//     de cada janela, e o slot precisa caber inteiro na MESMA janela
//     (nunca atravessa janelas, mesmo contíguas);
//   - candidatos de todas as janelas são unidos, deduplicados e ordenados;
//   - candidato que sobrepõe qualquer intervalo reservado cai fora;
//   - slotMinutes <= 0 cai no padrão de 60 minutos;
//   - sem janela no dia → lista vazia (dia de folga, não é erro).
func ComputeAvailableSlots(windows []Window, reserved []Interval, slotMinutes int) []string {
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}

	seen := make(map[int]bool)
	var starts []int

	for _, w := range windows {
		for t := w.Start; t+slotMinutes <= w.End; t += slotMinutes {
			if seen[t] {
				continue
			}
			seen[t] = true
			starts = append(starts, t)
		}
	}

	sort.Ints(starts)

	slots := make([]string, 0, len(starts))
	for _, t := range starts {
		candidate := Interval{Start: t, End: t + slotMinutes}

		conflict := false
		for _, r := range reserved {
			if candidate.Overlaps(r) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, FormatClock(t))
		}
	}

	return slots
}

// ReservedIntervals projeta os agendamentos de um dia em intervalos de
// minutos relativos a dayStart. Cancelado libera o horário; qualquer
// outro status bloqueia.
func ReservedIntervals(apps []models.Appointment, dayStart time.Time) []Interval {
	out := make([]Interval, 0, len(apps))
	for _, ap := range apps {
		if !NormalizeStatus(ap.Status).Blocks() {
			continue
		}
		out = append(out, Interval{
			Start: int(ap.StartTime.Sub(dayStart).Minutes()),
			End:   int(ap.EndTime.Sub(dayStart).Minutes()),
		})
	}
	return out
}
