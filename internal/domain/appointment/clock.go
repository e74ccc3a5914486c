package appointment

import (
	"fmt"
	"strconv"
	"strings"
)

// Horários de janela circulam como "HH:MM" (ou "HH:MM:SS", segundos
// descartados). Internamente tudo vira minutos desde meia-noite.

const (
	minutesPerDay      = 24 * 60
	DefaultSlotMinutes = 60
)

// ParseClock converte "HH:MM" ou "HH:MM:SS" em minutos desde meia-noite.
// Entrada malformada falha a chamada inteira — nunca vira minuto lixo.
func ParseClock(hm string) (int, error) {
	parts := strings.Split(hm, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock %q: bad hour", hm)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock %q: bad minute", hm)
	}

	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return 0, fmt.Errorf("invalid clock %q: bad second", hm)
		}
	}

	return h*60 + m, nil
}

// FormatClock renderiza minutos desde meia-noite como "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ErrWindowInverted sinaliza janela com start >= end.
func ErrWindowInverted(start, end string) error {
	return fmt.Errorf("inverted window %s-%s", start, end)
}
