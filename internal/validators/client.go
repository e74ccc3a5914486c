package validators

import (
	"net"
	"strings"
	"unicode"
)

// Identidade do cliente no booking: nome e telefone obrigatórios,
// e-mail opcional. Rejeitado aqui = nada chega ao banco.

func IsClientNameValid(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// NormalizePhone mantém só dígitos. Telefone válido tem 8 a 15 dígitos
// (E.164 sem formatação).
func NormalizePhone(phone string) (string, bool) {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) < 8 || len(digits) > 15 {
		return "", false
	}
	return digits, true
}

func IsEmailDomainValid(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
