package httperr

import "errors"

// BusinessError é um desfecho esperado do domínio (slot_taken,
// invalid_state, ...), não uma falha de infraestrutura. Erros de store
// propagam crus, com a mensagem original preservada.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extrai o código de negócio, ou "" se o erro não for de negócio.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
