package validators

import "testing"

func TestIsClientNameValid(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"João Silva", true},
		{"Al", true},
		{"  Bia  ", true},
		{"J", false},
		{"", false},
		{"   ", false},
	}

	for _, tc := range cases {
		if got := IsClientNameValid(tc.name); got != tc.want {
			t.Errorf("IsClientNameValid(%q) = %v, esperado %v", tc.name, got, tc.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"(11) 98888-7777", "11988887777", true},
		{"+55 11 98888-7777", "5511988887777", true},
		{"98887777", "98887777", true},
		{"1234567", "", false},          // 7 dígitos
		{"1234567890123456", "", false}, // 16 dígitos
		{"abc-def", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := NormalizePhone(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizePhone(%q) = (%q, %v), esperado (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

// Só os casos que caem na checagem sintática — resolução de MX/IP
// depende de rede e fica fora do teste unitário.
func TestIsEmailDomainValid_Malformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"sem-arroba",
		"joao@",
		"JOAO@ ",
	}

	for _, email := range cases {
		if IsEmailDomainValid(email) {
			t.Errorf("IsEmailDomainValid(%q) = true, esperado false", email)
		}
	}
}
