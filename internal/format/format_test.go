package format

import "testing"

func TestNormalizarTelefono(t *testing.T) {
	cases := []struct{ in, want string }{
		{"+54 9 11-2345-6789", "5491123456789"},
		{"(011) 4567 8901", "01145678901"},
		{"", ""},
		{"abc", ""},
	}
	for _, c := range cases {
		if got := NormalizarTelefono(c.in); got != c.want {
			t.Errorf("NormalizarTelefono(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTelefonoWhatsApp(t *testing.T) {
	cases := []struct{ in, want string }{
		// cero de discado local se saca, se antepone el código de país
		{"011 2345-6789", "541123456789"},
		{"1123456789", "541123456789"},
		// si ya viene con 54 no se duplica
		{"5491123456789", "5491123456789"},
		{"", ""},
	}
	for _, c := range cases {
		if got := TelefonoWhatsApp(c.in); got != c.want {
			t.Errorf("TelefonoWhatsApp(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTitulo(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  juan   carlos ", "Juan Carlos"},
		{"PÉREZ", "Pérez"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Titulo(c.in); got != c.want {
			t.Errorf("Titulo(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMayus(t *testing.T) {
	if got := Mayus(" abc 123 "); got != "ABC 123" {
		t.Errorf("Mayus = %q", got)
	}
}
