// Package format agrupa las normalizaciones de texto que se aplican al guardar:
// nombres en título, códigos en mayúsculas y teléfonos sólo-dígitos.
package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Prefijo telefónico del país para links de WhatsApp.
const codigoPais = "54"

var titulador = cases.Title(language.Spanish)

// Titulo normaliza "jUaN pEdRo" -> "Juan Pedro", colapsando espacios.
func Titulo(s string) string {
	campos := strings.Fields(s)
	if len(campos) == 0 {
		return ""
	}
	return titulador.String(strings.Join(campos, " "))
}

// Mayus devuelve el texto en mayúsculas sin espacios en los extremos.
func Mayus(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizarTelefono deja sólo los dígitos (saca espacios, +, -, etc.).
func NormalizarTelefono(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// TelefonoWhatsApp arma el número listo para wa.me a partir del teléfono
// guardado: dígitos, sin un "0" inicial, con código de país adelante.
func TelefonoWhatsApp(stored string) string {
	digitos := NormalizarTelefono(stored)
	if digitos == "" {
		return ""
	}
	digitos = strings.TrimPrefix(digitos, "0")
	if !strings.HasPrefix(digitos, codigoPais) {
		digitos = codigoPais + digitos
	}
	return digitos
}
