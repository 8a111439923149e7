package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var validSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// replacer normaliza caracteres acentuados comunes en nombres de negocios
// (pt-BR / es) antes de generar el slug.
var replacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// Normalize deriva un slug URL-safe a partir del nombre del negocio:
// minúsculas, sin acentos, separadores colapsados a guiones.
// La unicidad NO se garantiza aquí; la impone el índice único de la tabla tenants.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = replacer.Replace(s)

	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Validate verifica que el slug sea URL-safe (minúsculas, dígitos, guiones internos).
func Validate(s string) error {
	if s == "" {
		return fmt.Errorf("slug vacío")
	}
	if len(s) > 60 {
		return fmt.Errorf("slug demasiado largo (máx 60)")
	}
	if !validSlug.MatchString(s) {
		return fmt.Errorf("slug inválido: %q", s)
	}
	return nil
}
