package billing

import (
	"strings"

	"github.com/agropet/agropet-api/internal/domain"
)

// Operators lista de emails autorizados para operaciones de facturación
// (aprobación de pagos, concesiones manuales). Se inyecta desde configuración
// al arrancar; ninguna operación compara contra un literal en el código.
type Operators []string

// Authorize devuelve domain.ErrNotOperator si el email no está en la lista.
// Comparación case-insensitive; lista vacía = nadie autorizado.
func (o Operators) Authorize(email string) error {
	if email == "" {
		return domain.ErrNotOperator
	}
	for _, op := range o {
		if strings.EqualFold(strings.TrimSpace(op), email) {
			return nil
		}
	}
	return domain.ErrNotOperator
}
