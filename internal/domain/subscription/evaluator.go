package subscription

import (
	"math"
	"time"
)

// ExpiringSoonDays ventana de "por vencer": días restantes en [0, 3].
const ExpiringSoonDays = 3

// Evaluation resultado del cálculo de vencimiento de una suscripción.
// Es un valor puro: no consulta relojes ni almacenamiento.
type Evaluation struct {
	DaysRemaining  int
	IsExpiringSoon bool
	IsExpired      bool
}

// Evaluate calcula los días restantes de acceso contra el instante now.
//
// DaysRemaining = ceil(expiresAt − now, en días). Sin fecha de vencimiento
// (expiresAt nil) se reporta 0: el tenant no tiene horizonte de acceso y la
// UI lo trata como "por vencer".
//
//	expiresAt = now + 2d  → DaysRemaining 2,  IsExpiringSoon true,  IsExpired false
//	expiresAt = now − 1d  → DaysRemaining −1, IsExpiringSoon false, IsExpired true
func Evaluate(expiresAt *time.Time, now time.Time) Evaluation {
	if expiresAt == nil {
		return Evaluation{DaysRemaining: 0, IsExpiringSoon: true}
	}
	days := int(math.Ceil(expiresAt.Sub(now).Hours() / 24))
	return Evaluation{
		DaysRemaining:  days,
		IsExpiringSoon: days >= 0 && days <= ExpiringSoonDays,
		IsExpired:      days < 0,
	}
}

// PeriodEnd devuelve el fin del período pagado iniciado en from:
// un mes calendario exacto (igual que el flujo de aprobación de pagos).
func PeriodEnd(from time.Time) time.Time {
	return from.AddDate(0, 1, 0)
}

// GrantEnd devuelve el vencimiento de una concesión manual de N días.
// Llamadas sucesivas NO son aditivas: cada concesión fija now+N (last-write-wins).
func GrantEnd(from time.Time, days int) time.Time {
	return from.AddDate(0, 0, days)
}

// IsOverdue informa si una suscripción ACTIVE con vencimiento expiresAt superó
// la ventana de gracia y debe pasar a PAST_DUE.
func IsOverdue(expiresAt *time.Time, graceDays int, now time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return now.After(expiresAt.AddDate(0, 0, graceDays))
}
