// Package authz contiene el predicado de autorización por propietario.
// Toda la cadena de propiedad termina en un User: empresa → propietario,
// cliente/producto/pedido → empresa → propietario, línea → pedido → empresa → propietario.
package authz

import "github.com/jhoicas/vendergas-api/internal/domain"

// IsAuthorized indica si la sesión es propietaria del recurso.
// Falso si falta la sesión, si no se pudo resolver el propietario o si difieren.
func IsAuthorized(sessionUserID, ownerUserID string) bool {
	if sessionUserID == "" || ownerUserID == "" {
		return false
	}
	return sessionUserID == ownerUserID
}

// Require es la variante que devuelve error: ErrUnauthenticated sin sesión, ErrForbidden si no es propietario.
func Require(sessionUserID, ownerUserID string) error {
	if sessionUserID == "" {
		return domain.ErrUnauthenticated
	}
	if !IsAuthorized(sessionUserID, ownerUserID) {
		return domain.ErrForbidden
	}
	return nil
}
