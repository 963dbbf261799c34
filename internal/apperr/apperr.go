package apperr

import (
	"errors"
	"net/http"
)

// Erreurs typées remontées par les couches métier vers les handlers.
var (
	ErrUnauthorized = errors.New("utilisateur non authentifié")
	ErrNotFound     = errors.New("ressource non trouvée")
	ErrConflict     = errors.New("ressource déjà existante")
	ErrInvalid      = errors.New("données invalides")
)

// Status traduit une erreur métier en code HTTP.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
