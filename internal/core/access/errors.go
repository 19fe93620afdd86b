package access

import "github.com/contentdesk/cms/internal/core/domain"

// DenialError converts a denied decision into the error the transport layer
// maps to 401 (anonymous) or 403 (authenticated but not allowed).
func DenialError(actor *domain.Actor) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	return domain.ErrForbidden
}
