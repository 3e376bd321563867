// Package session resolves which company a request acts for.
package session

import (
	"errors"
	"net/http"
)

// Identity is the resolved caller. The zero value means "no identity".
type Identity struct {
	CompanyID uint   `json:"companyId"`
	Code      string `json:"code"`
	Name      string `json:"name"`
}

func (i Identity) Valid() bool {
	return i.CompanyID != 0
}

// ErrNoIdentity is returned by resolvers when the request carries nothing
// usable. Callers treat it as an anonymous request, not a failure.
var ErrNoIdentity = errors.New("no company identity")

// Resolver produces the identity for an inbound request.
type Resolver interface {
	Resolve(r *http.Request) (Identity, error)
}
