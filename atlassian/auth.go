package atlassian

import (
	"errors"
	"net/http"
	"strings"
)

type AuthProvider interface {
	Apply(req *http.Request) error
}

// BasicAPITokenAuth authenticates with an Atlassian account email and API token.
type BasicAPITokenAuth struct {
	Email string
	Token string
}

func (a BasicAPITokenAuth) Apply(req *http.Request) error {
	if strings.TrimSpace(a.Email) == "" || strings.TrimSpace(a.Token) == "" {
		return errors.New("email and token required for basic auth")
	}
	req.SetBasicAuth(a.Email, a.Token)
	return nil
}
