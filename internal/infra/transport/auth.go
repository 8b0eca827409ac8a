// Where: internal/infra/transport/auth.go
// What: Credential strategies attached to every backend request.
// Why: iconik uses app headers, portal uses HTTP basic auth.
package transport

import "net/http"

// Authenticator attaches credentials to an outgoing request.
type Authenticator interface {
	Apply(req *http.Request)
}

// HeaderAuth sets fixed credential headers.
type HeaderAuth map[string]string

func (h HeaderAuth) Apply(req *http.Request) {
	for name, value := range h {
		req.Header.Set(name, value)
	}
}

// BasicAuth sets an HTTP basic Authorization header.
type BasicAuth struct {
	Username string
	Password string
}

func (b BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(b.Username, b.Password)
}

var redactedHeaders = map[string]struct{}{
	"Authorization": {},
	"Auth-Token":    {},
}
