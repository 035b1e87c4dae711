package api

import (
	"net/http"

	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/client/session"
)

// authTransport intercepts every outbound request, the HTTP analog of a
// client-side unary interceptor.
//
// Before send: when the session holds a credential it is attached as a
// bearer authorization header; otherwise the request goes out
// unauthenticated. On response: a 401 forcibly clears the session and
// redirects to the login view before the error reaches the caller — any
// endpoint can trigger the forced logout.
type authTransport struct {
	session  *session.Store
	navigate guard.Navigator
	base     http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if tok := t.session.Token(); tok != "" {
		r.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.session.Logout(req.Context())
		if t.navigate != nil {
			t.navigate(guard.RouteLogin)
		}
	}

	return resp, nil
}
