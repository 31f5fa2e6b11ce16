package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmgilman/go/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// UnavailableMessage is shown whenever no usable Google credentials can be
// found or refreshed.
const UnavailableMessage = `******************************************************************************
* ERROR: Unable to access your Google credentials.                           *
*                                                                            *
* This is most often caused by either                                        *
*     (a) gcloud not being installed (see https://cloud.google.com/sdk/)     *
*     (b) gcloud not being logged in                                         *
*         (run 'gcloud auth application-default login')                      *
******************************************************************************`

// ErrUnavailable marks credential resolution failures.
var ErrUnavailable = stderrors.New("credentials unavailable")

// defaultScopes are the scopes FireCloud expects on user tokens.
var defaultScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// Decorator authorizes outgoing requests by wrapping a transport.
type Decorator func(base http.RoundTripper) http.RoundTripper

// Resolver produces a Decorator, or an error wrapping ErrUnavailable.
type Resolver interface {
	Resolve(ctx context.Context) (Decorator, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context) (Decorator, error)

func (f ResolverFunc) Resolve(ctx context.Context) (Decorator, error) {
	return f(ctx)
}

// GoogleResolver resolves Google application-default credentials, which
// are most often the user's gcloud login. Every call to Resolve performs a
// fresh lookup; nothing is cached between calls.
type GoogleResolver struct {
	scopes []string
	logger *slog.Logger
	find   func(ctx context.Context, scopes ...string) (*google.Credentials, error)
}

// NewGoogleResolver returns a resolver for application-default credentials.
func NewGoogleResolver(logger *slog.Logger) *GoogleResolver {
	return &GoogleResolver{
		scopes: defaultScopes,
		logger: logger,
		find:   google.FindDefaultCredentials,
	}
}

// Resolve looks up credentials and mints an access token for them.
func (r *GoogleResolver) Resolve(ctx context.Context) (Decorator, error) {
	creds, err := r.find(ctx, r.scopes...)
	if err != nil {
		return nil, Unavailable(err)
	}

	token, err := creds.TokenSource.Token()
	if err != nil {
		return nil, Unavailable(err)
	}

	r.logger.Debug("resolved application default credentials",
		"project_id", creds.ProjectID,
		"token_type", token.Type(),
	)
	return Bearer(token), nil
}

// Static returns a resolver that always authorizes with the given access
// token.
func Static(accessToken string) Resolver {
	token := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	return ResolverFunc(func(context.Context) (Decorator, error) {
		return Bearer(token), nil
	})
}

// Bearer returns a Decorator that sets the token's Authorization header on
// every request.
func Bearer(token *oauth2.Token) Decorator {
	return func(base http.RoundTripper) http.RoundTripper {
		if base == nil {
			base = http.DefaultTransport
		}
		return &tokenTransport{token: token, base: base}
	}
}

// Unavailable wraps a resolution failure in the user-facing diagnostic.
func Unavailable(cause error) errors.PlatformError {
	if cause == nil {
		cause = ErrUnavailable
	} else {
		cause = fmt.Errorf("%w: %w", ErrUnavailable, cause)
	}
	return errors.Wrap(cause, errors.CodeUnauthorized, UnavailableMessage)
}

// IsUnavailable reports whether err came from credential resolution.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// tokenTransport is a custom http.RoundTripper that adds the Authorization header.
type tokenTransport struct {
	token *oauth2.Token
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid mutating the original
	r := req.Clone(req.Context())
	t.token.SetAuthHeader(r)
	return t.base.RoundTrip(r)
}
