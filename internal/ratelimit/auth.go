package ratelimit

import (
	"net/http"
)

// AuthKind identifies how requests are authenticated.
type AuthKind int

const (
	// AuthAnonymous sends no credentials.
	AuthAnonymous AuthKind = iota
	// AuthBasic sends HTTP basic credentials (login + password).
	AuthBasic
	// AuthToken sends a personal access token.
	AuthToken
)

// Default quotas GitHub grants before any response has been seen.
const (
	AnonymousCapacity     = 60
	AuthenticatedCapacity = 5000
)

// String returns a human-readable name for the auth kind.
func (k AuthKind) String() string {
	switch k {
	case AuthAnonymous:
		return "anonymous"
	case AuthBasic:
		return "basic"
	case AuthToken:
		return "token"
	default:
		return "unknown"
	}
}

// AuthMode carries the credentials for one of the AuthKind variants.
// Only the fields belonging to Kind are meaningful.
type AuthMode struct {
	Kind     AuthKind
	Login    string
	Password string
	Token    string
}

// Anonymous returns an AuthMode that sends no credentials.
func Anonymous() AuthMode {
	return AuthMode{Kind: AuthAnonymous}
}

// BasicLogin returns an AuthMode using HTTP basic authentication.
func BasicLogin(login, password string) AuthMode {
	return AuthMode{Kind: AuthBasic, Login: login, Password: password}
}

// Token returns an AuthMode using a personal access token.
func Token(token string) AuthMode {
	return AuthMode{Kind: AuthToken, Token: token}
}

// InitialCapacity is the quota assumed before the first successful fetch.
// It only sizes the gauge until real data arrives.
func (a AuthMode) InitialCapacity() int {
	if a.Kind == AuthAnonymous {
		return AnonymousCapacity
	}
	return AuthenticatedCapacity
}

// Apply attaches the credentials to req.
func (a AuthMode) Apply(req *http.Request) {
	switch a.Kind {
	case AuthBasic:
		req.SetBasicAuth(a.Login, a.Password)
	case AuthToken:
		req.Header.Set("Authorization", "token "+a.Token)
	}
}

// String describes the auth mode without revealing secrets.
func (a AuthMode) String() string {
	switch a.Kind {
	case AuthBasic:
		return "basic (" + a.Login + ")"
	case AuthToken:
		return "token (" + maskToken(a.Token) + ")"
	default:
		return a.Kind.String()
	}
}

// maskToken keeps the last four characters of a token.
func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return "****" + token[len(token)-4:]
}
