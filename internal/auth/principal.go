package auth

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"saletracker-api/pkg/apierror"
)

// PrincipalHeader is injected by the identity-aware reverse proxy in front of
// the service. The service trusts it without local signature verification.
const PrincipalHeader = "x-ms-client-principal"

// Claim is a single claim forwarded by the identity provider.
type Claim struct {
	Typ string `json:"typ"`
	Val string `json:"val"`
}

// Identity is the resolved caller identity. UserID doubles as the tenant
// partition key for every storage operation.
type Identity struct {
	UserID      string  `json:"userId"`
	UserDetails string  `json:"userDetails"`
	Provider    string  `json:"provider"`
	Claims      []Claim `json:"claims"`
}

// Resolver turns an inbound request into a caller identity, or fails with
// an unauthorized error. Implementations other than the proxy-header decoder
// (e.g. local JWT verification) can be swapped in without touching handlers.
type Resolver interface {
	Resolve(r *http.Request) (*Identity, error)
}

// clientPrincipal is the decoded shape of the proxy header payload.
type clientPrincipal struct {
	UserID           string  `json:"userId"`
	UserDetails      string  `json:"userDetails"`
	IdentityProvider string  `json:"identityProvider"`
	Claims           []Claim `json:"claims"`
}

// PrincipalResolver decodes the base64 JSON client principal header.
type PrincipalResolver struct{}

// NewPrincipalResolver creates the proxy-header identity resolver.
func NewPrincipalResolver() *PrincipalResolver {
	return &PrincipalResolver{}
}

// Resolve extracts the caller identity from the client principal header.
// Missing header, undecodable payload, or a payload without a userId all
// fail closed with a 401.
func (p *PrincipalResolver) Resolve(r *http.Request) (*Identity, error) {
	header := r.Header.Get(PrincipalHeader)
	if header == "" {
		return nil, apierror.Unauthorized("Authentication required. No client principal found.")
	}

	decoded, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return nil, apierror.Unauthorized("Invalid authentication data: " + err.Error())
	}

	var principal clientPrincipal
	if err := json.Unmarshal(decoded, &principal); err != nil {
		return nil, apierror.Unauthorized("Invalid authentication data: " + err.Error())
	}

	if principal.UserID == "" {
		return nil, apierror.Unauthorized("Invalid authentication. User ID not found.")
	}

	identity := &Identity{
		UserID:      principal.UserID,
		UserDetails: principal.UserDetails,
		Provider:    principal.IdentityProvider,
		Claims:      principal.Claims,
	}
	if identity.UserDetails == "" {
		identity.UserDetails = "Unknown User"
	}
	if identity.Provider == "" {
		identity.Provider = "unknown"
	}
	if identity.Claims == nil {
		identity.Claims = []Claim{}
	}

	return identity, nil
}

// UserID resolves the request and returns just the tenant id.
func (p *PrincipalResolver) UserID(r *http.Request) (string, error) {
	identity, err := p.Resolve(r)
	if err != nil {
		return "", err
	}
	return identity.UserID, nil
}

// UserClaims resolves the request and returns just the claims list.
func (p *PrincipalResolver) UserClaims(r *http.Request) ([]Claim, error) {
	identity, err := p.Resolve(r)
	if err != nil {
		return nil, err
	}
	return identity.Claims, nil
}

// IsAuthenticated reports whether the request carries a resolvable identity.
// The resolution error is intentionally swallowed.
func (p *PrincipalResolver) IsAuthenticated(r *http.Request) bool {
	_, err := p.Resolve(r)
	return err == nil
}
