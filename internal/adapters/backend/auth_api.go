package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/beanfield/storefront-gateway/internal/domain/auth"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// Login responses arrive in two shapes depending on the backend version:
// flat {token, user} or nested {data: {token, user}}. The expressions below
// accept either; shape-sniffing stays inside this adapter.
const (
	loginTokenExpr = "token || data.token"
	loginUserExpr  = "user || data.user"
)

// AuthAPI implements ports.AuthAPI against the commerce API.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth surface of the commerce API client.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

func (a *AuthAPI) Login(ctx context.Context, in ports.LoginInput) (domainauth.Identity, string, error) {
	body, err := a.client.do(ctx, requestParams{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body: map[string]string{
			"email":    in.Email,
			"password": in.Password,
		},
	})
	if err != nil {
		return domainauth.Identity{}, "", err
	}

	return normalizeLoginResponse(body)
}

// normalizeLoginResponse maps any accepted response shape into the
// canonical identity+token pair.
func normalizeLoginResponse(body []byte) (domainauth.Identity, string, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return domainauth.Identity{}, "", fmt.Errorf("decode login response: %w", err)
	}

	rawToken, err := jmespath.Search(loginTokenExpr, payload)
	if err != nil {
		return domainauth.Identity{}, "", fmt.Errorf("extract token: %w", err)
	}
	token, ok := rawToken.(string)
	if !ok || token == "" {
		return domainauth.Identity{}, "", fmt.Errorf("login response has no token")
	}

	rawUser, err := jmespath.Search(loginUserExpr, payload)
	if err != nil {
		return domainauth.Identity{}, "", fmt.Errorf("extract user: %w", err)
	}
	if rawUser == nil {
		return domainauth.Identity{}, "", fmt.Errorf("login response has no user")
	}

	// Round-trip the extracted user through JSON so the Role codec applies.
	userJSON, err := json.Marshal(rawUser)
	if err != nil {
		return domainauth.Identity{}, "", fmt.Errorf("re-encode user: %w", err)
	}
	var identity domainauth.Identity
	if err := json.Unmarshal(userJSON, &identity); err != nil {
		return domainauth.Identity{}, "", fmt.Errorf("decode identity: %w", err)
	}
	if !identity.Role.Valid() {
		return domainauth.Identity{}, "", fmt.Errorf("login response identity has invalid role")
	}

	return identity, token, nil
}

func (a *AuthAPI) Register(ctx context.Context, in ports.RegisterInput) error {
	payload := map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
	}
	if in.Phone != "" {
		payload["phone"] = in.Phone
	}
	if in.Address != "" {
		payload["address"] = in.Address
	}

	_, err := a.client.do(ctx, requestParams{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   payload,
	})
	return err
}

func (a *AuthAPI) Profile(ctx context.Context, token string) (domainauth.Identity, error) {
	body, err := a.client.do(ctx, requestParams{
		Method: http.MethodGet,
		Path:   "/auth/profile",
		Token:  token,
	})
	if err != nil {
		// Any non-2xx answer on revalidation means the stored token is no
		// longer good. Only an unreachable backend is not a verdict.
		var netErr *domainauth.NetworkError
		if errors.As(err, &netErr) {
			return domainauth.Identity{}, err
		}
		return domainauth.Identity{}, domainauth.ErrSessionExpired
	}

	var identity domainauth.Identity
	if err := decodeInto(body, &identity); err != nil {
		return domainauth.Identity{}, err
	}
	return identity, nil
}

func (a *AuthAPI) UpdateProfile(ctx context.Context, token string, in ports.ProfileUpdate) (domainauth.Identity, error) {
	payload := map[string]string{}
	if in.Name != "" {
		payload["name"] = in.Name
	}
	if in.Email != "" {
		payload["email"] = in.Email
	}
	if in.Phone != "" {
		payload["phone"] = in.Phone
	}
	if in.Address != "" {
		payload["address"] = in.Address
	}

	body, err := a.client.do(ctx, requestParams{
		Method: http.MethodPut,
		Path:   "/auth/profile",
		Token:  token,
		Body:   payload,
	})
	if err != nil {
		return domainauth.Identity{}, err
	}

	var identity domainauth.Identity
	if err := decodeInto(body, &identity); err != nil {
		return domainauth.Identity{}, err
	}
	return identity, nil
}
