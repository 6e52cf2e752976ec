package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/securebank/backoffice/internal/model"
	"github.com/valyala/fasthttp"
)

// IdPVerifier asks the external identity provider (cmd/idp) to verify
// credentials. It is wired in instead of the DirectoryVerifier when
// IDENTITY_URL is configured.
type IdPVerifier struct {
	baseURL string
	client  *fasthttp.Client
	timeout time.Duration
}

func NewIdPVerifier(baseURL string, timeout time.Duration) *IdPVerifier {
	return &IdPVerifier{
		baseURL: baseURL,
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout: timeout,
	}
}

type verifyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (v *IdPVerifier) Verify(ctx context.Context, username, password string) (Identity, error) {
	body, err := json.Marshal(verifyRequest{Username: username, Password: password})
	if err != nil {
		return Identity{}, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(v.baseURL + "/verify")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline := time.Now().Add(v.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := v.client.DoDeadline(req, resp, deadline); err != nil {
		return Identity{}, fmt.Errorf("identity provider unreachable: %w", err)
	}

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
		var vr verifyResponse
		if err := json.Unmarshal(resp.Body(), &vr); err != nil {
			return Identity{}, fmt.Errorf("decode identity response: %w", err)
		}
		return Identity{Username: vr.Username, Name: vr.Name, Role: roleFromString(vr.Role)}, nil
	case fasthttp.StatusUnauthorized:
		return Identity{}, ErrInvalidCredentials
	case fasthttp.StatusForbidden:
		return Identity{}, ErrInactiveUser
	default:
		return Identity{}, fmt.Errorf("identity provider returned status %d", resp.StatusCode())
	}
}

func roleFromString(s string) model.Role {
	r := model.Role(s)
	if !r.Valid() {
		return model.RoleEmployee
	}
	return r
}
