package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/pkg/apperrors"
	"github.com/amrelfalogy/smarted/internal/pkg/auth"
	"github.com/amrelfalogy/smarted/internal/pkg/credstore"
)

// maxErrorBody caps how much of a failed response body is kept on HTTPError
const maxErrorBody = 64 * 1024

var validate = validator.New()

// BaseClient holds what every resource client shares: the backend base URL,
// the transport and the credential store the bearer token is read from.
type BaseClient struct {
	baseURL string
	http    *http.Client
	tokens  credstore.Store
}

// NewBaseClient creates a BaseClient. A nil httpClient uses http.DefaultClient
// and a nil store sends requests without Authorization.
func NewBaseClient(baseURL string, httpClient *http.Client, tokens credstore.Store) *BaseClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
	}
}

// BaseURL returns the backend base URL without a trailing slash
func (c *BaseClient) BaseURL() string {
	return c.baseURL
}

// op identifies one client call in logs
type op struct {
	resource  string
	operation string
	id        string
}

func (o op) log(l zerolog.Logger, err error) {
	ev := l.Error().Err(err).Str("resource", o.resource).Str("operation", o.operation)
	if o.id != "" {
		ev = ev.Str("id", o.id)
	}
	if status := apperrors.StatusCode(err); status != 0 {
		ev = ev.Int("status", status)
	}
	ev.Msg("Backend request failed")
}

func (c *BaseClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := credstore.Token(c.tokens); token != "" {
		req.Header.Set("Authorization", auth.BearerHeader(token))
	}
	return req, nil
}

// send performs req once and turns transport failures and non-2xx answers into
// typed errors. The returned body is fully read.
func (c *BaseClient) send(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &apperrors.TransportError{Method: req.Method, URL: req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.TransportError{Method: req.Method, URL: req.URL.Path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &apperrors.HTTPError{
			Method: req.Method,
			URL:    req.URL.Path,
			Status: resp.StatusCode,
			Body:   body,
		}
	}
	return body, nil
}

// doJSON sends in (when non-nil) as JSON and returns the raw response body.
// Any failure is logged with o's context and returned unchanged.
func (c *BaseClient) doJSON(ctx context.Context, l zerolog.Logger, o op, method, path string, in interface{}) (json.RawMessage, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			err = fmt.Errorf("failed to encode %s payload: %w", o.resource, err)
			o.log(l, err)
			return nil, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		o.log(l, err)
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.send(req)
	if err != nil {
		o.log(l, err)
		return nil, err
	}
	return raw, nil
}

// decodeWith runs an endpoint-specific unwrap function over raw and logs decode failures.
func decodeWith[T any](l zerolog.Logger, o op, raw json.RawMessage, unwrap func(json.RawMessage) (T, error)) (T, error) {
	v, err := unwrap(raw)
	if err != nil {
		err = fmt.Errorf("failed to decode %s response: %w", o.resource, err)
		o.log(l, err)
	}
	return v, err
}

// validatePayload runs struct validation on a request payload before it is sent.
func validatePayload(l zerolog.Logger, o op, payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		verr := apperrors.NewValidationError(formatValidationError(err))
		o.log(l, verr)
		return verr
	}
	return nil
}

func formatValidationError(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_without":
			parts = append(parts, fe.Field()+" is required")
		case "excluded_with":
			parts = append(parts, fe.Field()+" cannot be combined with "+fe.Param())
		case "oneof":
			parts = append(parts, fe.Field()+" must be one of ["+fe.Param()+"]")
		case "gte", "min":
			parts = append(parts, fe.Field()+" must be at least "+fe.Param())
		case "max":
			parts = append(parts, fe.Field()+" must be at most "+fe.Param())
		default:
			parts = append(parts, fe.Field()+" is invalid ("+fe.Tag()+")")
		}
	}
	return strings.Join(parts, "; ")
}

// isJSONArray reports whether raw holds a top-level JSON array
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// hasKey reports whether raw is an object with the given top-level key
func hasKey(raw json.RawMessage, key string) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	_, ok := probe[key]
	return ok
}

func escapeID(id string) string {
	return "/" + url.PathEscape(id)
}
