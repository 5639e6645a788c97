// Package client is a typed HTTP client for the Cuattro API, used by the
// operator CLI. Failures come back as *apperr.Error values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"syscall"
	"time"

	"cuattro/internal/apperr"
	"cuattro/internal/telemetry"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	defaultCatalogTimeout = 10 * time.Second
	maxCatalogAttempts    = 3
)

type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	catalogTimeout time.Duration
	retryInterval  time.Duration
	logger         *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the traced default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCatalogTimeout bounds each catalog fetch attempt.
func WithCatalogTimeout(d time.Duration) Option {
	return func(c *Client) { c.catalogTimeout = d }
}

// WithRetryInterval sets the pause between catalog fetch attempts.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) { c.retryInterval = d }
}

// New builds a client for baseURL. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &http.Client{Transport: telemetry.Transport(nil)},
		tokens:         tokens,
		catalogTimeout: defaultCatalogTimeout,
		retryInterval:  500 * time.Millisecond,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type call struct {
	method string
	path   string
	body   any
	// external marks the AI endpoint: every non-2xx is an external service failure.
	external bool
}

// fetchCatalog runs a read-only catalog call with a per-attempt timeout,
// retrying only when the connection was aborted.
func (c *Client) fetchCatalog(ctx context.Context, path string, out any) error {
	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		actx, cancel := context.WithTimeout(ctx, c.catalogTimeout)
		defer cancel()

		err := c.do(actx, call{method: http.MethodGet, path: path}, out)
		if err == nil {
			return struct{}{}, nil
		}
		if !connectionAborted(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		c.logger.Warn("catalog fetch aborted, retrying",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return struct{}{}, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryInterval)),
		backoff.WithMaxTries(maxCatalogAttempts),
	)
	return err
}

// do sends one logical request. A 401 triggers exactly one token refresh
// and a single resend.
func (c *Client) do(ctx context.Context, req call, out any) error {
	var payload []byte
	if req.body != nil {
		var err error
		if payload, err = json.Marshal(req.body); err != nil {
			return err
		}
	}

	resp, err := c.send(ctx, req, payload, false)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
		resp.Body.Close()
		c.logger.Debug("token rejected, refreshing", zap.String("path", req.path))
		if resp, err = c.send(ctx, req, payload, true); err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Wrap(apperr.Network, "Não foi possível conectar ao servidor. Verifique sua conexão.", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw, req.external)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.Wrap(apperr.InvalidResponseFormat, "Resposta inválida do servidor.", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, req call, payload []byte, refresh bool) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		var token string
		if refresh {
			token, err = c.tokens.Refresh(ctx)
		} else {
			token, err = c.tokens.Token(ctx)
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.Authorization, "Sessão expirada. Faça login novamente.", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, apperr.Wrap(apperr.Network, "Não foi possível conectar ao servidor. Verifique sua conexão.", err)
	}
	return resp, nil
}

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func decodeError(status int, raw []byte, external bool) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	cause := fmt.Errorf("http %d", status)
	if external {
		if body.Error == apperr.InvalidResponseFormat.String() {
			return apperr.Wrap(apperr.InvalidResponseFormat, messageOr(body.Message, "Resposta inválida do assistente. Tente reformular o pedido."), cause)
		}
		if status != http.StatusUnauthorized && status != http.StatusForbidden {
			return apperr.Wrap(apperr.ExternalService, messageOr(body.Message, "O assistente está indisponível no momento. Tente novamente."), cause)
		}
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperr.Wrap(apperr.Authorization, messageOr(body.Message, "Você não tem permissão para realizar esta operação."), cause)
	case http.StatusBadRequest:
		return &apperr.Error{
			Kind:    apperr.Validation,
			Message: messageOr(body.Message, "Dados inválidos. Por favor, verifique as informações."),
			Fields:  body.Errors,
			Err:     cause,
		}
	case http.StatusNotFound:
		return apperr.Wrap(apperr.NotFound, messageOr(body.Message, "Registro não encontrado."), cause)
	case http.StatusConflict:
		return apperr.Wrap(apperr.Conflict, messageOr(body.Message, "O registro já existe."), cause)
	default:
		return apperr.Wrap(apperr.Internal, messageOr(body.Message, "Erro interno. Por favor, tente novamente."), cause)
	}
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

// connectionAborted reports whether the peer dropped the connection mid-request.
func connectionAborted(err error) bool {
	if apperr.KindOf(err) != apperr.Network {
		return false
	}
	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF)
}
