// Package client talks to the marketplace API on behalf of a signed-in
// vendor.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"

	"kisan-be/internal/apperror"
	"kisan-be/internal/order"
	"kisan-be/internal/vendor"
)

const defaultTimeout = 15 * time.Second

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() (string, error)
}

type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	timeout time.Duration
}

func New(baseURL string, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    httpClient,
		timeout: defaultTimeout,
	}
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Fields  map[string]string `json:"fields"`
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func (c *Client) authorized(flow *dataflow.DataFlow) (*dataflow.DataFlow, error) {
	if c.tokens == nil {
		return nil, apperror.Unauthorized("sign in required")
	}
	tok, err := c.tokens.Token()
	if err != nil {
		return nil, err
	}
	return flow.SetHeader(gout.H{"Authorization": "Bearer " + tok}), nil
}

// do runs flow and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, flow *dataflow.DataFlow, out interface{}) error {
	var env envelope
	var code int

	err := flow.
		WithContext(ctx).
		SetTimeout(c.timeout).
		BindJSON(&env).
		Code(&code).
		Do()
	if err != nil {
		return apperror.Backend(err)
	}

	if code >= http.StatusBadRequest || !env.Success {
		return toError(code, env)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperror.Backend(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func toError(code int, env envelope) error {
	msg := env.Message
	if msg == "" {
		msg = http.StatusText(code)
	}
	switch code {
	case http.StatusBadRequest:
		return apperror.Validation(msg, env.Fields)
	case http.StatusUnauthorized:
		return apperror.Unauthorized(msg)
	case http.StatusForbidden:
		return apperror.Forbidden(msg)
	case http.StatusNotFound:
		return apperror.NotFound(msg)
	case http.StatusConflict:
		return apperror.Conflict(msg)
	default:
		return apperror.Backend(errors.New(msg))
	}
}

func (c *Client) VendorLogin(ctx context.Context, email, password string) (*vendor.Session, error) {
	var sess vendor.Session
	flow := gout.New(c.http).POST(c.url("/vendor/login")).SetJSON(vendor.LoginInput{Email: email, Password: password})
	if err := c.do(ctx, flow, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *Client) VendorMe(ctx context.Context) (*vendor.Vendor, error) {
	flow, err := c.authorized(gout.New(c.http).GET(c.url("/vendor/me")))
	if err != nil {
		return nil, err
	}
	var v vendor.Vendor
	if err := c.do(ctx, flow, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) ListVendorOrders(ctx context.Context) ([]*order.Order, error) {
	flow, err := c.authorized(gout.New(c.http).GET(c.url("/vendor/orders")))
	if err != nil {
		return nil, err
	}
	var orders []*order.Order
	if err := c.do(ctx, flow, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) AdvanceStatus(ctx context.Context, orderID uint, target order.Status) (*order.Order, error) {
	path := fmt.Sprintf("/vendor/orders/%d/status", orderID)
	flow, err := c.authorized(gout.New(c.http).PATCH(c.url(path)).SetJSON(gout.H{"status": target}))
	if err != nil {
		return nil, err
	}
	var o order.Order
	if err := c.do(ctx, flow, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
