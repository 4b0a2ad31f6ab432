package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"vesta-storefront/pkg/logger"
)

// Client talks to the Vesta business API. Authentication, registration and
// checkout fail loud with a classified *Error; the administrative listings
// degrade to an empty slice on any failure so the dashboard can still render.
type Client struct {
	baseURL string
	http    *http.Client
	verbose bool
}

// New builds a client with separate connect and read timeouts. When verbose is
// set, response bodies are logged at debug level; the body is buffered before
// logging so decoding still sees it in full.
func New(baseURL string, connectTimeout, readTimeout time.Duration, verbose bool) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Timeout:   readTimeout,
		},
		verbose: verbose,
	}
}

// do issues one request and returns the status with the fully buffered body.
// A transport-level failure (no response, or the body cut off mid-read) is
// already classified as Unreachable.
func (c *Client) do(ctx context.Context, method, path, token string, payload interface{}) (int, []byte, *Error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, malformed(method, url, nil, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return 0, nil, malformed(method, url, nil, err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, classifyTransport(method, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, classifyTransport(method, url, err)
	}

	fields := map[string]interface{}{
		"method": method,
		"url":    url,
		"status": resp.StatusCode,
		"took":   time.Since(start),
	}
	if c.verbose {
		fields["body"] = string(body)
	}
	logger.Debug("Gateway call completed", fields)

	return resp.StatusCode, body, nil
}

func (c *Client) post(ctx context.Context, path, token string, payload interface{}) (int, []byte, *Error) {
	return c.do(ctx, http.MethodPost, path, token, payload)
}

func (c *Client) get(ctx context.Context, path, token string) (int, []byte, *Error) {
	return c.do(ctx, http.MethodGet, path, token, nil)
}

// Login authenticates against POST /auth/login. The password is never logged.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	logger.Debug("Attempting login", map[string]interface{}{"email": email})

	status, body, gerr := c.post(ctx, "/auth/login", "", loginRequest{Email: email, Password: password})
	if gerr != nil {
		return nil, gerr
	}
	if status >= 400 {
		return nil, classify(http.MethodPost, c.baseURL+"/auth/login", status, body)
	}

	auth, gerr := unwrap[AuthResponse](http.MethodPost, c.baseURL+"/auth/login", body)
	if gerr != nil {
		return nil, gerr
	}

	logger.Info("Login succeeded", map[string]interface{}{"email": email})
	return &auth, nil
}

// Register creates an account via POST /auth/register. Success is the absence
// of a classified failure.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	status, body, gerr := c.post(ctx, "/auth/register", "", req)
	if gerr != nil {
		return gerr
	}
	if status >= 400 {
		return classify(http.MethodPost, c.baseURL+"/auth/register", status, body)
	}

	logger.Info("Registration succeeded", map[string]interface{}{"email": req.Email})
	return nil
}

// ForgotPassword requests a password reset through the given recovery method
// and returns the server-provided confirmation message.
func (c *Client) ForgotPassword(ctx context.Context, email, method string) (string, error) {
	status, body, gerr := c.post(ctx, "/auth/forgot-password", "", forgotPasswordRequest{Email: email, Method: method})
	if gerr != nil {
		return "", gerr
	}
	if status >= 400 {
		return "", classify(http.MethodPost, c.baseURL+"/auth/forgot-password", status, body)
	}

	msg, gerr := unwrapMessage(http.MethodPost, c.baseURL+"/auth/forgot-password", body)
	if gerr != nil {
		return "", gerr
	}
	return msg, nil
}

// CheckRecoveryMethods reports which recovery channels exist for an account.
func (c *Client) CheckRecoveryMethods(ctx context.Context, email string) (*RecoveryMethods, error) {
	status, body, gerr := c.post(ctx, "/auth/check-recovery-methods", "", emailRequest{Email: email})
	if gerr != nil {
		return nil, gerr
	}
	if status >= 400 {
		return nil, classify(http.MethodPost, c.baseURL+"/auth/check-recovery-methods", status, body)
	}

	methods, gerr := unwrap[RecoveryMethods](http.MethodPost, c.baseURL+"/auth/check-recovery-methods", body)
	if gerr != nil {
		return nil, gerr
	}
	return &methods, nil
}

// ResendConfirmation asks the API to resend the account confirmation email.
func (c *Client) ResendConfirmation(ctx context.Context, email string) (string, error) {
	status, body, gerr := c.post(ctx, "/auth/resend-confirmation", "", emailRequest{Email: email})
	if gerr != nil {
		return "", gerr
	}
	if status >= 400 {
		return "", classify(http.MethodPost, c.baseURL+"/auth/resend-confirmation", status, body)
	}

	msg, gerr := unwrapMessage(http.MethodPost, c.baseURL+"/auth/resend-confirmation", body)
	if gerr != nil {
		return "", gerr
	}
	return msg, nil
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	status, body, gerr := c.post(ctx, "/auth/reset-password", "", resetPasswordRequest{Token: token, NewPassword: newPassword})
	if gerr != nil {
		return "", gerr
	}
	if status >= 400 {
		return "", classify(http.MethodPost, c.baseURL+"/auth/reset-password", status, body)
	}

	msg, gerr := unwrapMessage(http.MethodPost, c.baseURL+"/auth/reset-password", body)
	if gerr != nil {
		return "", gerr
	}
	return msg, nil
}

// SubmitCheckout places the order via POST /ordenes/checkout.
func (c *Client) SubmitCheckout(ctx context.Context, req CheckoutRequest) error {
	logger.Debug("Submitting checkout", map[string]interface{}{
		"buyer_id": req.BuyerID,
		"items":    len(req.Items),
	})

	status, body, gerr := c.post(ctx, "/ordenes/checkout", "", req)
	if gerr != nil {
		return gerr
	}
	if status >= 400 {
		return classify(http.MethodPost, c.baseURL+"/ordenes/checkout", status, body)
	}

	logger.Info("Checkout succeeded", map[string]interface{}{"buyer_id": req.BuyerID})
	return nil
}

// ListOrders fetches every order for the admin dashboard. Any failure,
// including an undecodable body, degrades to an empty listing.
func (c *Client) ListOrders(ctx context.Context, token string) []Order {
	return listOrEmpty[Order](c, ctx, "/ordenes", token)
}

// ListDataSubjectRequests fetches the pending GDPR requests. Degrades to empty
// on any failure.
func (c *Client) ListDataSubjectRequests(ctx context.Context, token string) []DataSubjectRequest {
	return listOrEmpty[DataSubjectRequest](c, ctx, "/derechos/todas", token)
}

// ListClaims fetches the reported claims. Degrades to empty on any failure.
func (c *Client) ListClaims(ctx context.Context, token string) []Claim {
	return listOrEmpty[Claim](c, ctx, "/siniestros", token)
}

func listOrEmpty[T any](c *Client, ctx context.Context, path, token string) []T {
	url := c.baseURL + path

	status, body, gerr := c.get(ctx, path, token)
	if gerr != nil {
		logger.Error(gerr, "Administrative listing unavailable", map[string]interface{}{"url": url})
		return []T{}
	}
	if status >= 400 {
		gerr := classify(http.MethodGet, url, status, body)
		logger.Error(gerr, "Administrative listing unavailable", map[string]interface{}{"url": url})
		return []T{}
	}

	items, gerr := unwrap[[]T](http.MethodGet, url, body)
	if gerr != nil {
		logger.Error(gerr, "Administrative listing unavailable", map[string]interface{}{"url": url})
		return []T{}
	}
	return items
}
