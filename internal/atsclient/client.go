// Package atsclient calls the external resume analysis service.
package atsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is where the analysis service listens in local setups.
	DefaultBaseURL = "http://localhost:4000"
	// DefaultTimeout bounds one analysis request.
	DefaultTimeout = 30 * time.Second

	analyzeTextPath = "/resume/analyze-text"
	maxResponseSize = 10 << 20
)

// Client sends resume text to the analysis service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// New creates a Client. An empty baseURL uses DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client posts to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

type errorBody struct {
	Error string `json:"error"`
}

// AnalyzeText posts text to the service and returns its report.
func (c *Client) AnalyzeText(ctx context.Context, text string) (report *types.ATSReport, err error) {
	if strings.TrimSpace(text) == "" {
		err = errors.New("resume text is empty")
		return report, err
	}

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			err = errors.Wrap(err, "rate limit wait")
			return report, err
		}
	}

	var body []byte
	body, err = json.Marshal(analyzeTextRequest{Text: text})
	if err != nil {
		err = errors.Wrap(err, "failed to encode request")
		return report, err
	}

	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzeTextPath, bytes.NewReader(body))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return report, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var resp *http.Response
	resp, err = c.httpClient.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return report, err
	}
	defer func() { _ = resp.Body.Close() }()

	var respBody []byte
	respBody, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return report, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = newRequestError(resp.StatusCode, respBody)
		return report, err
	}

	if err = schemas.ValidateATSReportJSON(respBody); err != nil {
		err = &ReportError{Err: err}
		return report, err
	}

	report = &types.ATSReport{}
	if err = json.Unmarshal(respBody, report); err != nil {
		err = &ReportError{Err: errors.Wrap(err, "failed to decode report")}
		return nil, err
	}

	return report, err
}

func newRequestError(status int, body []byte) *RequestError {
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
		return &RequestError{StatusCode: status, Message: eb.Error}
	}
	return &RequestError{StatusCode: status, Message: http.StatusText(status)}
}
