// internal/form/submit.go
//
// Pizza – Forms subsystem: order submission.
//
// Context
//   Submitter POSTs a valid draft as JSON to `<base>/api/order` and turns the
//   response into a message for the user.  A 2xx status yields the order
//   confirmation.  Anything else, including transport and decode failures,
//   yields a *SubmissionError whose Message is either the server's `message`
//   field or the generic “Failed to place order”.
//
//   Submitter never retries.  A retried POST could place the same order
//   twice.  Timeouts come from the http.Client.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"

	"github.com/yanizio/pizzaorder/internal/metrics"
)

const (
	// OrderPath is the order endpoint relative to the base URL.
	OrderPath = "/api/order"
	// DefaultBaseURL is the local order API.
	DefaultBaseURL = "http://localhost:9009"
	// MsgSubmitFailed is shown when the server gives no reason.
	MsgSubmitFailed = "Failed to place order"

	maxReplyBytes = 1 << 20
)

// OrderRequest is the JSON body of POST /api/order.
type OrderRequest struct {
	FullName string   `json:"fullName"`
	Size     string   `json:"size"`
	Toppings []string `json:"toppings"`
}

// orderReply is the subset of the response body the client reads.
type orderReply struct {
	Message string `json:"message"`
}

// Submitter sends drafts to the order API.  It is safe for concurrent use.
type Submitter struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	catalog  *Catalog
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithHTTPClient replaces the pooled default client.  The client itself is
// never modified.
func WithHTTPClient(c *http.Client) SubmitterOption {
	return func(s *Submitter) { s.client = c }
}

// WithTimeout bounds each request, whichever client is in use and in
// whatever order the options come.  Zero keeps the client's setting.
func WithTimeout(d time.Duration) SubmitterOption {
	return func(s *Submitter) { s.timeout = d }
}

// NewSubmitter targets baseURL (DefaultBaseURL when empty) and maps topping
// ids through catalog when building confirmations.
func NewSubmitter(baseURL string, catalog *Catalog, opts ...SubmitterOption) *Submitter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	s := &Submitter{
		endpoint: strings.TrimRight(baseURL, "/") + OrderPath,
		client:   cleanhttp.DefaultPooledClient(),
		catalog:  catalog,
	}
	for _, o := range opts {
		o(s)
	}
	if s.timeout > 0 {
		c := *s.client
		c.Timeout = s.timeout
		s.client = &c
	}
	return s
}

// Endpoint returns the full order URL.
func (s *Submitter) Endpoint() string { return s.endpoint }

// Submit posts d and returns the confirmation message.  Every failure is a
// *SubmissionError.
func (s *Submitter) Submit(ctx context.Context, d Draft) (string, error) {
	msg, err := s.submit(ctx, d)
	if err != nil {
		metrics.ClientSubmissionsTotal.WithLabelValues("failure").Inc()
		zap.S().Errorw("order submission failed", "endpoint", s.endpoint, "err", err)
		return "", err
	}
	metrics.ClientSubmissionsTotal.WithLabelValues("success").Inc()
	return msg, nil
}

func (s *Submitter) submit(ctx context.Context, d Draft) (string, error) {
	payload := NewOrderRequest(d)
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &SubmissionError{Message: MsgSubmitFailed, Err: err}
	}

	zap.S().Debugw("submitting order",
		"endpoint", s.endpoint,
		"full_name", payload.FullName,
		"size", payload.Size,
		"toppings", payload.Toppings,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &SubmissionError{Message: MsgSubmitFailed, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &SubmissionError{Message: MsgSubmitFailed, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return "", &SubmissionError{Status: resp.StatusCode, Message: MsgSubmitFailed, Err: err}
	}

	var reply orderReply
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &reply); err != nil {
			return "", &SubmissionError{
				Status:  resp.StatusCode,
				Message: MsgSubmitFailed,
				Err:     fmt.Errorf("decode response: %w", err),
			}
		}
	}
	zap.S().Debugw("order response", "status", resp.StatusCode, "message", reply.Message)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := reply.Message
		if msg == "" {
			msg = MsgSubmitFailed
		}
		return "", &SubmissionError{Status: resp.StatusCode, Message: msg}
	}

	return Confirmation(d, s.catalog), nil
}

// NewOrderRequest builds the wire payload.  The name is trimmed and
// toppings is never null.
func NewOrderRequest(d Draft) OrderRequest {
	toppings := d.Toppings
	if toppings == nil {
		toppings = []string{}
	}
	return OrderRequest{
		FullName: d.Name(),
		Size:     string(d.Size),
		Toppings: toppings,
	}
}

// Confirmation renders the success message for d.
func Confirmation(d Draft, c *Catalog) string {
	return fmt.Sprintf("Thank you for your order, %s! Your %s pizza with %s is on the way.",
		d.Name(), strings.ToUpper(string(d.Size)), c.Describe(d.Toppings))
}
