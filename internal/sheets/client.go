// Package sheets submits derived rows to the Google Apps Script endpoint
// that appends them to the spreadsheet. The endpoint answers with plain
// text, so outcomes are classified by substring scan; its contract is owned
// externally and the classification must not be "upgraded" to structured
// parsing unilaterally.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/chirag14252/challan-app/internal/model"
)

// Status is the classified result of one submission attempt.
type Status string

const (
	StatusSuccess              Status = "success"
	StatusAuthRejected         Status = "auth_rejected"
	StatusFormatRejected       Status = "format_rejected"
	StatusEmptyPayloadRejected Status = "empty_payload_rejected"
	StatusUnknownResponse      Status = "unknown_response"
	StatusTimeout              Status = "timeout"
	StatusNetworkError         Status = "network_error"
)

// Outcome describes how a submission ended. Body and HTTPStatus are kept so
// the user can self-diagnose rejections; there is no server-side log on the
// Apps Script side they could read.
type Outcome struct {
	Status     Status
	RowCount   int
	HTTPStatus int
	Body       string
	Err        string
}

// Submitter is the interface the service layer depends on.
type Submitter interface {
	// Submit POSTs the rows to the endpoint. endpointURL and secret override
	// the configured values when non-empty. The outcome is always returned;
	// transport failures are folded into it rather than raised.
	Submit(ctx context.Context, rows []model.OutputRow, endpointURL, secret string) Outcome
}

// Config for the submission client.
type Config struct {
	ScriptURL string        // deployed Apps Script web app URL
	Secret    string        // shared key the script checks
	Timeout   time.Duration // default 30s, no retry on expiry
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// payload is what the Apps Script expects: the shared key plus each row as
// a plain ordered array of 13 strings. The endpoint is order-dependent, not
// key-dependent.
type payload struct {
	Key  string     `json:"key"`
	Data [][]string `json:"data"`
}

func (c *Client) Submit(ctx context.Context, rows []model.OutputRow, endpointURL, secret string) Outcome {
	if endpointURL == "" {
		endpointURL = c.cfg.ScriptURL
	}
	if secret == "" {
		secret = c.cfg.Secret
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, r.Columns())
	}

	body, err := json.Marshal(payload{Key: secret, Data: data})
	if err != nil {
		return Outcome{Status: StatusNetworkError, Err: fmt.Sprintf("encode payload: %v", err)}
	}

	start := time.Now()
	c.log.Info("sheets.submit.start", "endpoint", endpointURL, "rows", len(rows))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		return Outcome{Status: StatusNetworkError, Err: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		out := Outcome{Err: err.Error()}
		if isTimeout(err) {
			out.Status = StatusTimeout
		} else {
			out.Status = StatusNetworkError
		}
		c.log.Error("sheets.submit.transport_error",
			"endpoint", endpointURL, "status", out.Status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return out
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	out := Classify(string(raw))
	out.RowCount = len(rows)
	out.HTTPStatus = resp.StatusCode

	c.log.Info("sheets.submit.response",
		"endpoint", endpointURL,
		"http_status", resp.StatusCode,
		"outcome", out.Status,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}

// Classify scans the response text for the known markers in priority order.
// The order is part of the contract: a body carrying several markers takes
// the first match.
func Classify(body string) Outcome {
	text := strings.TrimSpace(body)
	switch {
	case strings.Contains(text, "Success"):
		return Outcome{Status: StatusSuccess, Body: text}
	case strings.Contains(text, "Unauthorized"):
		return Outcome{Status: StatusAuthRejected, Body: text}
	case strings.Contains(text, "Invalid data format"):
		return Outcome{Status: StatusFormatRejected, Body: text}
	case strings.Contains(text, "No postData received"):
		return Outcome{Status: StatusEmptyPayloadRejected, Body: text}
	default:
		return Outcome{Status: StatusUnknownResponse, Body: text}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
