// Package vision extracts structured challan data from a photograph using
// the Gemini generateContent API. One extraction is a single synchronous
// request-response exchange: fixed prompt plus image in, free-form text out,
// JSON isolated and coerced into the domain model.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chirag14252/challan-app/internal/model"
)

// AllowedModels is the fixed set of model identifiers a session may choose
// from. The first entry is the recommended default.
var AllowedModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
	"gemini-1.5-pro-latest",
}

// ModelAllowed reports whether id is on the allow-list.
func ModelAllowed(id string) bool {
	for _, m := range AllowedModels {
		if m == id {
			return true
		}
	}
	return false
}

// Extractor is the interface the service layer depends on.
type Extractor interface {
	// Extract sends the image and the fixed prompt to the vision service and
	// returns the coerced document. modelID overrides the configured model
	// when non-empty. Failures are *Error values.
	Extract(ctx context.Context, image []byte, mimeType, modelID string) (*model.ExtractedDocument, error)
	// ListModels returns the ids of remotely available models that support
	// content generation.
	ListModels(ctx context.Context) ([]string, error)
	// CheckKey verifies the configured credential with a trivial text-only
	// generation. A nil error means the key works.
	CheckKey(ctx context.Context) error
}

// Config for the Gemini client.
type Config struct {
	APIKey  string        // required
	BaseURL string        // default https://generativelanguage.googleapis.com
	Model   string        // default AllowedModels[0]
	Timeout time.Duration // default 60s
}

// Client is the Gemini-backed Extractor.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

// NewClient builds a Client, filling config defaults.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Model == "" {
		cfg.Model = AllowedModels[0]
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
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

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func (c *Client) Extract(ctx context.Context, image []byte, mimeType, modelID string) (*model.ExtractedDocument, error) {
	if modelID == "" {
		modelID = c.cfg.Model
	}
	rid := uuid.NewString()
	start := time.Now()

	c.log.Info("vision.extract.start",
		"req_id", rid,
		"model", modelID,
		"image_bytes", len(image),
		"mime_type", mimeType,
	)

	body := generateRequest{Contents: []content{{Parts: []part{
		{Text: extractionPrompt},
		{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	}}}}

	text, err := c.generate(ctx, modelID, body)
	if err != nil {
		c.log.Error("vision.extract.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	doc, err := parseDocument(text)
	if err != nil {
		c.log.Error("vision.extract.parse_failed",
			"req_id", rid, "error", err, "response_len", len(text),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	c.log.Info("vision.extract.ok",
		"req_id", rid,
		"challan_number", doc.ChallanInfo.ChallanNumber,
		"vendor", doc.ChallanInfo.VendorName,
		"line_items", len(doc.TableData),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return doc, nil
}

// CheckKey issues the cheapest possible generation against the default model.
func (c *Client) CheckKey(ctx context.Context) error {
	_, err := c.generate(ctx, c.cfg.Model, generateRequest{
		Contents: []content{{Parts: []part{{Text: "Hello"}}}},
	})
	return err
}

func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1beta/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return nil, classify(resp.StatusCode, raw)
	}

	var listed struct {
		Models []struct {
			Name             string   `json:"name"`
			SupportedMethods []string `json:"supportedGenerationMethods"`
		} `json:"models"`
	}
	if err := json.Unmarshal(raw, &listed); err != nil {
		return nil, &Error{Kind: KindMalformedJSON, RawResponse: string(raw), Err: err}
	}

	var ids []string
	for _, m := range listed.Models {
		for _, method := range m.SupportedMethods {
			if method == "generateContent" {
				ids = append(ids, strings.TrimPrefix(m.Name, "models/"))
				break
			}
		}
	}
	return ids, nil
}

// generate performs one generateContent round trip and returns the first
// candidate's text.
func (c *Client) generate(ctx context.Context, modelID string, body generateRequest) (string, error) {
	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &Error{Kind: KindUnknown, Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return "", classify(resp.StatusCode, raw)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", &Error{Kind: KindMalformedJSON, HTTPStatus: resp.StatusCode, RawResponse: string(raw), Err: err}
	}

	if gr.PromptFeedback.BlockReason != "" {
		return "", &Error{Kind: KindContentRejected, HTTPStatus: resp.StatusCode, RawResponse: string(raw)}
	}
	if len(gr.Candidates) == 0 {
		return "", &Error{Kind: KindUnknown, HTTPStatus: resp.StatusCode, RawResponse: string(raw), Err: errEmptyResponse}
	}
	if gr.Candidates[0].FinishReason == "SAFETY" {
		return "", &Error{Kind: KindContentRejected, HTTPStatus: resp.StatusCode, RawResponse: string(raw)}
	}

	var text strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", &Error{Kind: KindUnknown, HTTPStatus: resp.StatusCode, RawResponse: string(raw), Err: errEmptyResponse}
	}
	return text.String(), nil
}

var errEmptyResponse = fmt.Errorf("empty response text")

// classify maps a non-2xx response onto the error taxonomy. Status codes are
// authoritative; body text is a fallback for services that report auth or
// quota trouble inside a 400.
func classify(status int, body []byte) *Error {
	e := &Error{Kind: KindUnknown, HTTPStatus: status, RawResponse: string(body)}
	lower := strings.ToLower(string(body))

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuthRejected
	case status == http.StatusTooManyRequests:
		e.Kind = KindQuotaExceeded
	case status == http.StatusNotFound:
		e.Kind = KindModelUnavailable
	case strings.Contains(lower, "api key") || strings.Contains(lower, "api_key_invalid"):
		e.Kind = KindAuthRejected
	case strings.Contains(lower, "quota") || strings.Contains(lower, "resource_exhausted"):
		e.Kind = KindQuotaExceeded
	case strings.Contains(lower, "not found"):
		e.Kind = KindModelUnavailable
	case strings.Contains(lower, "safety"):
		e.Kind = KindContentRejected
	}
	return e
}
