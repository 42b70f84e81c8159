package handler

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/chirag14252/challan-app/internal/config"
	"github.com/chirag14252/challan-app/internal/model"
	"github.com/chirag14252/challan-app/internal/service"
	"github.com/chirag14252/challan-app/internal/sheets"
	"github.com/chirag14252/challan-app/internal/vision"
)

// extractResponse is the body of a successful POST /extract. The document is
// handed to the client here and posted back on /submit; nothing is held
// server-side between the two calls.
type extractResponse struct {
	Document *model.ExtractedDocument `json:"document"`
	PhotoURL string                   `json:"photo_url,omitempty"`
}

type submitRequest struct {
	Document *model.ExtractedDocument `json:"document"`
	// ScriptURL and Secret override the configured sheet endpoint when set.
	ScriptURL string `json:"script_url"`
	Secret    string `json:"secret"`
}

type submitResponse struct {
	Status        string `json:"status"`
	RowsSubmitted int    `json:"rows_submitted"`
}

type exportRequest struct {
	Document *model.ExtractedDocument `json:"document"`
}

// HealthCheck reports readiness: whether the upstream credentials this
// service cannot work without are configured.
func HealthCheck(cfg *config.AppConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.Gemini.APIKey == "" {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "gemini api key is not configured")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":            "healthy",
			"gemini_configured": true,
			"sheets_configured": cfg.Sheets.ScriptURL != "",
		})
	}
}

// LivenessProbe is a plain process-up check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ExtractChallan accepts a multipart challan photo (field name: image) and
// returns the extracted document. maxUploadBytes caps the accepted photo size.
func ExtractChallan(svc service.ChallanService, maxUploadBytes int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("image")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "image file is required")
		}
		if maxUploadBytes > 0 && fh.Size > maxUploadBytes {
			return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file exceeds the size limit")
		}

		ct := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "image/") {
			return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "upload must be an image")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := svc.Extract(c.UserContext(), f, fh.Filename, ct, fh.Size, c.FormValue("model"))
		if err != nil {
			if errors.Is(err, service.ErrModelNotAllowed) {
				return writeError(c, fiber.StatusBadRequest, "MODEL_NOT_ALLOWED", "model is not on the allow-list")
			}
			return visionError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(extractResponse{
			Document: res.Document,
			PhotoURL: res.PhotoURL,
		})
	}
}

// SubmitChallan derives rows from the reviewed document and posts them to the
// sheet endpoint. The sheet's own response text decides the outcome.
func SubmitChallan(svc service.ChallanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req submitRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if req.Document == nil {
			return writeError(c, fiber.StatusBadRequest, "DOCUMENT_REQUIRED", "document is required")
		}

		res, err := svc.Submit(c.UserContext(), req.Document, req.ScriptURL, req.Secret)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		out := res.Outcome
		switch out.Status {
		case sheets.StatusSuccess:
			return c.Status(fiber.StatusOK).JSON(submitResponse{
				Status:        "success",
				RowsSubmitted: len(res.Rows),
			})
		case sheets.StatusAuthRejected:
			return writeErrorDetail(c, fiber.StatusUnauthorized, "SHEET_UNAUTHORIZED", "sheet endpoint rejected the secret key", out.Body)
		case sheets.StatusFormatRejected:
			return writeErrorDetail(c, fiber.StatusBadGateway, "SHEET_INVALID_FORMAT", "sheet endpoint rejected the data format", out.Body)
		case sheets.StatusEmptyPayloadRejected:
			return writeErrorDetail(c, fiber.StatusBadGateway, "SHEET_EMPTY_PAYLOAD", "sheet endpoint received no payload", out.Body)
		case sheets.StatusTimeout:
			return writeErrorDetail(c, fiber.StatusGatewayTimeout, "SHEET_TIMEOUT", "sheet endpoint did not respond in time", out.Err)
		case sheets.StatusNetworkError:
			return writeErrorDetail(c, fiber.StatusBadGateway, "SHEET_NETWORK_ERROR", "could not reach the sheet endpoint", out.Err)
		default:
			return writeErrorDetail(c, fiber.StatusBadGateway, "SHEET_UNKNOWN_RESPONSE", "sheet endpoint returned an unrecognized response", out.Body)
		}
	}
}

// ExportChallan renders the derived rows as an XLSX workbook download.
func ExportChallan(svc service.ChallanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req exportRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if req.Document == nil {
			return writeError(c, fiber.StatusBadRequest, "DOCUMENT_REQUIRED", "document is required")
		}

		var buf bytes.Buffer
		if _, err := svc.ExportXLSX(req.Document, &buf); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "EXPORT_FAILED", "could not build the workbook")
		}

		filename := "challan_rows.xlsx"
		if n := strings.TrimSpace(req.Document.ChallanInfo.ChallanNumber); n != "" {
			filename = fmt.Sprintf("challan_%s.xlsx", n)
		}
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	}
}

// ListModels returns the model ids usable with the configured credential.
func ListModels(svc service.ChallanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		models, err := svc.ListModels(c.UserContext())
		if err != nil {
			return visionError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"models": models})
	}
}

// TestAPIKey runs a minimal generation to verify the configured credential.
func TestAPIKey(svc service.ChallanService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.CheckKey(c.UserContext()); err != nil {
			return visionError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	}
}

// visionError maps a classified extraction failure onto the error contract.
// The raw upstream response rides along in detail since the user has no other
// way to see what the model service said.
func visionError(c *fiber.Ctx, err error) error {
	var ve *vision.Error
	if !errors.As(err, &ve) {
		return writeError(c, fiber.StatusBadGateway, "EXTRACTION_FAILED", "extraction failed")
	}

	var status int
	var code string
	switch ve.Kind {
	case vision.KindAuthRejected:
		status, code = fiber.StatusUnauthorized, "AUTH_REJECTED"
	case vision.KindQuotaExceeded:
		status, code = fiber.StatusTooManyRequests, "QUOTA_EXCEEDED"
	case vision.KindModelUnavailable:
		status, code = fiber.StatusNotFound, "MODEL_UNAVAILABLE"
	case vision.KindContentRejected:
		status, code = fiber.StatusUnprocessableEntity, "CONTENT_REJECTED"
	case vision.KindNoJSONFound:
		status, code = fiber.StatusBadGateway, "NO_JSON_FOUND"
	case vision.KindMalformedJSON:
		status, code = fiber.StatusBadGateway, "MALFORMED_JSON"
	default:
		status, code = fiber.StatusBadGateway, "EXTRACTION_FAILED"
	}
	return writeErrorDetail(c, status, code, ve.Hint(), ve.RawResponse)
}
