package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/chirag14252/challan-app/internal/archive"
	"github.com/chirag14252/challan-app/internal/derive"
	"github.com/chirag14252/challan-app/internal/export"
	"github.com/chirag14252/challan-app/internal/model"
	"github.com/chirag14252/challan-app/internal/preprocess"
	"github.com/chirag14252/challan-app/internal/sheets"
	"github.com/chirag14252/challan-app/internal/vision"
)

var (
	ErrReaderNil       = errors.New("reader is nil")
	ErrDocumentNil     = errors.New("document is required")
	ErrModelNotAllowed = errors.New("model is not on the allow-list")
)

// ExtractResult is what one extraction action hands back to the shell: the
// document to review, and a time-limited link to the archived photo when
// archiving is configured.
type ExtractResult struct {
	Document *model.ExtractedDocument `json:"document"`
	PhotoURL string                   `json:"photo_url,omitempty"`
}

// SubmitResult pairs the rows that were derived at submission time with the
// classified outcome of sending them.
type SubmitResult struct {
	Rows    []model.OutputRow
	Outcome sheets.Outcome
}

// ChallanService defines the use cases behind the HTTP handlers. Each call
// is one blocking round trip; nothing is held between calls.
type ChallanService interface {
	// Extract reads the uploaded photo, optionally enhances and archives it,
	// and runs vision extraction. modelID must be empty or on the allow-list.
	Extract(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, modelID string) (*ExtractResult, error)

	// Submit derives rows from the reviewed document at the current clock
	// reading and sends them to the sheet endpoint. scriptURL and secret
	// override the configured values when non-empty.
	Submit(ctx context.Context, doc *model.ExtractedDocument, scriptURL, secret string) (*SubmitResult, error)

	// ExportXLSX derives rows the same way Submit would and writes them as a
	// workbook. Returns the number of rows written.
	ExportXLSX(doc *model.ExtractedDocument, w io.Writer) (int, error)

	// ListModels returns the usable vision model ids for the configured key.
	ListModels(ctx context.Context) ([]string, error)

	// CheckKey verifies the configured vision credential.
	CheckKey(ctx context.Context) error
}

// challanService is the concrete ChallanService.
type challanService struct {
	extractor vision.Extractor
	submitter sheets.Submitter
	photos    archive.Store // nil when archiving is disabled
	enhance   bool
	now       func() time.Time
	log       *slog.Logger
}

// NewChallanService constructs the service. photos may be nil.
func NewChallanService(ex vision.Extractor, sub sheets.Submitter, photos archive.Store, enhanceUploads bool, logger *slog.Logger) ChallanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &challanService{
		extractor: ex,
		submitter: sub,
		photos:    photos,
		enhance:   enhanceUploads,
		now:       time.Now,
		log:       logger,
	}
}

func (s *challanService) Extract(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, modelID string) (*ExtractResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if modelID != "" && !vision.ModelAllowed(modelID) {
		return nil, ErrModelNotAllowed
	}

	image, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	if s.enhance {
		// enhancement is best-effort: an undecodable-but-maybe-usable upload
		// still goes to the model as-is
		if enhanced, eErr := preprocess.Enhance(bytes.NewReader(image)); eErr == nil {
			image = enhanced
			contentType = preprocess.EnhancedMIMEType
		} else {
			s.log.Warn("challan.extract.enhance_skipped", "error", eErr, "filename", originalFilename)
		}
	}

	photoURL := s.archivePhoto(ctx, image, originalFilename, contentType)

	doc, err := s.extractor.Extract(ctx, image, contentType, modelID)
	if err != nil {
		return nil, err
	}
	return &ExtractResult{Document: doc, PhotoURL: photoURL}, nil
}

// archivePhoto stores the photo and returns a presigned review URL. Failures
// only cost the review link, never the extraction, so they are logged and
// swallowed.
func (s *challanService) archivePhoto(ctx context.Context, image []byte, originalFilename, contentType string) string {
	if s.photos == nil {
		return ""
	}

	ext := filepath.Ext(originalFilename)
	if contentType == preprocess.EnhancedMIMEType {
		ext = ".png"
	}
	key := filepath.ToSlash(filepath.Join("challans", uuid.NewString()+ext))

	_, err := s.photos.Put(ctx, key, bytes.NewReader(image), archive.PutOptions{
		Size:        int64(len(image)),
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": originalFilename},
	})
	if err != nil {
		s.log.Warn("challan.extract.archive_failed", "error", err, "key", key)
		return ""
	}

	url, err := s.photos.PresignGet(ctx, key, time.Hour)
	if err != nil {
		s.log.Warn("challan.extract.presign_failed", "error", err, "key", key)
		return ""
	}
	return url
}

func (s *challanService) Submit(ctx context.Context, doc *model.ExtractedDocument, scriptURL, secret string) (*SubmitResult, error) {
	if doc == nil {
		return nil, ErrDocumentNil
	}
	rows := derive.Rows(doc, s.now())
	outcome := s.submitter.Submit(ctx, rows, scriptURL, secret)
	return &SubmitResult{Rows: rows, Outcome: outcome}, nil
}

func (s *challanService) ExportXLSX(doc *model.ExtractedDocument, w io.Writer) (int, error) {
	if doc == nil {
		return 0, ErrDocumentNil
	}
	rows := derive.Rows(doc, s.now())
	if err := export.WriteXLSX(rows, w); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ListModels narrows the remotely available models down to the fixed
// allow-list, so the client can only offer choices Extract would accept.
func (s *challanService) ListModels(ctx context.Context) ([]string, error) {
	available, err := s.extractor.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	models := make([]string, 0, len(vision.AllowedModels))
	for _, id := range available {
		if vision.ModelAllowed(id) {
			models = append(models, id)
		}
	}
	return models, nil
}

func (s *challanService) CheckKey(ctx context.Context) error {
	return s.extractor.CheckKey(ctx)
}
