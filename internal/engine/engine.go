package engine

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/common"
	"github.com/ilyanormand/fwn-renta/internal/layout"
	"github.com/ilyanormand/fwn-renta/internal/normalize"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

// Engine runs the per-document extraction pipeline. It is stateless across
// documents; a single Engine is safe to share between concurrent workers.
type Engine struct {
	layout layout.Extractor
	logger *slog.Logger
}

func New(extractor layout.Extractor, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{layout: extractor, logger: logger}
}

// Extract runs the full pipeline against a document on disk. Acquisition
// failures abort the run; everything past layout extraction favors partial
// results over failure.
func (e *Engine) Extract(ctx context.Context, prof *profile.Profile, path string) (*Result, error) {
	runID := uuid.NewString()
	logger := e.logger.With("run_id", runID, "vendor", prof.Vendor.Name, "path", path)

	doc, err := e.layout.Extract(ctx, path)
	if err != nil {
		return nil, common.ExtractionError("layout extraction failed", err)
	}
	logger.Info("document acquired", "pages", len(doc.Pages))

	res := e.ExtractDocument(prof, doc)
	logger.Info("extraction complete",
		"items", len(res.OrderItems),
		"validation_findings", len(res.ValidationErrors))
	return res, nil
}

// ExtractDocument runs the pipeline stages over already-acquired layout:
// header fields, table rows, row post-processing, footer fields,
// reconciliation, validation. Stage order matters: footer amounts
// (gross/discount/subtotal) must be in place before reconciliation.
func (e *Engine) ExtractDocument(prof *profile.Profile, doc *layout.Document) *Result {
	if prof.Preprocess == profile.PreprocessDeduplicate {
		doc = &layout.Document{Text: normalize.Deduplicate(doc.Text), Pages: doc.Pages}
	}

	res := NewResult(prof.Vendor)
	applyFieldRules(res, prof.Header.Fields, doc.Text, prof.Vendor.Language)

	rows := newStrategy(prof, e.logger).Extract(doc)
	pipeline := newRowPipeline(prof, e.logger)
	for _, row := range rows {
		if item, ok := pipeline.Process(row); ok {
			res.OrderItems = append(res.OrderItems, item)
		}
	}
	if fee, ok := pipeline.ShippingFee(); ok {
		res.Totals[constants.TotalShippingFee] = fee
	}

	applyFieldRules(res, prof.Footer.Fields, doc.Text, prof.Vendor.Language)
	Reconcile(res, prof.Capabilities, e.logger)
	Validate(res)
	return res
}
