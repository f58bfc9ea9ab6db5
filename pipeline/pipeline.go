// Package pipeline orchestrates asynchronous document enrichment: a fixed
// graph of retryable stages (metadata, content, summary, screenshot) that
// share one document record through partial-field updates.
//
// The graph is static: metadata runs first and, when it completes, dispatches
// content and screenshot in parallel; content dispatches summary only when it
// wrote new content. Metadata and content failures are hard (logged, record
// left in its last-good partial state); screenshot and summary failures are
// soft (logged and swallowed).
package pipeline

import (
	"context"
	"log/slog"

	"github.com/fwojciec/locket"
)

// Config holds the pipeline's collaborators.
type Config struct {
	Documents  locket.DocumentService
	Fetcher    locket.Fetcher
	Metadata   locket.MetadataExtractor
	Extractors []locket.Extractor // tried in order; first non-empty result wins
	Converter  locket.Converter
	Summarizer locket.Summarizer

	// Screenshots is optional; when nil the screenshot stage is skipped.
	Screenshots locket.ScreenshotService

	// Policies defaults to DefaultPolicies when nil.
	Policies *Policies

	// Workers defaults to DefaultWorkers when zero.
	Workers int

	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
}

// Pipeline runs the enrichment stage graph over an in-memory task queue.
type Pipeline struct {
	queue       *Queue
	docs        locket.DocumentService
	fetcher     locket.Fetcher
	metadata    locket.MetadataExtractor
	extractors  []locket.Extractor
	converter   locket.Converter
	summarizer  locket.Summarizer
	screenshots locket.ScreenshotService
	policies    Policies
	logger      *slog.Logger
}

// New creates a Pipeline and starts its workers.
func New(cfg Config) (*Pipeline, error) {
	switch {
	case cfg.Documents == nil:
		return nil, locket.Errorf(locket.EINVALID, "pipeline requires a document service")
	case cfg.Fetcher == nil:
		return nil, locket.Errorf(locket.EINVALID, "pipeline requires a fetcher")
	case cfg.Metadata == nil:
		return nil, locket.Errorf(locket.EINVALID, "pipeline requires a metadata extractor")
	case len(cfg.Extractors) == 0:
		return nil, locket.Errorf(locket.EINVALID, "pipeline requires at least one content extractor")
	case cfg.Converter == nil:
		return nil, locket.Errorf(locket.EINVALID, "pipeline requires a converter")
	case cfg.Summarizer == nil:
		return nil, locket.Errorf(locket.EINVALID, "pipeline requires a summarizer")
	}

	policies := DefaultPolicies()
	if cfg.Policies != nil {
		policies = *cfg.Policies
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		queue:       NewQueue(cfg.Workers, logger),
		docs:        cfg.Documents,
		fetcher:     cfg.Fetcher,
		metadata:    cfg.Metadata,
		extractors:  cfg.Extractors,
		converter:   cfg.Converter,
		summarizer:  cfg.Summarizer,
		screenshots: cfg.Screenshots,
		policies:    policies,
		logger:      logger,
	}
	p.queue.Start()
	return p, nil
}

// EnqueueDocument schedules enrichment for a document, starting with the
// metadata stage. Returns immediately; use Wait to block on completion.
func (p *Pipeline) EnqueueDocument(docID string) error {
	return p.queue.Enqueue(func(ctx context.Context) {
		p.processMetadata(ctx, docID)
	})
}

// Wait blocks until all in-flight enrichment work has finished.
func (p *Pipeline) Wait() {
	p.queue.Wait()
}

// Close shuts down the worker pool. Unstarted tasks are dropped.
func (p *Pipeline) Close() error {
	return p.queue.Close()
}

// processMetadata fetches the page and applies extracted metadata. Title only
// fills a blank title; author, published date, image and source overwrite
// whenever found. On completion it dispatches the content and screenshot
// stages; on hard failure nothing downstream runs.
func (p *Pipeline) processMetadata(ctx context.Context, docID string) {
	doc, err := p.docs.FindDocumentByID(ctx, docID)
	if err != nil {
		p.logHardFailure("metadata", docID, "", err)
		return
	}

	var meta *locket.Metadata
	err = runWithDelays(ctx, p.policies.Metadata.delays(), func(ctx context.Context) error {
		html, err := p.fetcher.Fetch(ctx, doc.URL)
		if err != nil {
			return err
		}
		meta, err = p.metadata.ExtractMetadata(html, doc.URL)
		return err
	}, p.retryLogger("metadata", doc))
	if err != nil {
		p.logHardFailure("metadata", doc.ID, doc.URL, err)
		return
	}

	if upd := metadataUpdate(doc, meta); !upd.IsZero() {
		if _, err := p.docs.UpdateDocument(ctx, doc.ID, upd); err != nil {
			p.logHardFailure("metadata", doc.ID, doc.URL, err)
			return
		}
	}

	p.enqueueStage("content", doc.ID, p.processContent)
	p.enqueueStage("screenshot", doc.ID, p.processScreenshot)
}

// metadataUpdate maps extracted metadata onto a partial update. Missing
// fields stay nil so existing values survive.
func metadataUpdate(doc *locket.Document, meta *locket.Metadata) locket.DocumentUpdate {
	var upd locket.DocumentUpdate
	if doc.Title == "" && meta.Title != "" {
		upd.Title = &meta.Title
	}
	if meta.Author != "" {
		upd.Author = &meta.Author
	}
	if meta.PublishedAt != nil {
		upd.PublishedAt = meta.PublishedAt
	}
	if meta.Image != "" {
		upd.Image = &meta.Image
	}
	if meta.Source != "" {
		upd.Source = &meta.Source
	}
	return upd
}

// processContent fetches the page independently, extracts the article body
// and stores it as markdown. An empty extraction is a valid outcome: nothing
// is written and the summary stage is not dispatched.
func (p *Pipeline) processContent(ctx context.Context, docID string) {
	doc, err := p.docs.FindDocumentByID(ctx, docID)
	if err != nil {
		p.logHardFailure("content", docID, "", err)
		return
	}

	var markdown string
	err = runWithDelays(ctx, p.policies.Content.delays(), func(ctx context.Context) error {
		html, err := p.fetcher.Fetch(ctx, doc.URL)
		if err != nil {
			return err
		}
		contentHTML, err := p.extract(html)
		if err != nil {
			return err
		}
		if contentHTML == "" {
			markdown = ""
			return nil
		}
		markdown, err = p.converter.Convert(contentHTML)
		return err
	}, p.retryLogger("content", doc))
	if err != nil {
		p.logHardFailure("content", doc.ID, doc.URL, err)
		return
	}

	if markdown == "" {
		p.logger.Info("no extractable content", "document_id", doc.ID, "url", doc.URL)
		return
	}

	if _, err := p.docs.UpdateDocument(ctx, doc.ID, locket.DocumentUpdate{Content: &markdown}); err != nil {
		p.logHardFailure("content", doc.ID, doc.URL, err)
		return
	}

	p.enqueueStage("summary", doc.ID, p.processSummary)
}

// extract runs the extractors in order and returns the first non-empty
// result. An extractor error or empty result falls through to the next;
// when every extractor fails, the last error is returned.
func (p *Pipeline) extract(html string) (string, error) {
	var lastErr error
	for _, e := range p.extractors {
		result, err := e.Extract(html)
		if err != nil {
			lastErr = err
			continue
		}
		if result.ContentHTML != "" {
			return result.ContentHTML, nil
		}
		lastErr = nil
	}
	return "", lastErr
}

// processSummary derives an extractive summary from stored content. All
// failures are soft; an empty summary is a valid no-op.
func (p *Pipeline) processSummary(ctx context.Context, docID string) {
	doc, err := p.docs.FindDocumentByID(ctx, docID)
	if err != nil {
		p.logSoftFailure("summary", docID, "", err)
		return
	}
	if doc.Content == "" {
		return
	}

	var summary string
	err = runWithDelays(ctx, p.policies.Summary.delays(), func(ctx context.Context) error {
		s, err := p.summarizer.Summarize(doc.Content, doc.Title)
		if err != nil {
			return err
		}
		summary = s
		return nil
	}, p.retryLogger("summary", doc))
	if err != nil {
		p.logSoftFailure("summary", doc.ID, doc.URL, err)
		return
	}
	if summary == "" {
		return
	}

	if _, err := p.docs.UpdateDocument(ctx, doc.ID, locket.DocumentUpdate{Summary: &summary}); err != nil {
		p.logSoftFailure("summary", doc.ID, doc.URL, err)
	}
}

// processScreenshot renders the page and stores the capture reference. All
// failures are soft; the screenshot field simply stays unset.
func (p *Pipeline) processScreenshot(ctx context.Context, docID string) {
	if p.screenshots == nil {
		return
	}

	doc, err := p.docs.FindDocumentByID(ctx, docID)
	if err != nil {
		p.logSoftFailure("screenshot", docID, "", err)
		return
	}

	var ref string
	err = runWithDelays(ctx, p.policies.Screenshot.delays(), func(ctx context.Context) error {
		r, err := p.screenshots.Capture(ctx, doc.URL, doc.ID)
		if err != nil {
			return err
		}
		ref = r
		return nil
	}, p.retryLogger("screenshot", doc))
	if err != nil {
		p.logSoftFailure("screenshot", doc.ID, doc.URL, err)
		return
	}

	if _, err := p.docs.UpdateDocument(ctx, doc.ID, locket.DocumentUpdate{Screenshot: &ref}); err != nil {
		p.logSoftFailure("screenshot", doc.ID, doc.URL, err)
	}
}

func (p *Pipeline) enqueueStage(stage, docID string, fn func(context.Context, string)) {
	err := p.queue.Enqueue(func(ctx context.Context) {
		fn(ctx, docID)
	})
	if err != nil {
		p.logger.Error("failed to enqueue stage",
			"stage", stage,
			"document_id", docID,
			"error", err,
		)
	}
}

func (p *Pipeline) retryLogger(stage string, doc *locket.Document) func(attempt int, err error) {
	return func(attempt int, err error) {
		p.logger.Info("retrying stage",
			"stage", stage,
			"document_id", doc.ID,
			"url", doc.URL,
			"attempt", attempt,
			"error", err,
		)
	}
}

func (p *Pipeline) logHardFailure(stage, docID, url string, err error) {
	p.logger.Error("enrichment stage failed",
		"stage", stage,
		"document_id", docID,
		"url", url,
		"error", err,
	)
}

func (p *Pipeline) logSoftFailure(stage, docID, url string, err error) {
	p.logger.Warn("enrichment stage failed",
		"stage", stage,
		"document_id", docID,
		"url", url,
		"error", err,
	)
}
