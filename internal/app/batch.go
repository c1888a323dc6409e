package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/videodl/video-dl/internal/domain"
)

// BatchItem is the outcome of one URL in a batch
type BatchItem struct {
	URL    string
	Result *domain.DownloadResult
	Err    error
}

// BatchResult collects the outcomes of a batch in input order
type BatchResult struct {
	Items []BatchItem
}

// Failed returns the items that did not download
func (b *BatchResult) Failed() []BatchItem {
	var failed []BatchItem
	for _, item := range b.Items {
		if item.Err != nil {
			failed = append(failed, item)
		}
	}
	return failed
}

// Err summarizes the batch: nil when every item succeeded
func (b *BatchResult) Err() error {
	failed := b.Failed()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d downloads failed", len(failed), len(b.Items))
}

// ReadURLList reads one URL per line. Blank lines and lines starting with # are skipped.
func ReadURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	return urls, nil
}

// DownloadAll downloads each request in turn. A failed item does not stop the
// batch; cancellation does, and is returned as the error.
func (s *DownloadService) DownloadAll(
	ctx context.Context,
	reqs []*domain.DownloadRequest,
	newReporter func(req *domain.DownloadRequest) domain.ProgressReporter,
) (*BatchResult, error) {
	batch := &BatchResult{Items: make([]BatchItem, 0, len(reqs))}

	for i, req := range reqs {
		if ctx.Err() != nil {
			return batch, fmt.Errorf("batch stopped: %w", domain.ErrCancelled)
		}

		s.logger.Info("Batch item",
			zap.Int("index", i+1),
			zap.Int("total", len(reqs)),
			zap.String("url", req.URL))

		var reporter domain.ProgressReporter
		if newReporter != nil {
			reporter = newReporter(req)
		}

		result, err := s.Download(ctx, req, reporter)
		batch.Items = append(batch.Items, BatchItem{URL: req.URL, Result: result, Err: err})

		if errors.Is(err, domain.ErrCancelled) {
			return batch, err
		}
		if err != nil {
			s.logger.Warn("Batch item failed", zap.String("url", req.URL), zap.Error(err))
		}
	}

	return batch, nil
}
