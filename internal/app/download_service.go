package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/videodl/video-dl/internal/domain"
	"github.com/videodl/video-dl/internal/infrastructure"
)

// DownloadService runs one info or download invocation end to end
type DownloadService struct {
	config   *domain.Configuration
	runner   domain.Runner
	history  domain.HistoryRepository // nil disables history
	notifier domain.Notifier          // nil disables notifications
	fs       afero.Fs
	logger   *zap.Logger
}

// NewDownloadService creates a new download service
func NewDownloadService(
	config *domain.Configuration,
	runner domain.Runner,
	history domain.HistoryRepository,
	notifier domain.Notifier,
	logger *zap.Logger,
) *DownloadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DownloadService{
		config:   config,
		runner:   runner,
		history:  history,
		notifier: notifier,
		fs:       afero.NewOsFs(),
		logger:   logger,
	}
}

// WithFs replaces the filesystem used to create download directories
func (s *DownloadService) WithFs(fs afero.Fs) *DownloadService {
	s.fs = fs
	return s
}

// Info fetches video metadata without downloading
func (s *DownloadService) Info(ctx context.Context, url string) (info *domain.VideoInfo, err error) {
	platform, err := domain.ResolvePlatform(url)
	if err != nil {
		return nil, err
	}

	entry := domain.NewHistoryEntry(domain.ActionInfo, url)
	entry.Platform = platform
	defer func() {
		if info != nil {
			entry.Title = info.Title
		}
		s.record(entry, err)
	}()

	s.logger.Debug("Fetching video info",
		zap.String("url", url),
		zap.String("platform", string(platform)))

	outcome, err := s.runner.Run(ctx, infrastructure.BuildInfoArgs(url), nil)
	if err != nil {
		return nil, withURL(err, url)
	}
	if outcome.Info == "" {
		return nil, &domain.ExtractionFailedError{
			URL:    url,
			Reason: "no video information in output",
			Stderr: outcome.Stderr,
		}
	}

	info, err = infrastructure.ParseVideoInfo(outcome.Info, url)
	if err != nil {
		return nil, err
	}
	info.Platform = platform
	return info, nil
}

// Download fetches req.URL into its destination, forwarding progress to
// reporter. reporter may be nil.
func (s *DownloadService) Download(ctx context.Context, req *domain.DownloadRequest, reporter domain.ProgressReporter) (result *domain.DownloadResult, err error) {
	platform, err := domain.ResolvePlatform(req.URL)
	if err != nil {
		return nil, err
	}
	req.Platform = platform
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := domain.NewHistoryEntry(domain.ActionDownload, req.URL)
	entry.ForRequest(req)
	defer func() {
		s.record(entry, err)
		s.notify(req, err)
	}()

	if req.Output == "" {
		if err := s.fs.MkdirAll(s.config.DownloadDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create download directory %s: %w", s.config.DownloadDir, err)
		}
	}

	args := infrastructure.BuildDownloadArgs(req, s.config)
	output := infrastructure.OutputTemplate(req, s.config)
	entry.Output = output

	s.logger.Info("Starting download",
		zap.String("url", req.URL),
		zap.String("platform", string(platform)),
		zap.String("quality", req.Quality),
		zap.String("format", req.Format),
		zap.String("output", output))

	var last float64
	onEvent := func(event domain.Event) {
		if event.Kind != domain.EventProgress {
			return
		}
		last = event.Progress.Percent
		if reporter != nil {
			reporter.Update(last)
		}
	}

	if _, err := s.runner.Run(ctx, args, onEvent); err != nil {
		if reporter != nil {
			reporter.Abort()
		}
		return nil, withURL(err, req.URL)
	}
	if reporter != nil {
		reporter.Finish()
	}

	s.logger.Info("Download completed", zap.String("url", req.URL))

	return &domain.DownloadResult{
		Request:  req,
		Output:   output,
		Progress: last,
	}, nil
}

func (s *DownloadService) record(entry *domain.HistoryEntry, err error) {
	if s.history == nil {
		return
	}
	entry.Finish(err)
	if createErr := s.history.Create(entry); createErr != nil {
		s.logger.Warn("Failed to record history",
			zap.String("url", entry.URL),
			zap.Error(createErr))
	}
}

func (s *DownloadService) notify(req *domain.DownloadRequest, err error) {
	if s.notifier == nil || !req.Notify {
		return
	}
	if err != nil {
		s.notifier.NotifyDownloadFailed(req.URL, req.Platform, err)
		return
	}
	s.notifier.NotifyDownloadCompleted(req.URL, req.Platform)
}

// withURL fills in the URL of an extraction failure reported by the runner
func withURL(err error, url string) error {
	var extractErr *domain.ExtractionFailedError
	if errors.As(err, &extractErr) && extractErr.URL == "" {
		extractErr.URL = url
	}
	return err
}
