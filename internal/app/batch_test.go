package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videodl/video-dl/internal/domain"
)

func TestReadURLList(t *testing.T) {
	input := "https://youtu.be/a\n\n  # comment\n  https://redd.it/b  \n"

	urls, err := ReadURLList(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://youtu.be/a", "https://redd.it/b"}, urls)
}

func TestDownloadAll_ContinuesAfterFailure(t *testing.T) {
	runner := &fakeRunner{}
	repo := &mockHistoryRepo{}
	svc, _ := newTestService(runner, repo, nil)

	config := testConfig()
	reqs := []*domain.DownloadRequest{
		domain.NewDownloadRequest("https://youtu.be/a", domain.DownloadFlags{}, config),
		domain.NewDownloadRequest("https://vimeo.com/b", domain.DownloadFlags{}, config),
		domain.NewDownloadRequest("https://redd.it/c", domain.DownloadFlags{}, config),
	}

	reporters := 0
	batch, err := svc.DownloadAll(context.Background(), reqs, func(*domain.DownloadRequest) domain.ProgressReporter {
		reporters++
		return &mockReporter{}
	})
	require.NoError(t, err)

	require.Len(t, batch.Items, 3)
	assert.Len(t, runner.calls, 2)
	assert.Equal(t, 3, reporters)

	failed := batch.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "https://vimeo.com/b", failed[0].URL)
	var platformErr *domain.UnsupportedPlatformError
	assert.True(t, errors.As(failed[0].Err, &platformErr))

	assert.EqualError(t, batch.Err(), "1 of 3 downloads failed")
}

func TestDownloadAll_StopsOnCancel(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("yt-dlp interrupted: %w", domain.ErrCancelled)}
	svc, _ := newTestService(runner, nil, nil)

	config := testConfig()
	reqs := []*domain.DownloadRequest{
		domain.NewDownloadRequest("https://youtu.be/a", domain.DownloadFlags{}, config),
		domain.NewDownloadRequest("https://youtu.be/b", domain.DownloadFlags{}, config),
	}

	batch, err := svc.DownloadAll(context.Background(), reqs, nil)
	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Len(t, batch.Items, 1)
	assert.Len(t, runner.calls, 1)
}

func TestDownloadAll_CancelledContext(t *testing.T) {
	runner := &fakeRunner{}
	svc, _ := newTestService(runner, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := []*domain.DownloadRequest{
		domain.NewDownloadRequest("https://youtu.be/a", domain.DownloadFlags{}, testConfig()),
	}
	batch, err := svc.DownloadAll(ctx, reqs, nil)
	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Empty(t, batch.Items)
	assert.Empty(t, runner.calls)
}

func TestBatchResult_AllSucceeded(t *testing.T) {
	batch := &BatchResult{Items: []BatchItem{{URL: "u"}}}
	assert.NoError(t, batch.Err())
	assert.Empty(t, batch.Failed())
}
