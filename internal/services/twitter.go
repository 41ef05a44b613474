package services

import (
	"context"
	"fmt"

	"github.com/jsingh/trendtracker/internal/shared"
)

// TwitterService implements [SocialService] for the Twitter metrics API.
// The integration is declared but not available yet: every lookup reports
// [shared.ErrNotImplemented] and the persisted outputs render the metric as
// absent ("N/A" in the tabular format).
type TwitterService struct{}

// NewTwitterService creates the Twitter metrics client stub.
func NewTwitterService() *TwitterService {
	return &TwitterService{}
}

func (t *TwitterService) Name() string {
	return "Twitter"
}

// TweetVolume reports the tweet volume statistic for a music artist.
func (t *TwitterService) TweetVolume(ctx context.Context, artist string) (int, error) {
	// TODO: wire up the Twitter API client once credentials and endpoint
	// access are sorted out.
	return 0, fmt.Errorf("%w: tweet volume lookup", shared.ErrNotImplemented)
}
