package pipeline

import (
	"context"

	"github.com/RavensCloud/trendbot/tiktok"
)

// ProfileSource yields a deduplicated batch of profiles for one run.
type ProfileSource interface {
	Profiles(ctx context.Context, count int) ([]tiktok.Profile, error)
}

// Publisher posts one profile to the destination.
type Publisher interface {
	Publish(ctx context.Context, profile tiktok.Profile) error
}

// TrendingSource adapts the scraper's recommend-feed collection to the
// ProfileSource contract.
type TrendingSource struct {
	Scraper *tiktok.Scraper
}

func (s *TrendingSource) Profiles(ctx context.Context, count int) ([]tiktok.Profile, error) {
	return s.Scraper.Trending(ctx, count)
}

// HashtagSource collects the authors behind a hashtag's videos instead of
// the trending feed.
type HashtagSource struct {
	Scraper *tiktok.Scraper
	Hashtag string
}

func (s *HashtagSource) Profiles(ctx context.Context, count int) ([]tiktok.Profile, error) {
	return s.Scraper.HashtagProfiles(ctx, s.Hashtag, count)
}

// KeywordSource collects the authors behind a keyword search's videos.
type KeywordSource struct {
	Scraper *tiktok.Scraper
	Keyword string
}

func (s *KeywordSource) Profiles(ctx context.Context, count int) ([]tiktok.Profile, error) {
	return s.Scraper.SearchProfiles(ctx, s.Keyword, count)
}
