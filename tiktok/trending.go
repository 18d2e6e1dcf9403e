package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
)

// Trending fetches the recommend feed and collects the unique authors behind
// the trending videos. Dedupe is by author ID, first occurrence wins. The
// loop stops once count unique profiles are collected or the feed stops
// yielding items. Requires an initialized browser for URL signing.
func (s *Scraper) Trending(ctx context.Context, count int) ([]Profile, error) {
	if count <= 0 {
		return nil, fmt.Errorf("trending: count must be positive")
	}

	seen := make(map[string]struct{}, count)
	profiles := make([]Profile, 0, count)
	cursor := 0

	for len(profiles) < count {
		items, nextCursor, err := s.fetchTrending(ctx, cursor)
		if err != nil {
			return profiles, fmt.Errorf("trending: %w", err)
		}
		if len(items) == 0 {
			break
		}

		for _, raw := range items {
			p := parseProfile(raw)
			if p.ID == "" {
				continue
			}
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			profiles = append(profiles, p)
			if len(profiles) >= count {
				break
			}
		}

		if nextCursor == 0 {
			break
		}
		cursor = nextCursor
	}

	return profiles, nil
}

// fetchTrending pulls one page of the recommend feed through the browser so
// the request fingerprint matches the session that signed it. The feed is
// the most aggressively bot-checked endpoint, so unlike search we never hit
// it from the plain HTTP client.
func (s *Scraper) fetchTrending(ctx context.Context, cursor int) ([]rawTrendingItem, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	rawURL := fmt.Sprintf(
		"%s/api/recommend/item_list/?count=30&cursor=%d&from_page=fyp",
		s.baseURL, cursor,
	)

	s.waitForSearch()

	s.browserMu.Lock()
	body, err := s.fetchFunc(rawURL)
	s.browserMu.Unlock()
	if err != nil {
		return nil, 0, fmt.Errorf("fetch trending page: %w", err)
	}
	if len(body) == 0 {
		return nil, 0, nil
	}

	var result trendingResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, 0, fmt.Errorf("decode trending response: %w", err)
	}

	nextCursor := 0
	if result.HasMore {
		nextCursor = result.Cursor
	}
	return result.ItemList, nextCursor, nil
}
