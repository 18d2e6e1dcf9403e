package tiktok

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// trendingItem builds one raw recommend-feed item as JSON. followerCount is
// passed through verbatim so tests can exercise both numeric and quoted
// forms.
func trendingItem(authorID, username, followerCount string) string {
	return fmt.Sprintf(`{
		"id": "v-%s",
		"desc": "trending video",
		"author": {"id": "%s", "uniqueId": "%s", "nickname": "Nick %s", "signature": "bio of %s", "avatarLarger": "https://img.tiktok.com/%s.jpg", "verified": false},
		"authorStats": {"followerCount": %s, "heartCount": 9000, "videoCount": 12}
	}`, authorID, authorID, username, username, username, username, followerCount)
}

func trendingJSON(items []string, hasMore bool, cursor int) string {
	return fmt.Sprintf(`{"itemList": [%s], "hasMore": %v, "cursor": %d}`,
		strings.Join(items, ","), hasMore, cursor)
}

// newTrendingScraper returns a Scraper whose browser fetch is replaced by
// pages: call n returns pages[n], and calls past the end return an empty
// feed.
func newTrendingScraper(pages []string) *Scraper {
	s := New().WithSearchDelay(0).WithProfileDelay(0)
	call := 0
	s.fetchFunc = func(rawURL string) ([]byte, error) {
		if call >= len(pages) {
			return []byte(trendingJSON(nil, false, 0)), nil
		}
		page := pages[call]
		call++
		return []byte(page), nil
	}
	return s
}

func TestTrending_Success(t *testing.T) {
	t.Parallel()
	s := newTrendingScraper([]string{
		trendingJSON([]string{
			trendingItem("1", "alice", "150000"),
			trendingItem("2", "bob", "2000"),
		}, false, 0),
	})

	profiles, err := s.Trending(context.Background(), 10)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}

	p := profiles[0]
	if p.ID != "1" || p.Username != "alice" {
		t.Errorf("unexpected first profile: %+v", p)
	}
	if p.FollowerCount != 150000 {
		t.Errorf("expected 150000 followers, got %d", p.FollowerCount)
	}
	if p.HeartCount != 9000 {
		t.Errorf("expected 9000 hearts, got %d", p.HeartCount)
	}
	if p.VideoCount != 12 {
		t.Errorf("expected 12 videos, got %d", p.VideoCount)
	}
	if p.Nickname != "Nick alice" {
		t.Errorf("expected nickname, got %q", p.Nickname)
	}
	if p.Bio != "bio of alice" {
		t.Errorf("expected bio, got %q", p.Bio)
	}
	if p.ProfileURL != "https://www.tiktok.com/@alice" {
		t.Errorf("unexpected profile url %q", p.ProfileURL)
	}
	if p.AvatarURL != "https://img.tiktok.com/alice.jpg" {
		t.Errorf("unexpected avatar url %q", p.AvatarURL)
	}
}

func TestTrending_DeduplicatesByAuthorID(t *testing.T) {
	t.Parallel()
	s := newTrendingScraper([]string{
		trendingJSON([]string{
			trendingItem("1", "alice", "100"),
			trendingItem("1", "alice", "999999"),
			trendingItem("2", "bob", "200"),
		}, false, 0),
	})

	profiles, err := s.Trending(context.Background(), 10)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 unique profiles, got %d", len(profiles))
	}
	// First occurrence wins.
	if profiles[0].FollowerCount != 100 {
		t.Errorf("expected first-seen stats kept, got %d followers", profiles[0].FollowerCount)
	}
}

func TestTrending_StopsAtCount(t *testing.T) {
	t.Parallel()
	calls := 0
	s := New().WithSearchDelay(0)
	s.fetchFunc = func(rawURL string) ([]byte, error) {
		calls++
		items := make([]string, 0, 10)
		for i := range 10 {
			id := fmt.Sprintf("%d-%d", calls, i)
			items = append(items, trendingItem(id, "user"+id, "500"))
		}
		return []byte(trendingJSON(items, true, calls*10)), nil
	}

	profiles, err := s.Trending(context.Background(), 15)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(profiles) != 15 {
		t.Fatalf("expected exactly 15 profiles, got %d", len(profiles))
	}
	if calls != 2 {
		t.Errorf("expected 2 feed pages, got %d", calls)
	}
}

func TestTrending_Pagination(t *testing.T) {
	t.Parallel()
	s := newTrendingScraper([]string{
		trendingJSON([]string{trendingItem("1", "alice", "100")}, true, 1),
		trendingJSON([]string{trendingItem("2", "bob", "200")}, false, 0),
	})

	profiles, err := s.Trending(context.Background(), 10)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles across pages, got %d", len(profiles))
	}
}

func TestTrending_EmptyFeedStops(t *testing.T) {
	t.Parallel()
	s := newTrendingScraper(nil)

	profiles, err := s.Trending(context.Background(), 10)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected no profiles from empty feed, got %d", len(profiles))
	}
}

func TestTrending_InvalidCount(t *testing.T) {
	t.Parallel()
	s := New()
	if _, err := s.Trending(context.Background(), 0); err == nil {
		t.Fatal("expected error for count 0")
	}
}

func TestTrending_FetchErrorReturnsPartial(t *testing.T) {
	t.Parallel()
	calls := 0
	s := New().WithSearchDelay(0)
	s.fetchFunc = func(rawURL string) ([]byte, error) {
		calls++
		if calls == 1 {
			return []byte(trendingJSON([]string{trendingItem("1", "alice", "100")}, true, 1)), nil
		}
		return nil, fmt.Errorf("fetch: %w", ErrSigningFailed)
	}

	profiles, err := s.Trending(context.Background(), 10)
	if !errors.Is(err, ErrSigningFailed) {
		t.Errorf("expected ErrSigningFailed, got %v", err)
	}
	if len(profiles) != 1 {
		t.Errorf("expected 1 profile collected before failure, got %d", len(profiles))
	}
}

func TestTrending_NoBrowser(t *testing.T) {
	t.Parallel()
	s := New().WithSearchDelay(0)
	_, err := s.Trending(context.Background(), 5)
	if !errors.Is(err, ErrBrowserNotReady) {
		t.Errorf("expected ErrBrowserNotReady, got %v", err)
	}
}

func TestTrending_InvalidJSON(t *testing.T) {
	t.Parallel()
	s := New().WithSearchDelay(0)
	s.fetchFunc = func(rawURL string) ([]byte, error) {
		return []byte("not json"), nil
	}
	_, err := s.Trending(context.Background(), 5)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestTrending_SkipsItemsWithoutAuthorID(t *testing.T) {
	t.Parallel()
	s := newTrendingScraper([]string{
		trendingJSON([]string{
			`{"id": "v-x", "author": {"uniqueId": "ghost"}, "authorStats": {}}`,
			trendingItem("2", "bob", "200"),
		}, false, 0),
	})

	profiles, err := s.Trending(context.Background(), 10)
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Username != "bob" {
		t.Fatalf("expected only bob, got %+v", profiles)
	}
}

// ---------------------------------------------------------------------------
// flexInt coercion tests
// ---------------------------------------------------------------------------

func TestFlexInt_Coercion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		json string
		want int
	}{
		{"number", `{"followerCount": 12345}`, 12345},
		{"quoted number", `{"followerCount": "67890"}`, 67890},
		{"null", `{"followerCount": null}`, 0},
		{"absent", `{}`, 0},
		{"garbage string", `{"followerCount": "lots"}`, 0},
		{"empty string", `{"followerCount": ""}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stats rawAuthorStats
			if err := json.Unmarshal([]byte(tt.json), &stats); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if int(stats.FollowerCount) != tt.want {
				t.Errorf("expected %d, got %d", tt.want, stats.FollowerCount)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// HashtagProfiles tests
// ---------------------------------------------------------------------------

func TestHashtagProfiles_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/api/challenge/detail"):
			w.Write([]byte(challengeDetailJSON("789", "dance")))
		case strings.Contains(r.URL.Path, "/api/challenge/item_list"):
			// Same author twice, one other author.
			w.Write([]byte(`{"itemList": [
				{"id": "1", "author": {"uniqueId": "alice", "id": "1"}, "stats": {}},
				{"id": "2", "author": {"uniqueId": "alice", "id": "1"}, "stats": {}},
				{"id": "3", "author": {"uniqueId": "bob", "id": "2"}, "stats": {}}
			], "hasMore": false, "cursor": 0}`))
		case strings.HasPrefix(r.URL.Path, "/@"):
			username := strings.TrimPrefix(r.URL.Path, "/@")
			w.Write([]byte(ssrPage(username, "id-"+username, 7000)))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	s := newMockScraper(srv.URL)

	profiles, err := s.HashtagProfiles(context.Background(), "dance", 10)
	if err != nil {
		t.Fatalf("HashtagProfiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 unique profiles, got %d", len(profiles))
	}
	if profiles[0].Username != "alice" || profiles[1].Username != "bob" {
		t.Errorf("unexpected order: %+v", profiles)
	}
	if profiles[0].FollowerCount != 7000 {
		t.Errorf("expected follower count from SSR lookup, got %d", profiles[0].FollowerCount)
	}
	if profiles[0].ProfileURL != "https://www.tiktok.com/@alice" {
		t.Errorf("unexpected profile url %q", profiles[0].ProfileURL)
	}
}

func TestHashtagProfiles_SkipsFailedLookups(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/api/challenge/detail"):
			w.Write([]byte(challengeDetailJSON("789", "dance")))
		case strings.Contains(r.URL.Path, "/api/challenge/item_list"):
			w.Write([]byte(`{"itemList": [
				{"id": "1", "author": {"uniqueId": "gone", "id": "1"}, "stats": {}},
				{"id": "2", "author": {"uniqueId": "bob", "id": "2"}, "stats": {}}
			], "hasMore": false, "cursor": 0}`))
		case r.URL.Path == "/@gone":
			w.WriteHeader(http.StatusNotFound)
		case strings.HasPrefix(r.URL.Path, "/@"):
			username := strings.TrimPrefix(r.URL.Path, "/@")
			w.Write([]byte(ssrPage(username, "id-"+username, 7000)))
		}
	}))
	defer srv.Close()

	s := newMockScraper(srv.URL)

	profiles, err := s.HashtagProfiles(context.Background(), "dance", 10)
	if err != nil {
		t.Fatalf("HashtagProfiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Username != "bob" {
		t.Fatalf("expected only bob after failed lookup, got %+v", profiles)
	}
}

func TestSearchProfiles_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/api/search/item/full"):
			w.Write([]byte(`{"item_list": [
				{"id": "1", "author": {"uniqueId": "carol", "id": "3"}, "stats": {}}
			], "has_more": false, "cursor": 0}`))
		case strings.HasPrefix(r.URL.Path, "/@"):
			username := strings.TrimPrefix(r.URL.Path, "/@")
			w.Write([]byte(ssrPage(username, "id-"+username, 9000)))
		}
	}))
	defer srv.Close()

	s := newMockScraper(srv.URL)

	profiles, err := s.SearchProfiles(context.Background(), "cooking", 10)
	if err != nil {
		t.Fatalf("SearchProfiles: %v", err)
	}
	if len(profiles) != 1 || profiles[0].Username != "carol" {
		t.Fatalf("unexpected profiles %+v", profiles)
	}
	if profiles[0].FollowerCount != 9000 {
		t.Errorf("expected follower count from SSR lookup, got %d", profiles[0].FollowerCount)
	}
}

func TestSearchProfiles_InvalidCount(t *testing.T) {
	t.Parallel()
	s := New()
	if _, err := s.SearchProfiles(context.Background(), "cooking", 0); err == nil {
		t.Fatal("expected error for count 0")
	}
}

func TestHashtagProfiles_InvalidCount(t *testing.T) {
	t.Parallel()
	s := New()
	if _, err := s.HashtagProfiles(context.Background(), "dance", 0); err == nil {
		t.Fatal("expected error for count 0")
	}
}

func TestHashtagProfiles_SearchError(t *testing.T) {
	t.Parallel()
	s := New().WithSearchDelay(0)
	_, err := s.HashtagProfiles(context.Background(), "dance", 5)
	if !errors.Is(err, ErrBrowserNotReady) {
		t.Errorf("expected ErrBrowserNotReady, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Author conversion
// ---------------------------------------------------------------------------

func TestAuthorAsProfile(t *testing.T) {
	t.Parallel()
	a := Author{
		ID:            "42",
		Username:      "carol",
		Nickname:      "Carol C",
		Bio:           "hello",
		FollowerCount: 123,
		HeartCount:    456,
		VideoCount:    7,
		AvatarURL:     "https://img.tiktok.com/carol.jpg",
	}

	p := a.AsProfile()

	if p.ID != "42" || p.Username != "carol" || p.Nickname != "Carol C" {
		t.Errorf("identity fields not carried over: %+v", p)
	}
	if p.FollowerCount != 123 || p.HeartCount != 456 || p.VideoCount != 7 {
		t.Errorf("stats not carried over: %+v", p)
	}
	if p.ProfileURL != "https://www.tiktok.com/@carol" {
		t.Errorf("unexpected profile url %q", p.ProfileURL)
	}
}
