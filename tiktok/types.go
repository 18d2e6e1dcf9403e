package tiktok

import "time"

// Video represents a TikTok video with its engagement metrics.
type Video struct {
	ID          string
	Description string
	AuthorID    string
	Username    string
	CreatedAt   time.Time
	Views       int
	Likes       int
	Comments    int
	Shares      int
}

// Author represents a TikTok user profile with their stats.
type Author struct {
	ID             string
	Username       string
	Nickname       string
	FollowerCount  int
	FollowingCount int
	HeartCount     int
	VideoCount     int
	Verified       bool
	Bio            string
	AvatarURL      string
}

// AsProfile converts an Author looked up via SSR into the Profile shape the
// pipeline publishes.
func (a Author) AsProfile() Profile {
	return Profile{
		ID:            a.ID,
		Username:      a.Username,
		Nickname:      a.Nickname,
		Bio:           a.Bio,
		FollowerCount: a.FollowerCount,
		HeartCount:    a.HeartCount,
		VideoCount:    a.VideoCount,
		ProfileURL:    "https://www.tiktok.com/@" + a.Username,
		AvatarURL:     a.AvatarURL,
	}
}

// Profile is one trending account as collected from the recommend feed.
// Counts are already coerced to integers; malformed wire values decode to 0.
type Profile struct {
	ID            string
	Username      string
	Nickname      string
	Bio           string
	FollowerCount int
	HeartCount    int
	VideoCount    int
	ProfileURL    string
	AvatarURL     string
}
