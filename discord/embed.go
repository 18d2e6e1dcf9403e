package discord

import (
	"fmt"
	"strconv"

	"github.com/RavensCloud/trendbot/tiktok"
)

// colorTikTokRed is the accent color used on every profile embed.
const colorTikTokRed = 0xFE2C55

// Embed mirrors the Discord embed object. Only the fields this bot sends
// are modeled.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color,omitempty"`
	Thumbnail   *Thumbnail   `json:"thumbnail,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

type Thumbnail struct {
	URL string `json:"url"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// ProfileEmbed builds the rich display for one trending profile.
func ProfileEmbed(p tiktok.Profile) Embed {
	desc := p.Bio
	if desc == "" {
		desc = "No bio provided."
	}

	e := Embed{
		Title:       fmt.Sprintf("New Trending Profile: @%s", p.Username),
		URL:         p.ProfileURL,
		Description: desc,
		Color:       colorTikTokRed,
		Fields: []EmbedField{
			{Name: "Followers", Value: groupDigits(p.FollowerCount), Inline: true},
			{Name: "Total Likes", Value: groupDigits(p.HeartCount), Inline: true},
			{Name: "Total Videos", Value: groupDigits(p.VideoCount), Inline: true},
		},
		Footer: &EmbedFooter{Text: "Nickname: " + p.Nickname},
	}
	if p.AvatarURL != "" {
		e.Thumbnail = &Thumbnail{URL: p.AvatarURL}
	}
	return e
}

// ThreadName builds the per-profile thread title, e.g.
// "@handle - 1,234,567 Followers".
func ThreadName(p tiktok.Profile) string {
	return fmt.Sprintf("@%s - %s Followers", p.Username, groupDigits(p.FollowerCount))
}

// groupDigits formats n with comma thousands separators.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
