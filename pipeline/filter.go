package pipeline

import (
	"strconv"

	"github.com/RavensCloud/trendbot/tiktok"
	"go.uber.org/zap"
)

// Filter returns the profiles whose follower count meets minFollowers,
// preserving input order. The threshold arrives as a string straight from
// the environment; an unparsable value degrades to 0 with a warning so a
// bad setting never aborts the batch. The boundary is inclusive.
func Filter(profiles []tiktok.Profile, minFollowers string, logger *zap.Logger) []tiktok.Profile {
	threshold, err := strconv.Atoi(minFollowers)
	if err != nil {
		logger.Warn("invalid MIN_FOLLOWERS value, using 0 as minimum",
			zap.String("value", minFollowers))
		threshold = 0
	}

	filtered := make([]tiktok.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.FollowerCount >= threshold {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
