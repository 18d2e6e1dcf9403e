package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/RavensCloud/trendbot/discord"
	"github.com/RavensCloud/trendbot/pipeline"
	"github.com/RavensCloud/trendbot/tiktok"
	"github.com/RavensCloud/trendbot/util"
	"go.uber.org/zap"
)

func main() {
	count := flag.Int("count", 0, "Number of unique profiles to collect (overrides TREND_COUNT)")
	hashtag := flag.String("hashtag", "", "Collect authors from this hashtag instead of the trending feed")
	search := flag.String("search", "", "Collect authors from a keyword search instead of the trending feed")
	cookies := flag.String("cookies", "", "Path to cookies JSON file")
	proxyURL := flag.String("proxy", "", "Proxy URL (http/https/socks5)")
	delay := flag.Duration("delay", pipeline.DefaultPublishDelay, "Pause between publish attempts")
	dryRun := flag.Bool("dry-run", false, "Scrape and filter, print results instead of posting")
	login := flag.Bool("login", false, "Login with --user and --pass, then save cookies")
	user := flag.String("user", "", "TikTok username (used with --login)")
	pass := flag.String("pass", "", "TikTok password (used with --login)")
	saveCookies := flag.String("save-cookies", "cookies.json", "Path to save cookies after login")
	flag.Parse()

	cfg := pipeline.LoadConfig()
	logger := util.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	if *count > 0 {
		cfg.TrendCount = *count
	}

	s := tiktok.New().
		WithLogger(logger).
		WithMSToken(cfg.MSToken).
		WithBrowserBin(browserBin(cfg.Browser))
	defer s.Close()

	if *proxyURL != "" {
		if err := s.SetProxy(*proxyURL); err != nil {
			logger.Error("set proxy", zap.Error(err))
			return
		}
	}

	// Login mode: authenticate and save cookies for later runs.
	if *login {
		if *user == "" || *pass == "" {
			logger.Error("--login requires --user and --pass")
			return
		}
		if err := s.Login(*user, *pass); err != nil {
			logger.Error("login", zap.Error(err))
			return
		}
		if err := s.SaveCookies(*saveCookies); err != nil {
			logger.Error("save cookies", zap.Error(err))
			return
		}
		logger.Info("logged in, cookies saved", zap.String("path", *saveCookies))
		return
	}

	if !*dryRun {
		if err := cfg.Validate(); err != nil {
			// Clean abort before any network activity, not a crash.
			logger.Error("configuration incomplete, aborting run", zap.Error(err))
			return
		}
	}
	if cfg.MSToken == "" {
		logger.Warn("TIKTOK_MS_TOKEN not set, scraping may be unreliable")
	}

	ctx := context.Background()

	if err := s.InitBrowser(); err != nil {
		logger.Error("init browser", zap.Error(err))
		return
	}
	if *cookies != "" {
		if err := s.LoginWithCookies(*cookies); err != nil {
			logger.Error("login with cookies", zap.Error(err))
			return
		}
	}

	var source pipeline.ProfileSource = &pipeline.TrendingSource{Scraper: s}
	switch {
	case *hashtag != "":
		source = &pipeline.HashtagSource{Scraper: s, Hashtag: *hashtag}
	case *search != "":
		source = &pipeline.KeywordSource{Scraper: s, Keyword: *search}
	}

	if *dryRun {
		runDry(ctx, source, cfg, logger)
		return
	}

	client := discord.NewClient(cfg.DiscordToken, logger)
	publisher := discord.NewPublisher(client, cfg.ChannelID, logger)
	runner := pipeline.NewRunner(source, publisher, pipeline.NewPacer(*delay), cfg, logger)

	published := runner.Run(ctx)
	logger.Info("done", zap.Int("published", published))
}

// runDry prints what a real run would publish.
func runDry(ctx context.Context, source pipeline.ProfileSource, cfg *pipeline.Config, logger *zap.Logger) {
	profiles, err := source.Profiles(ctx, cfg.TrendCount)
	if err != nil {
		logger.Warn("profile source failed", zap.Error(err))
	}
	filtered := pipeline.Filter(profiles, cfg.MinFollowers, logger)
	for i, p := range filtered {
		fmt.Printf("[%d] @%s (%s) — %d followers, %d likes, %d videos\n",
			i+1, p.Username, p.Nickname, p.FollowerCount, p.HeartCount, p.VideoCount)
	}
	fmt.Printf("\n%d of %d scraped profiles qualify\n", len(filtered), len(profiles))
}

// browserBin maps the TIKTOK_BROWSER selector to a launcher binary path.
// The default "chromium" keeps the rod launcher's own managed browser.
func browserBin(name string) string {
	if name == "" || name == "chromium" {
		return ""
	}
	return name
}
