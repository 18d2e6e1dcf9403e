package pipeline

import (
	"testing"

	"github.com/RavensCloud/trendbot/tiktok"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func profileWithFollowers(username string, followers int) tiktok.Profile {
	return tiktok.Profile{ID: username, Username: username, FollowerCount: followers}
}

func TestFilter_Threshold(t *testing.T) {
	t.Parallel()
	profiles := []tiktok.Profile{
		profileWithFollowers("small", 50000),
		profileWithFollowers("exact", 100000),
		profileWithFollowers("big", 150000),
	}

	got := Filter(profiles, "100000", zap.NewNop())

	if len(got) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(got))
	}
	// The boundary is inclusive and order is preserved.
	if got[0].Username != "exact" || got[1].Username != "big" {
		t.Errorf("unexpected result order: %+v", got)
	}
}

func TestFilter_BelowThresholdDropped(t *testing.T) {
	t.Parallel()
	got := Filter([]tiktok.Profile{profileWithFollowers("small", 50000)}, "100000", zap.NewNop())
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestFilter_InvalidThresholdKeepsAll(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	profiles := []tiktok.Profile{
		profileWithFollowers("a", 1),
		profileWithFollowers("b", 0),
	}

	got := Filter(profiles, "not-a-number", logger)

	if len(got) != 2 {
		t.Fatalf("expected all profiles kept, got %d", len(got))
	}
	if logs.FilterMessageSnippet("invalid MIN_FOLLOWERS").Len() != 1 {
		t.Error("expected a warning about the invalid threshold")
	}
}

func TestFilter_EmptyThresholdKeepsAll(t *testing.T) {
	t.Parallel()
	got := Filter([]tiktok.Profile{profileWithFollowers("a", 0)}, "", zap.NewNop())
	if len(got) != 1 {
		t.Fatalf("expected profile kept at threshold 0, got %d", len(got))
	}
}

func TestFilter_ZeroValueProfileKeptAtZero(t *testing.T) {
	t.Parallel()
	got := Filter([]tiktok.Profile{{}}, "0", zap.NewNop())
	if len(got) != 1 {
		t.Fatalf("expected zero-follower profile kept at threshold 0, got %d", len(got))
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	profiles := []tiktok.Profile{
		profileWithFollowers("a", 10),
		profileWithFollowers("b", 200),
	}

	got := Filter(profiles, "100", zap.NewNop())

	if len(profiles) != 2 {
		t.Fatalf("input length changed: %d", len(profiles))
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	got[0].Username = "mutated"
	if profiles[1].Username != "b" {
		t.Error("filter result aliases input slice")
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	t.Parallel()
	got := Filter(nil, "100000", zap.NewNop())
	if len(got) != 0 {
		t.Fatalf("expected empty result for nil input, got %d", len(got))
	}
}
