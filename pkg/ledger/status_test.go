package ledger

import (
	"testing"
	"time"

	"github.com/clearfund/charity-ledger/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		goal   int64
		raised int64
		want   models.CampaignStatus
	}{
		{
			name:  "before start is upcoming",
			start: now.Add(time.Hour), end: now.Add(48 * time.Hour),
			goal: 100_000, raised: 0,
			want: models.CampaignUpcoming,
		},
		{
			name:  "within window is active",
			start: now.Add(-time.Hour), end: now.Add(time.Hour),
			goal: 100_000, raised: 50_000,
			want: models.CampaignActive,
		},
		{
			name:  "goal reached wins over active window",
			start: now.Add(-time.Hour), end: now.Add(time.Hour),
			goal: 100_000, raised: 100_000,
			want: models.CampaignCompleted,
		},
		{
			name:  "goal reached wins over elapsed end",
			start: now.Add(-48 * time.Hour), end: now.Add(-time.Hour),
			goal: 100_000, raised: 150_000,
			want: models.CampaignCompleted,
		},
		{
			name:  "past end below goal is ended",
			start: now.Add(-48 * time.Hour), end: now.Add(-time.Hour),
			goal: 100_000, raised: 40_000,
			want: models.CampaignEnded,
		},
		{
			name:  "end boundary is still active",
			start: now.Add(-time.Hour), end: now,
			goal: 100_000, raised: 0,
			want: models.CampaignActive,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeStatus(now, tc.start, tc.end, tc.goal, tc.raised)
			assert.Equal(t, tc.want, got)
		})
	}
}
