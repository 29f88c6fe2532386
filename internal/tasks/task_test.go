package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigger_CronSpec(t *testing.T) {
	tests := []struct {
		at   time.Duration
		spec string
		str  string
	}{
		{2 * time.Hour, "0 2 * * *", "daily at 02:00"},
		{23*time.Hour + 45*time.Minute, "45 23 * * *", "daily at 23:45"},
		{0, "0 0 * * *", "daily at 00:00"},
		{26 * time.Hour, "0 2 * * *", "daily at 02:00"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr := Daily(tt.at)
			assert.Equal(t, tt.spec, tr.CronSpec())
			assert.Equal(t, tt.str, tr.String())
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	d, err := ParseTimeOfDay("02:00")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, d)

	d, err = ParseTimeOfDay("18:30")
	require.NoError(t, err)
	assert.Equal(t, 18*time.Hour+30*time.Minute, d)

	for _, bad := range []string{"", "2am", "25:00", "12:60"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}
