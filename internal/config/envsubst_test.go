package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("CATCHUP_TEST_TMDB_KEY", "k-123")
	t.Setenv("CATCHUP_TEST_EMPTY", "")
	t.Setenv("CATCHUP_TEST_AGENT", "catchup/2.0")

	tests := []struct {
		name        string
		in          string
		want        string
		wantMissing []string
	}{
		{
			name: "plain reference",
			in:   `api_key = "${CATCHUP_TEST_TMDB_KEY}"`,
			want: `api_key = "k-123"`,
		},
		{
			name:        "unset reference is kept",
			in:          `api_key = "${CATCHUP_TEST_UNSET_KEY}"`,
			want:        `api_key = "${CATCHUP_TEST_UNSET_KEY}"`,
			wantMissing: []string{"CATCHUP_TEST_UNSET_KEY"},
		},
		{
			name: "empty value is still a value",
			in:   `user_agent = "${CATCHUP_TEST_EMPTY}"`,
			want: `user_agent = ""`,
		},
		{
			name: "default for empty",
			in:   `user_agent = "${CATCHUP_TEST_EMPTY:-catchup/1.0}"`,
			want: `user_agent = "catchup/1.0"`,
		},
		{
			name: "default for unset",
			in:   `cache_ttl = "${CATCHUP_TEST_UNSET_TTL:-72h}"`,
			want: `cache_ttl = "72h"`,
		},
		{
			name: "value wins over default",
			in:   `user_agent = "${CATCHUP_TEST_AGENT:-catchup/1.0}"`,
			want: `user_agent = "catchup/2.0"`,
		},
		{
			name:        "required reports its message",
			in:          `api_key = "${CATCHUP_TEST_EMPTY:?tmdb key is required}"`,
			want:        `api_key = "${CATCHUP_TEST_EMPTY:?tmdb key is required}"`,
			wantMissing: []string{"CATCHUP_TEST_EMPTY: tmdb key is required"},
		},
		{
			name: "required satisfied",
			in:   `api_key = "${CATCHUP_TEST_TMDB_KEY:?tmdb key is required}"`,
			want: `api_key = "k-123"`,
		},
		{
			name:        "several on one line",
			in:          "${CATCHUP_TEST_AGENT} ${CATCHUP_TEST_UNSET_B} ${CATCHUP_TEST_EMPTY:-x}",
			want:        "catchup/2.0 ${CATCHUP_TEST_UNSET_B} x",
			wantMissing: []string{"CATCHUP_TEST_UNSET_B"},
		},
		{
			name: "bare dollar is literal",
			in:   `path = "$HOME/movies"`,
			want: `path = "$HOME/movies"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, missing := substituteEnvVars(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}
