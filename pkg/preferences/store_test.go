package preferences

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyamsoft/fridge/pkg/cache"
	"github.com/pyamsoft/fridge/pkg/config"
)

func TestDefaults_AreValid(t *testing.T) {
	d := Defaults()
	require.NoError(t, d.Validate())
	assert.Equal(t, 2*time.Hour, d.NotificationPeriod())
	assert.True(t, d.DoNotDisturb)
	assert.Equal(t, 22, d.QuietStartHour)
	assert.Equal(t, 7, d.QuietEndHour)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
	}{
		{"negative window", func(s *Settings) { s.ExpiringSoonDays = -1 }},
		{"window too large", func(s *Settings) { s.ExpiringSoonDays = 31 }},
		{"zero period", func(s *Settings) { s.NotificationPeriodHours = 0 }},
		{"quiet start out of range", func(s *Settings) { s.QuietStartHour = 24 }},
		{"quiet end out of range", func(s *Settings) { s.QuietEndHour = -1 }},
		{"range too small", func(s *Settings) { s.NearbyRangeMeters = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSettings))
		})
	}
}

func TestScanSettings(t *testing.T) {
	tests := []struct {
		name    string
		vals    map[string]string
		want    func(s *Settings)
		wantErr bool
	}{
		{
			name: "partial hash falls back to defaults",
			vals: map[string]string{"expiring_soon_days": "3", "same_day_expired": "1"},
			want: func(s *Settings) { s.ExpiringSoonDays = 3; s.SameDayExpired = true },
		},
		{
			name: "every field",
			vals: map[string]string{
				"expiring_soon_days":        "5",
				"same_day_expired":          "true",
				"zero_count_consumed":       "1",
				"notification_period_hours": "6",
				"do_not_disturb":            "0",
				"quiet_start_hour":          "23",
				"quiet_end_hour":            "6",
				"nearby_range_meters":       "812.5",
			},
			want: func(s *Settings) {
				*s = Settings{
					ExpiringSoonDays:        5,
					SameDayExpired:          true,
					ZeroCountConsumed:       true,
					NotificationPeriodHours: 6,
					DoNotDisturb:            false,
					QuietStartHour:          23,
					QuietEndHour:            6,
					NearbyRangeMeters:       812.5,
				}
			},
		},
		{name: "bad int", vals: map[string]string{"notification_period_hours": "soon"}, wantErr: true},
		{name: "bad float", vals: map[string]string{"nearby_range_meters": "far"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanSettings(redis.NewMapStringStringResult(tt.vals, nil))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			want := Defaults()
			tt.want(&want)
			assert.Equal(t, want, got)
		})
	}
}

func TestScanSettings_CommandError(t *testing.T) {
	_, err := scanSettings(redis.NewMapStringStringResult(nil, errors.New("conn reset")))
	require.Error(t, err)
}

// Integration tests, skipped unless REDIS_URL is set.
func TestStoreIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := cache.NewRedisClient(&config.Config{RedisURL: redisURL, RedisPoolSize: 2})
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	store := NewStore(rc)
	household := uuid.New()

	t.Run("Get_Defaults", func(t *testing.T) {
		s, err := store.Get(ctx, household)
		require.NoError(t, err)
		assert.Equal(t, Defaults(), s)
	})

	t.Run("Save_Get", func(t *testing.T) {
		s := Settings{
			ExpiringSoonDays:        4,
			SameDayExpired:          true,
			ZeroCountConsumed:       true,
			NotificationPeriodHours: 6,
			DoNotDisturb:            false,
			QuietStartHour:          23,
			QuietEndHour:            6,
			NearbyRangeMeters:       812.5,
		}
		require.NoError(t, store.Save(ctx, household, s))
		got, err := store.Get(ctx, household)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})

	t.Run("LastNotified_RoundTrip", func(t *testing.T) {
		zero, err := store.LastNotified(ctx, household, "expired")
		require.NoError(t, err)
		assert.True(t, zero.IsZero())

		at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, store.MarkNotified(ctx, household, "expired", at))
		got, err := store.LastNotified(ctx, household, "expired")
		require.NoError(t, err)
		assert.True(t, at.Equal(got))

		require.NoError(t, store.ClearNotified(ctx, household))
	})

	t.Run("SetFlagOnce", func(t *testing.T) {
		name := "test-" + uuid.NewString()
		first, err := store.SetFlagOnce(ctx, name)
		require.NoError(t, err)
		second, err := store.SetFlagOnce(ctx, name)
		require.NoError(t, err)
		assert.True(t, first)
		assert.False(t, second)
		require.NoError(t, store.ClearFlag(ctx, name))
	})
}
