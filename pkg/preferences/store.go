package preferences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pyamsoft/fridge/pkg/cache"
)

const (
	settingsKeyPrefix = "prefs:settings"
	notifiedKeyPrefix = "prefs:notified"
	flagKeyPrefix     = "prefs:flag"
)

// Store keeps settings as one Redis hash per household and last-notified
// timestamps as a second hash keyed by notification kind.
//
// Key format:
//
//	prefs:settings:{householdID}  (hash of Settings fields by redis tag)
//	prefs:notified:{householdID}  (hash kind -> RFC3339Nano)
//	prefs:flag:{name}             (string, set once)
type Store struct {
	client *cache.RedisClient
}

// NewStore returns a Store backed by the given RedisClient.
func NewStore(r *cache.RedisClient) *Store {
	return &Store{client: r}
}

// Get returns the household's settings. Fields never saved fall back to Defaults.
func (s *Store) Get(ctx context.Context, householdID uuid.UUID) (Settings, error) {
	return scanSettings(s.client.Client().HGetAll(ctx, settingsKey(householdID)))
}

// Save validates and writes every settings field.
func (s *Store) Save(ctx context.Context, householdID uuid.UUID, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.client.Client().HSet(ctx, settingsKey(householdID), &settings).Err(); err != nil {
		return fmt.Errorf("preferences save: %w", err)
	}
	return nil
}

// LastNotified returns when a notification of kind last fired for the
// household, or the zero time if it never has.
func (s *Store) LastNotified(ctx context.Context, householdID uuid.UUID, kind string) (time.Time, error) {
	raw, err := s.client.Client().HGet(ctx, notifiedKey(householdID), kind).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("preferences last notified: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("preferences parse last notified %q: %w", kind, err)
	}
	return t, nil
}

// MarkNotified records that a notification of kind fired at t.
func (s *Store) MarkNotified(ctx context.Context, householdID uuid.UUID, kind string, t time.Time) error {
	if err := s.client.Client().HSet(ctx, notifiedKey(householdID), kind, t.UTC().Format(time.RFC3339Nano)).Err(); err != nil {
		return fmt.Errorf("preferences mark notified: %w", err)
	}
	return nil
}

// ClearNotified forgets every last-notified timestamp for the household.
func (s *Store) ClearNotified(ctx context.Context, householdID uuid.UUID) error {
	if err := s.client.Client().Del(ctx, notifiedKey(householdID)).Err(); err != nil {
		return fmt.Errorf("preferences clear notified: %w", err)
	}
	return nil
}

// SetFlagOnce sets a global persistent flag and reports whether this call
// was the one that set it.
func (s *Store) SetFlagOnce(ctx context.Context, name string) (bool, error) {
	ok, err := s.client.Client().SetNX(ctx, flagKeyPrefix+":"+name, time.Now().UTC().Format(time.RFC3339), 0).Result()
	if err != nil {
		return false, fmt.Errorf("preferences set flag %s: %w", name, err)
	}
	return ok, nil
}

// ClearFlag removes a global flag so the guarded work runs again.
func (s *Store) ClearFlag(ctx context.Context, name string) error {
	if err := s.client.Client().Del(ctx, flagKeyPrefix+":"+name).Err(); err != nil {
		return fmt.Errorf("preferences clear flag %s: %w", name, err)
	}
	return nil
}

func settingsKey(householdID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", settingsKeyPrefix, householdID)
}

func notifiedKey(householdID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", notifiedKeyPrefix, householdID)
}

// scanSettings overlays the stored hash fields on Defaults.
func scanSettings(cmd *redis.MapStringStringCmd) (Settings, error) {
	if err := cmd.Err(); err != nil {
		return Settings{}, fmt.Errorf("preferences get: %w", err)
	}
	s := Defaults()
	if err := cmd.Scan(&s); err != nil {
		return Settings{}, fmt.Errorf("preferences scan: %w", err)
	}
	return s, nil
}
