package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ekalbevoldog/Contesttest-sub007/internal/wizard"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a wizard session id is unknown or its
// state expired.
var ErrSessionNotFound = errors.New("onboarding session not found")

// WizardSessionStore keeps per-session wizard state in Redis. State lives
// only for the duration of one onboarding run: entries expire after the
// configured TTL and are deleted once the wizard completes and the result is
// handed off.
type WizardSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewWizardSessionStore(client *redis.Client, ttl time.Duration) *WizardSessionStore {
	return &WizardSessionStore{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "onboarding:session:" + sessionID
}

func (s *WizardSessionStore) Save(ctx context.Context, state *wizard.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal wizard state: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(state.SessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save wizard state: %w", err)
	}
	return nil
}

func (s *WizardSessionStore) Get(ctx context.Context, sessionID string) (*wizard.State, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load wizard state: %w", err)
	}

	var state wizard.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decode wizard state: %w", err)
	}
	if state.Data == nil {
		state.Data = make(wizard.FormData)
	}
	return &state, nil
}

func (s *WizardSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete wizard state: %w", err)
	}
	return nil
}
