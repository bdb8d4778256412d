// Package cache keeps browsing sessions in Redis or, for single-instance
// deployments and tests, in process memory.
package cache

import (
	"encoding/json"
	"fmt"

	"github.com/decora/storefront/internal/domain/session"
)

// Both stores hold the JSON form of a session so they never share pointers
// with callers and behave the same way.
func encodeSession(s *session.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return data, nil
}

func decodeSession(data []byte) (*session.Session, error) {
	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
