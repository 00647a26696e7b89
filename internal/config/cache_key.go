package config

import "fmt"

// cacheKeys centralizes every Redis key format so producers and consumers
// never drift apart.
type cacheKeys struct{}

// CacheKey is the shared key builder.
var CacheKey cacheKeys

// ExamPayloadKey stores the serialized exam served to test assembly.
func (cacheKeys) ExamPayloadKey(examID string) string {
	return fmt.Sprintf("exam:%s:payload", examID)
}

// SelectionPoolKey is the set of published exam ids for a skill and level,
// drawn from by the random-exam endpoint.
func (cacheKeys) SelectionPoolKey(skill, level string) string {
	return fmt.Sprintf("bank:pool:%s:%s", skill, level)
}

// ModerationChannel is the pub/sub channel carrying moderation events to
// connected reviewer dashboards.
func (cacheKeys) ModerationChannel() string {
	return "moderation:events"
}
