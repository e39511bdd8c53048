package services

import "time"

// Test hooks for the external services_test package.

var (
	UniqueSlug      = uniqueSlug
	MaxSlugAttempts = maxSlugAttempts
)

func (s *PostService) SetClock(now func() time.Time) { s.now = now }

// NotifySynchronously runs approval notifications inline.
func (s *PostService) NotifySynchronously() { s.async = func(f func()) { f() } }

func (s *PublicationService) SetClock(now func() time.Time) { s.now = now }

func (s *StoryService) SetClock(now func() time.Time) { s.now = now }

func (m *TokenManager) SetClock(now func() time.Time) { m.now = now }
