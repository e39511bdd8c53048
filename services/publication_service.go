package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// PublicationService applies the time based transitions: posts past their
// end date are closed and stories past theirs are archived.
type PublicationService struct {
	posts   PostRepository
	stories StoryRepository
	log     *slog.Logger
	now     func() time.Time
}

func NewPublicationService(posts PostRepository, stories StoryRepository) *PublicationService {
	return &PublicationService{
		posts:   posts,
		stories: stories,
		log:     slog.Default().With("service", "publication"),
		now:     time.Now,
	}
}

func (s *PublicationService) Run(ctx context.Context) (closed, archived int64, err error) {
	now := s.now()

	closed, err = s.posts.CloseExpired(ctx, now)
	if err != nil {
		return 0, 0, fmt.Errorf("close expired posts: %w", err)
	}
	archived, err = s.stories.ArchiveExpired(ctx, now)
	if err != nil {
		return closed, 0, fmt.Errorf("archive expired stories: %w", err)
	}

	if closed > 0 || archived > 0 {
		s.log.Info("publication sweep", "closed_posts", closed, "archived_stories", archived)
	}
	return closed, archived, nil
}
