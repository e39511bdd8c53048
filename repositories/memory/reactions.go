package memory

import (
	"context"

	"newsroom-api/models"
	"newsroom-api/services"
)

type ReactionRepository struct {
	db *DB
}

func (db *DB) Reactions() *ReactionRepository {
	return &ReactionRepository{db: db}
}

func (r *ReactionRepository) Toggle(_ context.Context, subject models.Subject, userID uint, direction models.Direction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	sets := r.db.setsOf(subject)
	target, ok := sets[direction]
	opposite, okOpposite := sets[direction.Opposite()]
	if !ok || !okOpposite {
		return services.ErrNotFound
	}
	r.db.members[opposite] = without(r.db.members[opposite], userID)
	if !contains(r.db.members[target], userID) {
		r.db.members[target] = append(r.db.members[target], userID)
	}
	return nil
}

func (r *ReactionRepository) Tally(_ context.Context, subjectType models.SubjectType, ids []uint, userID uint) (map[uint]models.ReactionCounts, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	result := make(map[uint]models.ReactionCounts, len(ids))
	for _, id := range ids {
		sets := r.db.setsOf(models.Subject{Type: subjectType, ID: id})
		likes := r.db.members[sets[models.Like]]
		dislikes := r.db.members[sets[models.Dislike]]
		result[id] = models.ReactionCounts{
			LikeCount:            int64(len(likes)),
			DislikeCount:         int64(len(dislikes)),
			IsLikedByAuthUser:    userID != 0 && contains(likes, userID),
			IsDislikedByAuthUser: userID != 0 && contains(dislikes, userID),
		}
	}
	return result, nil
}

func (r *ReactionRepository) Members(_ context.Context, subject models.Subject) (*models.ReactionMembers, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	sets := r.db.setsOf(subject)
	return &models.ReactionMembers{
		Likes:    append([]uint{}, r.db.members[sets[models.Like]]...),
		Dislikes: append([]uint{}, r.db.members[sets[models.Dislike]]...),
	}, nil
}
