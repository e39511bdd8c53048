package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"newsroom-api/models"
	"newsroom-api/services"
)

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// createReactionSets creates the like and dislike sets of a new subject inside tx.
func createReactionSets(tx *gorm.DB, subjectType models.SubjectType, id uint) error {
	sets := []models.ReactionSet{
		{SubjectType: subjectType, SubjectID: id, Direction: models.Like},
		{SubjectType: subjectType, SubjectID: id, Direction: models.Dislike},
	}
	return tx.Create(&sets).Error
}

// deleteReactionSets removes the sets of the given subjects and their members.
func deleteReactionSets(tx *gorm.DB, subjectType models.SubjectType, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	setIDs := tx.Model(&models.ReactionSet{}).Select("id").
		Where("subject_type = ? AND subject_id IN ?", subjectType, ids)
	if err := tx.Where("reaction_set_id IN (?)", setIDs).Delete(&models.ReactionMember{}).Error; err != nil {
		return err
	}
	return tx.Where("subject_type = ? AND subject_id IN ?", subjectType, ids).Delete(&models.ReactionSet{}).Error
}

// Toggle locks both sets of the subject, then moves the user into the
// requested one. Adding an existing member is a no-op.
func (r *ReactionRepository) Toggle(ctx context.Context, subject models.Subject, userID uint, direction models.Direction) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sets []models.ReactionSet
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("subject_type = ? AND subject_id = ?", subject.Type, subject.ID).
			Find(&sets).Error
		if err != nil {
			return err
		}

		byDirection := make(map[models.Direction]uint, len(sets))
		for _, s := range sets {
			byDirection[s.Direction] = s.ID
		}
		target, ok := byDirection[direction]
		opposite, okOpposite := byDirection[direction.Opposite()]
		if !ok || !okOpposite {
			return services.ErrNotFound
		}

		if err := tx.Where("reaction_set_id = ? AND user_id = ?", opposite, userID).
			Delete(&models.ReactionMember{}).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.ReactionMember{ReactionSetID: target, UserID: userID}).Error
	}))
}

type tallyRow struct {
	SubjectID uint
	Direction models.Direction
	Total     int64
	Mine      int64
}

func (r *ReactionRepository) Tally(ctx context.Context, subjectType models.SubjectType, ids []uint, userID uint) (map[uint]models.ReactionCounts, error) {
	result := make(map[uint]models.ReactionCounts, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	for _, id := range ids {
		result[id] = models.ReactionCounts{}
	}

	var rows []tallyRow
	err := r.db.WithContext(ctx).
		Table("reaction_sets AS s").
		Select("s.subject_id, s.direction, COUNT(m.user_id) AS total, "+
			"COALESCE(SUM(CASE WHEN m.user_id = ? THEN 1 ELSE 0 END), 0) AS mine", userID).
		Joins("LEFT JOIN reaction_members m ON m.reaction_set_id = s.id").
		Where("s.subject_type = ? AND s.subject_id IN ?", subjectType, ids).
		Group("s.subject_id, s.direction").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts := result[row.SubjectID]
		switch row.Direction {
		case models.Like:
			counts.LikeCount = row.Total
			counts.IsLikedByAuthUser = userID != 0 && row.Mine > 0
		case models.Dislike:
			counts.DislikeCount = row.Total
			counts.IsDislikedByAuthUser = userID != 0 && row.Mine > 0
		}
		result[row.SubjectID] = counts
	}
	return result, nil
}

func (r *ReactionRepository) Members(ctx context.Context, subject models.Subject) (*models.ReactionMembers, error) {
	var rows []struct {
		Direction models.Direction
		UserID    uint
	}
	err := r.db.WithContext(ctx).
		Table("reaction_members AS m").
		Select("s.direction, m.user_id").
		Joins("JOIN reaction_sets s ON s.id = m.reaction_set_id").
		Where("s.subject_type = ? AND s.subject_id = ?", subject.Type, subject.ID).
		Order("m.created_at ASC, m.user_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	members := &models.ReactionMembers{Likes: []uint{}, Dislikes: []uint{}}
	for _, row := range rows {
		if row.Direction == models.Like {
			members.Likes = append(members.Likes, row.UserID)
		} else {
			members.Dislikes = append(members.Dislikes, row.UserID)
		}
	}
	return members, nil
}
