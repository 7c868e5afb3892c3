package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/repos"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

// questMilestones are the point totals that complete a quest.
var questMilestones = []int{20, 50, 100, 500, 1000}

type Quest struct {
	Title     string  `json:"title"`
	Value     int     `json:"value"`
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

// QuestsFor reports every milestone against points; progress is capped at 1.
func QuestsFor(points int) []*Quest {
	out := make([]*Quest, 0, len(questMilestones))
	for _, v := range questMilestones {
		p := float64(points) / float64(v)
		if p > 1 {
			p = 1
		}
		if p < 0 {
			p = 0
		}
		out = append(out, &Quest{
			Title:     fmt.Sprintf("Earn %d XP", v),
			Value:     v,
			Progress:  p,
			Completed: points >= v,
		})
	}
	return out
}

type QuestService interface {
	ForUser(ctx context.Context, userID uuid.UUID) ([]*Quest, error)
}

type questService struct {
	log      *logger.Logger
	progress repos.UserProgressRepo
}

func NewQuestService(log *logger.Logger, progress repos.UserProgressRepo) QuestService {
	return &questService{log: log.With("service", "QuestService"), progress: progress}
}

func (s *questService) ForUser(ctx context.Context, userID uuid.UUID) ([]*Quest, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	up, err := s.progress.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	points := 0
	if up != nil {
		points = up.Points
	}
	return QuestsFor(points), nil
}
