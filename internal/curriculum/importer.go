package curriculum

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/lingo-backend/internal/data/repos"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
)

type Importer struct {
	db         *gorm.DB
	log        *logger.Logger
	courses    repos.CourseRepo
	units      repos.UnitRepo
	lessons    repos.LessonRepo
	challenges repos.ChallengeRepo
}

func NewImporter(db *gorm.DB, log *logger.Logger, courses repos.CourseRepo, units repos.UnitRepo, lessons repos.LessonRepo, challenges repos.ChallengeRepo) *Importer {
	return &Importer{
		db:         db,
		log:        log.With("component", "CurriculumImporter"),
		courses:    courses,
		units:      units,
		lessons:    lessons,
		challenges: challenges,
	}
}

type ImportResult struct {
	Created Counts
	// Skipped lists course titles that already existed.
	Skipped []string
}

// Import writes every course whose title is not already present, all in one
// transaction. Existing courses are left untouched.
func (im *Importer) Import(ctx context.Context, c *Curriculum) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	res := &ImportResult{}
	err := im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range c.Courses {
			def := &c.Courses[i]
			existing, err := im.courses.GetByTitle(ctx, tx, def.Title)
			if err != nil {
				return fmt.Errorf("lookup course %q: %w", def.Title, err)
			}
			if existing != nil {
				res.Skipped = append(res.Skipped, def.Title)
				continue
			}
			if err := im.importCourse(ctx, tx, def, &res.Created); err != nil {
				return fmt.Errorf("course %q: %w", def.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	im.log.Info("Curriculum imported",
		"courses", res.Created.Courses,
		"lessons", res.Created.Lessons,
		"challenges", res.Created.Challenges,
		"skipped", len(res.Skipped),
	)
	return res, nil
}

func (im *Importer) importCourse(ctx context.Context, tx *gorm.DB, def *CourseDef, n *Counts) error {
	course := &types.Course{ID: uuid.New(), Title: strings.TrimSpace(def.Title), ImageSrc: strings.TrimSpace(def.ImageSrc)}
	if _, err := im.courses.Create(ctx, tx, []*types.Course{course}); err != nil {
		return err
	}
	n.Courses++

	for ui, us := range def.Units {
		unit := &types.Unit{
			ID:          uuid.New(),
			CourseID:    course.ID,
			Title:       strings.TrimSpace(us.Title),
			Description: strings.TrimSpace(us.Description),
			Order:       ui + 1,
		}
		if _, err := im.units.Create(ctx, tx, []*types.Unit{unit}); err != nil {
			return err
		}
		n.Units++

		for li, ls := range us.Lessons {
			lesson := &types.Lesson{ID: uuid.New(), UnitID: unit.ID, Title: strings.TrimSpace(ls.Title), Order: li + 1}
			if _, err := im.lessons.Create(ctx, tx, []*types.Lesson{lesson}); err != nil {
				return err
			}
			n.Lessons++

			if err := im.importChallenges(ctx, tx, lesson.ID, ls.Challenges, n); err != nil {
				return fmt.Errorf("lesson %q: %w", ls.Title, err)
			}
		}
	}
	return nil
}

func (im *Importer) importChallenges(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, defs []ChallengeDef, n *Counts) error {
	if len(defs) == 0 {
		return nil
	}
	challenges := make([]*types.Challenge, 0, len(defs))
	for qi, cs := range defs {
		challenges = append(challenges, &types.Challenge{
			ID:       uuid.New(),
			LessonID: lessonID,
			Type:     types.ChallengeType(normalizeType(cs.Type)),
			Question: strings.TrimSpace(cs.Question),
			Order:    qi + 1,
		})
	}
	if _, err := im.challenges.Create(ctx, tx, challenges); err != nil {
		return err
	}
	n.Challenges += len(challenges)

	var options []*types.ChallengeOption
	for qi, cs := range defs {
		for _, opt := range cs.Options {
			options = append(options, &types.ChallengeOption{
				ChallengeID: challenges[qi].ID,
				Text:        strings.TrimSpace(opt.Text),
				Correct:     opt.Correct,
				ImageSrc:    strings.TrimSpace(opt.ImageSrc),
				AudioSrc:    strings.TrimSpace(opt.AudioSrc),
			})
		}
	}
	if _, err := im.challenges.CreateOptions(ctx, tx, options); err != nil {
		return err
	}
	n.Options += len(options)
	return nil
}
