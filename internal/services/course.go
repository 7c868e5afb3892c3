package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/repos"
	types "github.com/yungbote/lingo-backend/internal/domain"
	domainagg "github.com/yungbote/lingo-backend/internal/domain/aggregates"
	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/apierr"
	"github.com/yungbote/lingo-backend/internal/platform/ctxutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/realtime"
)

type CourseService interface {
	List(ctx context.Context) ([]*types.Course, error)
	Get(ctx context.Context, courseID uuid.UUID) (*types.Course, error)
	// Select makes courseID the caller's active course. The display name and image
	// come from the authenticated identity.
	Select(ctx context.Context, courseID uuid.UUID) (*domainagg.SelectCourseResult, error)
}

type courseService struct {
	log       *logger.Logger
	courses   repos.CourseRepo
	progress  domainagg.ProgressAggregate
	publisher EventPublisher
}

func NewCourseService(log *logger.Logger, courses repos.CourseRepo, progress domainagg.ProgressAggregate, publisher EventPublisher) CourseService {
	return &courseService{
		log:       log.With("service", "CourseService"),
		courses:   courses,
		progress:  progress,
		publisher: publisher,
	}
}

func (s *courseService) List(ctx context.Context) ([]*types.Course, error) {
	return s.courses.List(ctx, nil)
}

func (s *courseService) Get(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
	course, err := s.courses.GetWithUnitsAndLessons(ctx, nil, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apierr.NotFound(errNotFound("course"))
	}
	return course, nil
}

func (s *courseService) Select(ctx context.Context, courseID uuid.UUID) (*domainagg.SelectCourseResult, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	res, err := s.progress.SelectCourse(ctx, domainagg.SelectCourseInput{
		UserID:   rd.UserID,
		CourseID: courseID,
		UserName: strings.TrimSpace(rd.UserName),
		ImageSrc: strings.TrimSpace(rd.ImageSrc),
	})
	if err != nil {
		return nil, err
	}
	observability.Current().IncCourseSelected()
	if s.publisher != nil {
		id := courseID
		s.publisher.ProgressChanged(ctx, realtime.ProgressChanged{
			UserID:   rd.UserID,
			CourseID: &id,
			Kind:     realtime.ChangeCourseSelected,
			Hearts:   res.Hearts,
			Points:   res.Points,
		})
	}
	return &res, nil
}
