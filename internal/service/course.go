package service

import (
	"context"
	"fmt"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/repository"
)

type CourseService interface {
	Preview(ctx context.Context) ([]*dto.CourseResponse, error)
}

type courseServiceImpl struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
	}
}

func (s *courseServiceImpl) Preview(ctx context.Context) ([]*dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	resp := make([]*dto.CourseResponse, len(courses))
	for i, c := range courses {
		resp[i] = toCourseResponse(c)
	}
	return resp, nil
}
