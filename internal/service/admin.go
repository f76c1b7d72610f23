package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/config"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/model"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/repository"
)

// AdminService is the instructor surface: accounts plus course authoring.
// Courses are only ever mutated by their owning instructor and never
// physically deleted.
type AdminService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error)
	CreateCourse(ctx context.Context, adminID string, req *dto.CourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, adminID string, req *dto.CourseRequest) error
	ListCourses(ctx context.Context, adminID string) ([]*dto.CourseResponse, error)
}

type adminServiceImpl struct {
	adminRepo  repository.AdminRepository
	courseRepo repository.CourseRepository
	authCfg    config.Auth
}

func NewAdminService(
	adminRepo repository.AdminRepository,
	courseRepo repository.CourseRepository,
	authCfg config.Auth,
) AdminService {
	return &adminServiceImpl{
		adminRepo:  adminRepo,
		courseRepo: courseRepo,
		authCfg:    authCfg,
	}
}

func (s *adminServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	if existing != nil {
		return nil, apperr.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	token, err := issueToken(admin.ID, s.authCfg.AdminSecret, s.authCfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: &dto.UserResponse{
			ID:        admin.ID,
			Email:     admin.Email,
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
		},
		Token: token,
	}, nil
}

func (s *adminServiceImpl) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	if admin == nil {
		return nil, apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := issueToken(admin.ID, s.authCfg.AdminSecret, s.authCfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: &dto.UserResponse{
			ID:        admin.ID,
			Email:     admin.Email,
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
		},
		Token: token,
	}, nil
}

func (s *adminServiceImpl) CreateCourse(ctx context.Context, adminID string, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, &apperr.InputError{Msg: "course title is required"}
	}
	if req.Price.IsNegative() {
		return nil, &apperr.InputError{Msg: "course price must not be negative"}
	}

	course := &model.Course{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CreatorID:   adminID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	return toCourseResponse(course), nil
}

func (s *adminServiceImpl) UpdateCourse(ctx context.Context, adminID string, req *dto.CourseRequest) error {
	if req.CourseID == "" {
		return &apperr.InputError{Msg: "courseId is required"}
	}
	if req.Price.IsNegative() {
		return &apperr.InputError{Msg: "course price must not be negative"}
	}

	return s.courseRepo.Update(ctx, &model.Course{
		ID:          req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		CreatorID:   adminID,
	})
}

func (s *adminServiceImpl) ListCourses(ctx context.Context, adminID string) ([]*dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindByCreator(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("list courses by creator: %w", err)
	}

	resp := make([]*dto.CourseResponse, len(courses))
	for i, c := range courses {
		resp[i] = toCourseResponse(c)
	}
	return resp, nil
}

func toCourseResponse(course *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Price:       course.Price,
		ImageURL:    course.ImageURL,
		CreatorID:   course.CreatorID,
	}
}
