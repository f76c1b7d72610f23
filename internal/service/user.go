package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/client"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/config"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/model"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/repository"
)

const bcryptCost = 10

type UserService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error)
	GoogleSignin(ctx context.Context, req *dto.GoogleSigninRequest) (*dto.AuthResponse, error)
	Purchases(ctx context.Context, userID string) (*dto.PurchasesResponse, error)
}

type userServiceImpl struct {
	userRepo      repository.UserRepository
	purchaseRepo  repository.PurchaseRepository
	courseRepo    repository.CourseRepository
	tokenVerifier client.IDTokenVerifier
	authCfg       config.Auth
}

func NewUserService(
	userRepo repository.UserRepository,
	purchaseRepo repository.PurchaseRepository,
	courseRepo repository.CourseRepository,
	tokenVerifier client.IDTokenVerifier,
	authCfg config.Auth,
) UserService {
	return &userServiceImpl{
		userRepo:      userRepo,
		purchaseRepo:  purchaseRepo,
		courseRepo:    courseRepo,
		tokenVerifier: tokenVerifier,
		authCfg:       authCfg,
	}
}

func (s *userServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(req.FirstName)) < 2 {
		return nil, &apperr.InputError{Msg: "first name must be at least 2 characters long"}
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, apperr.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := issueToken(user.ID, s.authCfg.UserSecret, s.authCfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	}, nil
}

func (s *userServiceImpl) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil {
		return nil, apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := issueToken(user.ID, s.authCfg.UserSecret, s.authCfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	}, nil
}

// GoogleSignin exchanges a Google-issued ID token for a session. Accounts are
// provisioned on first signin; they carry no password and can only ever
// authenticate through the token exchange.
func (s *userServiceImpl) GoogleSignin(ctx context.Context, req *dto.GoogleSigninRequest) (*dto.AuthResponse, error) {
	if req.IDToken == "" {
		return nil, &apperr.InputError{Msg: "ID token is required"}
	}

	claims, err := s.tokenVerifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return nil, fmt.Errorf("google signin: %w", apperr.ErrInvalidCredentials)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("google signin token without email: %w", apperr.ErrInvalidCredentials)
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if user == nil {
		firstName, lastName := splitFullName(claims.Name)
		user = &model.User{
			ID:        uuid.NewString(),
			Email:     claims.Email,
			FirstName: firstName,
			LastName:  lastName,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	token, err := issueToken(user.ID, s.authCfg.UserSecret, s.authCfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	}, nil
}

func splitFullName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func (s *userServiceImpl) Purchases(ctx context.Context, userID string) (*dto.PurchasesResponse, error) {
	purchases, err := s.purchaseRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find purchases: %w", err)
	}

	courseIDs := make([]string, len(purchases))
	for i, p := range purchases {
		courseIDs[i] = p.CourseID
	}

	var courses []*model.Course
	if len(courseIDs) > 0 {
		courses, err = s.courseRepo.FindMany(ctx, courseIDs)
		if err != nil {
			return nil, fmt.Errorf("find purchased courses: %w", err)
		}
	}

	resp := &dto.PurchasesResponse{
		Purchases:   make([]*dto.PurchaseResponse, len(purchases)),
		CoursesData: make([]*dto.CourseResponse, len(courses)),
	}
	for i, p := range purchases {
		resp.Purchases[i] = &dto.PurchaseResponse{
			ID:        p.ID,
			CourseID:  p.CourseID,
			PaymentID: p.PaymentID,
		}
	}
	for i, c := range courses {
		resp.CoursesData[i] = toCourseResponse(c)
	}

	return resp, nil
}

func toUserResponse(user *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
