package service

import (
	"errors"
	"log"

	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/pkg/jwt"
	"go-medistore/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrEmailNotVerified   = errors.New("please verify your email to access this resource")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidRole        = errors.New("role must be CUSTOMER or SELLER")
)

type AuthService interface {
	Register(input RegisterInput) (*model.User, error)
	VerifyEmail(token string) (*model.User, error)
	Login(email, password string) (*LoginResponse, error)
}

// RegisterInput is the sign-up payload. Admin accounts are seeded at
// startup and cannot be self-registered.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     model.Role
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	mail     mailer.Mailer
}

func NewAuthService(userRepo repository.UserRepository, mail mailer.Mailer) AuthService {
	return &authService{userRepo: userRepo, mail: mail}
}

func (s *authService) Register(input RegisterInput) (*model.User, error) {
	if input.Role == "" {
		input.Role = model.RoleCustomer
	}
	if input.Role != model.RoleCustomer && input.Role != model.RoleSeller {
		return nil, ErrInvalidRole
	}

	if existing, err := s.userRepo.FindByEmail(input.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Role:   input.Role,
		Status: model.StatusActive,
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateVerificationToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	// Registration stands even when mail delivery fails; the link can be
	// re-requested by logging in again later.
	if err := s.mail.SendVerificationEmail(user.Email, user.Name, token); err != nil {
		log.Printf("Warning: failed to send verification email to %s: %v", user.Email, err)
	}

	return user, nil
}

func (s *authService) VerifyEmail(token string) (*model.User, error) {
	claims, err := jwt.ValidateToken(token, jwt.PurposeVerifyEmail)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.EmailVerified {
		return user, nil
	}

	user.EmailVerified = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != model.StatusActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, string(user.Role), user.EmailVerified)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
