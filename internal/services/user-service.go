package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/helper"
	"github.com/ScholarStream/scholarship_service/internal/interfaces"
	"github.com/ScholarStream/scholarship_service/internal/repository"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService covers registration, login and account administration.
// Registration and login each accept either a federated ID token or an
// email+password pair.
type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	ResolveToken(ctx context.Context, bearer string) (*domain.User, error)

	List(ctx context.Context, actor *domain.User, role string) ([]domain.User, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.User, error)
	SetRole(ctx context.Context, actor *domain.User, id string, role string) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor *domain.User, id string, req dto.UpdateProfileRequest) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type userService struct {
	users    repository.UserRepository
	auth     helper.Auth
	verifier interfaces.TokenVerifier
	logger   zerolog.Logger
}

func NewUserService(users repository.UserRepository, auth helper.Auth, verifier interfaces.TokenVerifier, logger zerolog.Logger) UserService {
	return &userService{
		users:    users,
		auth:     auth,
		verifier: verifier,
		logger:   logger,
	}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     strings.TrimSpace(req.Name),
		PhotoURL: req.PhotoURL,
	}

	switch {
	case req.IDToken != "":
		identity, err := s.verifyFederated(ctx, req.IDToken)
		if err != nil {
			return nil, err
		}
		user.Email = identity.Email
		if user.Name == "" {
			user.Name = identity.Name
		}
		if user.PhotoURL == "" {
			user.PhotoURL = identity.PhotoURL
		}

	case req.Email != "" && req.Password != "":
		hashed, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalid)
		}
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
		user.Password = hashed

	default:
		return nil, fmt.Errorf("either idToken or email and password are required: %w", domain.ErrInvalid)
	}

	role, err := s.resolveRegistrationRole(ctx, req)
	if err != nil {
		return nil, err
	}
	user.Role = role

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.authResponse("registered successfully", created)
}

// resolveRegistrationRole applies the role request rules: Student is the
// default, Moderator is open at registration, and Admin requires either an
// empty user collection or a token from an existing Admin.
func (s *userService) resolveRegistrationRole(ctx context.Context, req dto.RegisterRequest) (domain.Role, error) {
	if req.Role == "" {
		return domain.RoleStudent, nil
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return "", fmt.Errorf("unknown role %q: %w", req.Role, domain.ErrInvalid)
	}
	if role != domain.RoleAdmin {
		return role, nil
	}

	admins, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return "", err
	}
	if admins == 0 {
		return domain.RoleAdmin, nil
	}

	grantor, err := s.ResolveToken(ctx, req.AdminToken)
	if err != nil {
		return "", fmt.Errorf("admin role requires an admin credential: %w", domain.ErrForbidden)
	}
	if grantor.Role != domain.RoleAdmin {
		return "", fmt.Errorf("admin role requires an admin credential: %w", domain.ErrForbidden)
	}
	return domain.RoleAdmin, nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}

	switch {
	case req.IDToken != "":
		return s.loginFederated(ctx, req.IDToken)
	case req.Email != "" && req.Password != "":
		return s.loginPassword(ctx, req.Email, req.Password)
	default:
		return nil, fmt.Errorf("either idToken or email and password are required: %w", domain.ErrInvalid)
	}
}

// loginFederated upserts: a first federated login creates the Student account
// so the client needs no separate register call.
func (s *userService) loginFederated(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	identity, err := s.verifyFederated(ctx, idToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, identity.Email)
	if errors.Is(err, domain.ErrNotFound) {
		now := time.Now()
		user, err = s.users.Create(ctx, &domain.User{
			Name:      identity.Name,
			Email:     identity.Email,
			PhotoURL:  identity.PhotoURL,
			Role:      domain.RoleStudent,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err != nil {
		return nil, err
	}

	return s.authResponse("login successful", user)
}

func (s *userService) loginPassword(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	if user.Password == "" {
		return nil, fmt.Errorf("account uses federated login: %w", domain.ErrUnauthenticated)
	}
	if err := s.auth.VerifyPassword(password, user.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthenticated)
	}

	return s.authResponse("login successful", user)
}

func (s *userService) verifyFederated(ctx context.Context, idToken string) (*interfaces.FederatedIdentity, error) {
	if s.verifier == nil {
		return nil, fmt.Errorf("federated login is not configured: %w", domain.ErrInvalid)
	}
	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("identity token has no email: %w", domain.ErrUnauthenticated)
	}
	return identity, nil
}

func (s *userService) authResponse(message string, user *domain.User) (*dto.AuthResponse, error) {
	token, err := s.auth.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.AuthResponse{
		Message: message,
		Token:   token,
		User:    dto.NewUserResponse(user),
	}, nil
}

// ResolveToken verifies a bearer token and loads the user it names. Used by
// the auth middleware and by admin-token checks during registration.
func (s *userService) ResolveToken(ctx context.Context, bearer string) (*domain.User, error) {
	claims, err := s.auth.VerifyToken(bearer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrUnauthenticated)
	}

	id, err := parseID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("unknown user: %w", domain.ErrUnauthenticated)
	}
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("unknown user: %w", domain.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, actor *domain.User, role string) ([]domain.User, error) {
	if actor == nil {
		return nil, fmt.Errorf("authentication required: %w", domain.ErrUnauthenticated)
	}
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}

	var filter *domain.Role
	if role != "" {
		parsed, ok := domain.ParseRole(role)
		if !ok {
			return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalid)
		}
		filter = &parsed
	}
	return s.users.FindAll(ctx, filter)
}

func (s *userService) Get(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	userID, err := s.selfOrAdmin(actor, id)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}

func (s *userService) SetRole(ctx context.Context, actor *domain.User, id string, role string) (*domain.User, error) {
	if actor == nil {
		return nil, fmt.Errorf("authentication required: %w", domain.ErrUnauthenticated)
	}
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}

	parsed, ok := domain.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalid)
	}
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, userID, parsed)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user", id).Str("role", string(parsed)).Msg("role updated")
	return updated, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor *domain.User, id string, req dto.UpdateProfileRequest) (*domain.User, error) {
	userID, err := s.selfOrAdmin(actor, id)
	if err != nil {
		return nil, err
	}
	return s.users.UpdateProfile(ctx, userID, repository.UserProfilePatch{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
}

func (s *userService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor == nil {
		return fmt.Errorf("authentication required: %w", domain.ErrUnauthenticated)
	}
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}

	userID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}

func (s *userService) selfOrAdmin(actor *domain.User, id string) (primitive.ObjectID, error) {
	if actor == nil {
		return primitive.NilObjectID, fmt.Errorf("authentication required: %w", domain.ErrUnauthenticated)
	}
	userID, err := parseID(id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if actor.Role != domain.RoleAdmin && actor.ID != userID {
		return primitive.NilObjectID, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return userID, nil
}
