package member

import (
	"context"
	"errors"

	"classbook/internal/auth"

	"github.com/google/uuid"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTier        = errors.New("invalid membership tier")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Member, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Member, string, string, error)
	GetByID(ctx context.Context, memberID uuid.UUID) (*Member, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *Member, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Member, string, string, error) {
	tier := Tier(req.Tier)
	if !tier.Valid() {
		return nil, "", "", ErrInvalidTier
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	m, err := s.repo.Create(ctx, req.Name, req.Email, passwordHash, "member", tier)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		m.ID,
		m.Email,
		m.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return m, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Member, string, string, error) {
	m, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(m.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		m.ID,
		m.Email,
		m.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, "", "", err
	}

	return m, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, memberID uuid.UUID) (*Member, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Member, error) {
	claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	m, err := s.repo.GetByID(ctx, claims.MemberID)
	if err != nil {
		return "", nil, ErrMemberNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(m.ID, m.Email, m.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, m, nil
}
