package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/internal/service/tokens"
	"github.com/rshanto/gameghor/pkg/uow"
)

const JWTTokenExpire = 24 * time.Hour

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	hasher         PasswordHasher
	jwtTokenSecret []byte
	// adminCode - секрет, предъявление которого при регистрации дает роль
	// admin. Пустое значение полностью отключает такую регистрацию.
	adminCode string
}

func NewUserService(u uow.UOW, hasher PasswordHasher, jwtTokenSecret []byte, adminCode string) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		hasher:         hasher,
		jwtTokenSecret: jwtTokenSecret,
		adminCode:      adminCode,
	}, nil
}

type RegisterUserArgs struct {
	Email     string
	Name      string
	Password  string
	AdminCode string
}

// Register создает пользователя и возвращает jwt токен. Если пользователь с
// таким email уже есть, вернется ошибка с domain.ErrDuplicateKey в цепочке.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, string, error) {
	passwordHash, hashErr := s.hasher.HashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering user: %s", hashErr.Error())
	}

	role := domain.RoleUser
	if args.AdminCode != "" && s.adminCode != "" && args.AdminCode == s.adminCode {
		role = domain.RoleAdmin
	}

	user, createErr := s.userRepo.Create(ctx, repoargs.CreateUser{
		Email:        strings.ToLower(strings.TrimSpace(args.Email)),
		Name:         args.Name,
		PasswordHash: passwordHash,
		Role:         role,
	})
	if createErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", createErr)
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, user.Role, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("registering user: %s", tokenErr.Error())
	}
	return user, token, nil
}

type LoginUserArgs struct {
	Email    string
	Password string
}

// Login аутентифицирует пользователя по паре email/пароль.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, findErr := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(args.Email)))
	if findErr != nil {
		return nil, "", fmt.Errorf("logging in user: %w", findErr)
	}

	if !s.hasher.ComparePassword(args.Password, user.PasswordHash) {
		return nil, "", fmt.Errorf("logging in user: %w", domain.ErrPasswordMissMatch)
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, user.Role, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("logging in user: %s", tokenErr.Error())
	}
	return user, token, nil
}
