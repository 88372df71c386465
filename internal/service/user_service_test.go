package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/internal/service/mocks"
	"github.com/rshanto/gameghor/internal/service/tokens"
	"github.com/rshanto/gameghor/pkg/uow"
	uowmocks "github.com/rshanto/gameghor/pkg/uow/mocks"
)

const testAdminCode = "LETMEIN"

type UserServiceTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockUOW      *uowmocks.MockUOW
	mockUserRepo *mocks.MockUserRepository
	mockPsswd    *mocks.MockPasswordHasher
	jwtSecret    []byte
	userService  *UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockPsswd = mocks.NewMockPasswordHasher(s.mockCtrl)

	s.jwtSecret = []byte("secret")

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	userService, servErr := NewUserService(s.mockUOW, s.mockPsswd, s.jwtSecret, testAdminCode)
	s.Require().NoError(servErr)
	s.userService = userService
}

func (s *UserServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *UserServiceTestSuite) TestRegister() {
	type tcase struct {
		name      string
		args      RegisterUserArgs
		wantEmail string
		wantRole  domain.RoleType
	}

	cases := []tcase{
		{
			name: "regular user",
			args: RegisterUserArgs{
				Email:    "Buyer@Example.com",
				Name:     "Buyer",
				Password: "password1",
			},
			wantEmail: "buyer@example.com",
			wantRole:  domain.RoleUser,
		},
		{
			name: "wrong admin code falls back to user",
			args: RegisterUserArgs{
				Email:     "second@example.com",
				Name:      "Second",
				Password:  "password1",
				AdminCode: "wrong",
			},
			wantEmail: "second@example.com",
			wantRole:  domain.RoleUser,
		},
		{
			name: "admin code promotes to admin",
			args: RegisterUserArgs{
				Email:     "boss@example.com",
				Name:      "Boss",
				Password:  "password1",
				AdminCode: testAdminCode,
			},
			wantEmail: "boss@example.com",
			wantRole:  domain.RoleAdmin,
		},
	}

	for _, c := range cases {
		s.Run(c.name, func() {
			s.mockPsswd.EXPECT().HashPassword(c.args.Password).Return("hashed", nil)

			s.mockUserRepo.EXPECT().
				Create(gomock.Any(), repoargs.CreateUser{
					Email:        c.wantEmail,
					Name:         c.args.Name,
					PasswordHash: "hashed",
					Role:         c.wantRole,
				}).
				Return(&domain.User{ID: 1, Email: c.wantEmail, Role: c.wantRole}, nil)

			user, tokenStr, err := s.userService.Register(context.Background(), c.args)
			s.Require().NoError(err)
			s.Equal(c.wantRole, user.Role)

			// в токене должна быть зашита роль нового пользователя.
			token, parseErr := tokens.ValidateUserJWT(tokenStr, s.jwtSecret)
			s.Require().NoError(parseErr)
			claims, ok := token.Claims.(*tokens.UserClaims)
			s.Require().True(ok)
			s.Equal(c.wantRole, claims.Role)
		})
	}
}

func (s *UserServiceTestSuite) TestRegisterDuplicateEmail() {
	s.mockPsswd.EXPECT().HashPassword("password1").Return("hashed", nil)
	s.mockUserRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrDuplicateKey)

	user, tokenStr, err := s.userService.Register(context.Background(), RegisterUserArgs{
		Email:    "buyer@example.com",
		Name:     "Buyer",
		Password: "password1",
	})
	s.Nil(user)
	s.Empty(tokenStr)
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)
}

func (s *UserServiceTestSuite) TestLogin() {
	savedUser := domain.User{
		ID:           1,
		Email:        "buyer@example.com",
		PasswordHash: "hash ok",
		Role:         domain.RoleUser,
	}

	type tcase struct {
		name    string
		args    LoginUserArgs
		wantErr error
	}

	cases := []tcase{
		{
			name: "ok",
			args: LoginUserArgs{Email: " Buyer@Example.COM ", Password: "password1"},
		},
		{
			name:    "unknown email",
			args:    LoginUserArgs{Email: "wrong@example.com", Password: "password1"},
			wantErr: domain.ErrRecordNotFound,
		},
		{
			name:    "wrong password",
			args:    LoginUserArgs{Email: "buyer@example.com", Password: "wrong pass"},
			wantErr: domain.ErrPasswordMissMatch,
		},
	}

	s.mockUserRepo.EXPECT().
		FindByEmail(gomock.Any(), "buyer@example.com").
		Return(&savedUser, nil).Times(2)
	s.mockUserRepo.EXPECT().
		FindByEmail(gomock.Any(), "wrong@example.com").
		Return(nil, domain.ErrRecordNotFound)

	s.mockPsswd.EXPECT().ComparePassword("password1", savedUser.PasswordHash).Return(true)
	s.mockPsswd.EXPECT().ComparePassword("wrong pass", savedUser.PasswordHash).Return(false)

	for _, c := range cases {
		s.Run(c.name, func() {
			user, tokenStr, err := s.userService.Login(context.Background(), c.args)
			if c.wantErr != nil {
				s.Nil(user)
				s.Empty(tokenStr)
				s.Require().ErrorIs(err, c.wantErr)
				return
			}
			s.Require().NoError(err)
			s.Equal(savedUser.ID, user.ID)
			s.NotEmpty(tokenStr)
		})
	}
}

func (s *UserServiceTestSuite) TestTokenExpiry() {
	expired, genErr := tokens.GenerateUserJWT(1, domain.RoleUser, -time.Minute, s.jwtSecret)
	s.Require().NoError(genErr)

	_, err := tokens.ValidateUserJWT(expired, s.jwtSecret)
	s.Require().ErrorIs(err, tokens.ErrTokenExpired)
}
