package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/internal/service/mocks"
	"github.com/rshanto/gameghor/pkg/uow"
	uowmocks "github.com/rshanto/gameghor/pkg/uow/mocks"
)

type CouponServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockUOW        *uowmocks.MockUOW
	mockCouponRepo *mocks.MockCouponRepository
	couponService  *CouponService
	now            time.Time
}

func TestCouponServiceSuite(t *testing.T) {
	suite.Run(t, new(CouponServiceTestSuite))
}

func (s *CouponServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockCouponRepo = mocks.NewMockCouponRepository(s.mockCtrl)

	// Мок получения репозитория из uow. Выполняется в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.CouponRepoName)).
		Return(s.mockCouponRepo, nil).AnyTimes()

	couponService, servErr := NewCouponService(s.mockUOW)
	s.Require().NoError(servErr)

	// фиксируем часы сервиса, чтобы проверять граничные моменты истечения.
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	couponService.now = func() time.Time { return s.now }

	s.couponService = couponService
}

func (s *CouponServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *CouponServiceTestSuite) TestValidate() {
	expired := s.now.Add(-time.Minute)

	s.mockCouponRepo.EXPECT().FindByCode(gomock.Any(), "SAVE20").
		Return(&domain.Coupon{Code: "SAVE20", DiscountPercent: 20, Active: true}, nil)

	result, err := s.couponService.Validate(context.Background(), "save20", 7)
	s.Require().NoError(err)
	s.Equal(&domain.CouponResult{Valid: true, DiscountPercent: 20}, result)

	// неизвестный код - невалидный результат, не ошибка.
	s.mockCouponRepo.EXPECT().FindByCode(gomock.Any(), "NOPE").
		Return(nil, domain.ErrRecordNotFound)

	result, err = s.couponService.Validate(context.Background(), "nope", 7)
	s.Require().NoError(err)
	s.Equal(&domain.CouponResult{Reason: domain.CouponReasonNotFound}, result)

	// просроченный купон.
	s.mockCouponRepo.EXPECT().FindByCode(gomock.Any(), "OLD").
		Return(&domain.Coupon{Code: "OLD", DiscountPercent: 50, Active: true, ExpiresAt: &expired}, nil)

	result, err = s.couponService.Validate(context.Background(), "old", 7)
	s.Require().NoError(err)
	s.Equal(&domain.CouponResult{Reason: domain.CouponReasonExpired}, result)

	// купон на другую игру.
	s.mockCouponRepo.EXPECT().FindByCode(gomock.Any(), "GAME8").
		Return(&domain.Coupon{Code: "GAME8", DiscountPercent: 10, Active: true, GameID: 8}, nil)

	result, err = s.couponService.Validate(context.Background(), "game8", 7)
	s.Require().NoError(err)
	s.Equal(&domain.CouponResult{Reason: domain.CouponReasonNotApplicable}, result)
}

func (s *CouponServiceTestSuite) TestValidateStorageError() {
	storageErr := errors.New("connection reset")
	s.mockCouponRepo.EXPECT().FindByCode(gomock.Any(), "SAVE20").
		Return(nil, storageErr)

	result, err := s.couponService.Validate(context.Background(), "SAVE20", 7)
	s.Nil(result)
	s.Require().ErrorIs(err, storageErr)
}

func (s *CouponServiceTestSuite) TestCreate() {
	s.mockCouponRepo.EXPECT().
		Create(gomock.Any(), repoargs.CreateCoupon{Code: "SAVE20", DiscountPercent: 20, Active: true}).
		Return(&domain.Coupon{ID: 1, Code: "SAVE20", DiscountPercent: 20, Active: true}, nil)

	// код нормализуется перед записью.
	coupon, err := s.couponService.Create(context.Background(), CreateCouponArgs{
		Code:            "  save20 ",
		DiscountPercent: 20,
		Active:          true,
	})
	s.Require().NoError(err)
	s.Equal("SAVE20", coupon.Code)
}

func (s *CouponServiceTestSuite) TestCreateInvalidInput() {
	type tcase struct {
		name      string
		args      CreateCouponArgs
		wantField string
	}

	cases := []tcase{
		{
			name:      "blank code",
			args:      CreateCouponArgs{Code: "   ", DiscountPercent: 20},
			wantField: "code",
		},
		{
			name:      "negative percent",
			args:      CreateCouponArgs{Code: "SAVE", DiscountPercent: -1},
			wantField: "discount_percent",
		},
		{
			name:      "percent over hundred",
			args:      CreateCouponArgs{Code: "SAVE", DiscountPercent: 101},
			wantField: "discount_percent",
		},
	}

	for _, c := range cases {
		s.Run(c.name, func() {
			coupon, err := s.couponService.Create(context.Background(), c.args)
			s.Nil(coupon)

			admErr, ok := domain.AsAdmissionError(err)
			s.Require().True(ok)
			s.Equal(domain.AdmissionInvalidInput, admErr.Kind)
			s.Contains(admErr.Fields, c.wantField)
		})
	}
}

func (s *CouponServiceTestSuite) TestUpdatePercentOutOfRange() {
	badPercent := int32(150)
	coupon, err := s.couponService.Update(context.Background(), 1, repoargs.UpdateCoupon{DiscountPercent: &badPercent})
	s.Nil(coupon)

	admErr, ok := domain.AsAdmissionError(err)
	s.Require().True(ok)
	s.Equal(domain.AdmissionInvalidInput, admErr.Kind)
}

// TestUpdateClearExpiry: флаг ClearExpiresAt доходит до репозитория. Это
// единственный путь сделать купон бессрочным: nil в ExpiresAt значит "не менять".
func (s *CouponServiceTestSuite) TestUpdateClearExpiry() {
	s.mockCouponRepo.EXPECT().
		Update(gomock.Any(), int64(3), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64, args repoargs.UpdateCoupon) (*domain.Coupon, error) {
			s.True(args.ClearExpiresAt)
			s.Nil(args.ExpiresAt)
			return &domain.Coupon{ID: id, Code: "SAVE20", Active: true}, nil
		})

	coupon, err := s.couponService.Update(context.Background(), 3, repoargs.UpdateCoupon{ClearExpiresAt: true})
	s.Require().NoError(err)
	s.Nil(coupon.ExpiresAt)
}

func (s *CouponServiceTestSuite) TestNormalizeCouponCode() {
	s.Equal("SAVE20", NormalizeCouponCode("save20"))
	s.Equal("SAVE20", NormalizeCouponCode("  Save20\t"))
	s.Equal("", NormalizeCouponCode("   "))
}
