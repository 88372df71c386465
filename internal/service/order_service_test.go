package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/internal/service/mocks"
	"github.com/rshanto/gameghor/pkg/uow"
	uowmocks "github.com/rshanto/gameghor/pkg/uow/mocks"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUOW       *uowmocks.MockUOW
	mockTX        *uowmocks.MockTX
	mockOrderRepo *mocks.MockOrderRepository
	mockGameRepo  *mocks.MockGameRepository
	mockCouponSvs *mocks.MockCouponValidator
	orderService  *OrderService
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockOrderRepo = mocks.NewMockOrderRepository(s.mockCtrl)
	s.mockGameRepo = mocks.NewMockGameRepository(s.mockCtrl)
	s.mockCouponSvs = mocks.NewMockCouponValidator(s.mockCtrl)

	// Моки получения репозиториев из uow. Выполняются в инициализации сервиса.
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.GameRepoName)).
		Return(s.mockGameRepo, nil).AnyTimes()

	orderService, servErr := NewOrderService(s.mockUOW, s.mockCouponSvs)
	s.Require().NoError(servErr)
	s.orderService = orderService
}

func (s *OrderServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// expectDo прогоняет колбек uow.Do через мок транзакции, как это сделала бы
// настоящая реализация при успешном коммите.
func (s *OrderServiceTestSuite) expectDo() {
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})
}

func (s *OrderServiceTestSuite) game(price string, stock int32) *domain.Game {
	return &domain.Game{
		ID:         7,
		Title:      "Elden Ring",
		Price:      decimal.RequireFromString(price),
		Platform:   domain.PlatformPC,
		InStock:    stock > 0,
		StockCount: stock,
	}
}

func (s *OrderServiceTestSuite) validArgs() PlaceOrderArgs {
	return PlaceOrderArgs{
		GameID:        7,
		BuyerEmail:    "buyer@example.com",
		PaymentNumber: "01712345678",
		TransactionID: "TX12345678",
	}
}

func (s *OrderServiceTestSuite) TestPlaceOrderWithoutCoupon() {
	s.mockGameRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(s.game("500", 3), nil)

	s.mockOrderRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
			s.True(args.UnitPrice.Equal(decimal.RequireFromString("500")))
			s.EqualValues(0, args.DiscountPercent)
			s.True(args.TotalPrice.Equal(decimal.RequireFromString("500")))
			s.Empty(args.CouponCode)
			return &domain.Order{
				ID:         1,
				GameID:     args.GameID,
				UnitPrice:  args.UnitPrice,
				TotalPrice: args.TotalPrice,
				Status:     domain.OrderStatusPending,
			}, nil
		})

	order, err := s.orderService.PlaceOrder(context.Background(), s.validArgs())
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusPending, order.Status)
	s.True(order.TotalPrice.Equal(decimal.RequireFromString("500")))
}

func (s *OrderServiceTestSuite) TestPlaceOrderWithCoupon() {
	s.mockGameRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(s.game("500", 3), nil)
	s.mockCouponSvs.EXPECT().Validate(gomock.Any(), "save20", int64(7)).
		Return(&domain.CouponResult{Valid: true, DiscountPercent: 20}, nil)

	s.mockOrderRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
			s.True(args.UnitPrice.Equal(decimal.RequireFromString("500")))
			s.EqualValues(20, args.DiscountPercent)
			s.True(args.TotalPrice.Equal(decimal.RequireFromString("400")))
			s.Equal("SAVE20", args.CouponCode)
			return &domain.Order{ID: 1, Status: domain.OrderStatusPending, TotalPrice: args.TotalPrice}, nil
		})

	args := s.validArgs()
	args.CouponCode = "save20"

	order, err := s.orderService.PlaceOrder(context.Background(), args)
	s.Require().NoError(err)
	s.True(order.TotalPrice.Equal(decimal.RequireFromString("400")))
}

func (s *OrderServiceTestSuite) TestPlaceOrderGameNotFound() {
	s.mockGameRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(nil, domain.ErrRecordNotFound)

	order, err := s.orderService.PlaceOrder(context.Background(), s.validArgs())
	s.Nil(order)

	admErr, ok := domain.AsAdmissionError(err)
	s.Require().True(ok)
	s.Equal(domain.AdmissionNotFound, admErr.Kind)
}

func (s *OrderServiceTestSuite) TestPlaceOrderOutOfStock() {
	s.mockGameRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(s.game("500", 0), nil)

	order, err := s.orderService.PlaceOrder(context.Background(), s.validArgs())
	s.Nil(order)

	admErr, ok := domain.AsAdmissionError(err)
	s.Require().True(ok)
	s.Equal(domain.AdmissionOutOfStock, admErr.Kind)
}

// TestPlaceOrderWithdrawnGame: снятая с продажи игра (in_stock = false)
// блокирует прием даже при ненулевом остатке на складе.
func (s *OrderServiceTestSuite) TestPlaceOrderWithdrawnGame() {
	withdrawn := s.game("500", 5)
	withdrawn.InStock = false

	s.mockGameRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(withdrawn, nil)

	order, err := s.orderService.PlaceOrder(context.Background(), s.validArgs())
	s.Nil(order)

	admErr, ok := domain.AsAdmissionError(err)
	s.Require().True(ok)
	s.Equal(domain.AdmissionOutOfStock, admErr.Kind)
}

// TestPlaceOrderOutOfStockWithValidCoupon: отказ out_of_stock не зависит от
// купона, даже валидный купон не спасает заявку на закончившуюся игру.
func (s *OrderServiceTestSuite) TestPlaceOrderOutOfStockWithValidCoupon() {
	s.mockGameRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(s.game("500", 0), nil)
	s.mockCouponSvs.EXPECT().Validate(gomock.Any(), "save20", int64(7)).
		Return(&domain.CouponResult{Valid: true, DiscountPercent: 20}, nil)

	args := s.validArgs()
	args.CouponCode = "save20"

	order, err := s.orderService.PlaceOrder(context.Background(), args)
	s.Nil(order)

	admErr, ok := domain.AsAdmissionError(err)
	s.Require().True(ok)
	s.Equal(domain.AdmissionOutOfStock, admErr.Kind)
}

// TestPlaceOrderNotFoundWinsOverCouponFailure: игра не найдена, а проверка
// купона упала с ошибкой хранилища. Наружу уходит not_found независимо от
// того, какая из параллельных загрузок завершилась первой.
func (s *OrderServiceTestSuite) TestPlaceOrderNotFoundWinsOverCouponFailure() {
	s.mockGameRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(nil, domain.ErrRecordNotFound)
	s.mockCouponSvs.EXPECT().Validate(gomock.Any(), "save20", int64(7)).
		Return(nil, domain.ErrUnknown)

	args := s.validArgs()
	args.CouponCode = "save20"

	order, err := s.orderService.PlaceOrder(context.Background(), args)
	s.Nil(order)

	admErr, ok := domain.AsAdmissionError(err)
	s.Require().True(ok)
	s.Equal(domain.AdmissionNotFound, admErr.Kind)
}

// TestPlaceOrderOutOfStockBeforeValidation проверяет порядок отказов: у
// заявки с невалидными полями на отсутствующую в наличии игру приоритет у
// out_of_stock.
func (s *OrderServiceTestSuite) TestPlaceOrderOutOfStockBeforeValidation() {
	s.mockGameRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(s.game("500", 0), nil)

	args := s.validArgs()
	args.BuyerEmail = "not-an-email"

	order, err := s.orderService.PlaceOrder(context.Background(), args)
	s.Nil(order)

	admErr, ok := domain.AsAdmissionError(err)
	s.Require().True(ok)
	s.Equal(domain.AdmissionOutOfStock, admErr.Kind)
}

func (s *OrderServiceTestSuite) TestPlaceOrderInvalidInput() {
	s.mockGameRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(s.game("500", 3), nil).AnyTimes()

	type tcase struct {
		name      string
		mutate    func(*PlaceOrderArgs)
		wantField string
	}

	cases := []tcase{
		{
			name:      "bad email",
			mutate:    func(a *PlaceOrderArgs) { a.BuyerEmail = "not-an-email" },
			wantField: "buyer_email",
		},
		{
			name:      "missing payment number",
			mutate:    func(a *PlaceOrderArgs) { a.PaymentNumber = "" },
			wantField: "payment_number",
		},
		{
			name:      "missing transaction id",
			mutate:    func(a *PlaceOrderArgs) { a.TransactionID = "" },
			wantField: "transaction_id",
		},
	}

	for _, c := range cases {
		s.Run(c.name, func() {
			args := s.validArgs()
			c.mutate(&args)

			order, err := s.orderService.PlaceOrder(context.Background(), args)
			s.Nil(order)

			admErr, ok := domain.AsAdmissionError(err)
			s.Require().True(ok)
			s.Equal(domain.AdmissionInvalidInput, admErr.Kind)
			s.Contains(admErr.Fields, c.wantField)
		})
	}
}

// TestPlaceOrderInvalidCoupon: заявка с невалидным купоном отклоняется
// целиком, заказ по полной цене не создается.
func (s *OrderServiceTestSuite) TestPlaceOrderInvalidCoupon() {
	s.mockGameRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
		Return(s.game("500", 3), nil)
	s.mockCouponSvs.EXPECT().Validate(gomock.Any(), "old", int64(7)).
		Return(&domain.CouponResult{Reason: domain.CouponReasonExpired}, nil)

	args := s.validArgs()
	args.CouponCode = "old"

	order, err := s.orderService.PlaceOrder(context.Background(), args)
	s.Nil(order)

	admErr, ok := domain.AsAdmissionError(err)
	s.Require().True(ok)
	s.Equal(domain.AdmissionInvalidCoupon, admErr.Kind)
	s.Equal(domain.CouponReasonExpired, admErr.Reason)
}

func (s *OrderServiceTestSuite) TestSetStatus() {
	s.expectDo()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil)

	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(1)).
		Return(&domain.Order{ID: 1, GameID: 7, Status: domain.OrderStatusPending}, nil)
	s.mockOrderRepo.EXPECT().UpdateStatus(gomock.Any(), int64(1), domain.OrderStatusProcessing).
		Return(&domain.Order{ID: 1, GameID: 7, Status: domain.OrderStatusProcessing}, nil)

	order, err := s.orderService.SetStatus(context.Background(), 1, domain.OrderStatusProcessing)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusProcessing, order.Status)
}

// TestSetStatusCompleted: завершение заказа списывает единицу остатка в той же
// транзакции.
func (s *OrderServiceTestSuite) TestSetStatusCompleted() {
	s.expectDo()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil)
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.GameRepoName)).
		Return(s.mockGameRepo, nil)

	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(1)).
		Return(&domain.Order{ID: 1, GameID: 7, Status: domain.OrderStatusProcessing}, nil)
	s.mockOrderRepo.EXPECT().UpdateStatus(gomock.Any(), int64(1), domain.OrderStatusCompleted).
		Return(&domain.Order{ID: 1, GameID: 7, Status: domain.OrderStatusCompleted}, nil)
	s.mockGameRepo.EXPECT().DecrementStock(gomock.Any(), int64(7)).
		Return(true, nil)

	order, err := s.orderService.SetStatus(context.Background(), 1, domain.OrderStatusCompleted)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusCompleted, order.Status)
}

// TestSetStatusPriceImmutable: переход статуса не трогает ценовой снапшот -
// сервис пишет только статус, даже если скидка купона с тех пор изменилась.
func (s *OrderServiceTestSuite) TestSetStatusPriceImmutable() {
	frozen := &domain.Order{
		ID:              1,
		GameID:          7,
		Status:          domain.OrderStatusPending,
		UnitPrice:       decimal.RequireFromString("500"),
		DiscountPercent: 20,
		TotalPrice:      decimal.RequireFromString("400"),
	}

	s.expectDo()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil)

	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(frozen, nil)
	s.mockOrderRepo.EXPECT().UpdateStatus(gomock.Any(), int64(1), domain.OrderStatusProcessing).
		DoAndReturn(func(_ context.Context, id int64, status domain.OrderStatusType) (*domain.Order, error) {
			updated := *frozen
			updated.Status = status
			return &updated, nil
		})

	order, err := s.orderService.SetStatus(context.Background(), 1, domain.OrderStatusProcessing)
	s.Require().NoError(err)
	s.True(order.UnitPrice.Equal(frozen.UnitPrice))
	s.EqualValues(20, order.DiscountPercent)
	s.True(order.TotalPrice.Equal(frozen.TotalPrice))
}

func (s *OrderServiceTestSuite) TestSetStatusInvalidTransition() {
	type tcase struct {
		name string
		from domain.OrderStatusType
		to   domain.OrderStatusType
	}

	cases := []tcase{
		{name: "completed to processing", from: domain.OrderStatusCompleted, to: domain.OrderStatusProcessing},
		{name: "cancelled to pending", from: domain.OrderStatusCancelled, to: domain.OrderStatusPending},
		{name: "completed to cancelled", from: domain.OrderStatusCompleted, to: domain.OrderStatusCancelled},
		{name: "processing to pending", from: domain.OrderStatusProcessing, to: domain.OrderStatusPending},
	}

	for _, c := range cases {
		s.Run(c.name, func() {
			s.expectDo()
			s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
				Return(s.mockOrderRepo, nil)
			s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(1)).
				Return(&domain.Order{ID: 1, Status: c.from}, nil)

			order, err := s.orderService.SetStatus(context.Background(), 1, c.to)
			s.Nil(order)

			admErr, ok := domain.AsAdmissionError(err)
			s.Require().True(ok)
			s.Equal(domain.AdmissionInvalidTransition, admErr.Kind)
		})
	}
}

func (s *OrderServiceTestSuite) TestSetStatusOrderNotFound() {
	s.expectDo()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil)
	s.mockOrderRepo.EXPECT().FindByID(gomock.Any(), int64(99)).
		Return(nil, domain.ErrRecordNotFound)

	order, err := s.orderService.SetStatus(context.Background(), 99, domain.OrderStatusProcessing)
	s.Nil(order)

	admErr, ok := domain.AsAdmissionError(err)
	s.Require().True(ok)
	s.Equal(domain.AdmissionNotFound, admErr.Kind)
}
