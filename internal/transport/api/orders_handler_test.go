package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/logger"
	"github.com/rshanto/gameghor/internal/service"
	"github.com/rshanto/gameghor/internal/service/tokens"
	"github.com/rshanto/gameghor/internal/transport/api/mocks"
	"github.com/rshanto/gameghor/internal/transport/api/testutils"
)

type OrdersHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockOrderService *mocks.MockOrderServicer
	jwtSecret        []byte
}

func TestOrdersHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrdersHandlerTestSuite))
}

func (s *OrdersHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockOrderService = mocks.NewMockOrderServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		OrderService: s.mockOrderService,
		JWTSecretKey: s.jwtSecret,
	})
}

func (s *OrdersHandlerTestSuite) postOrder(payload any) *http.Response {
	body, marshalErr := json.Marshal(payload)
	s.Require().NoError(marshalErr)

	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    OrdersRoute,
		Body:   bytes.NewReader(body),
	}, testutils.WithJSONBody())
	s.Require().NoError(err)
	return resp
}

func (s *OrdersHandlerTestSuite) validParams() CreateOrderParams {
	return CreateOrderParams{
		GameID:        7,
		BuyerEmail:    "buyer@example.com",
		PaymentNumber: "01712345678",
		TransactionID: "TX12345678",
	}
}

func (s *OrdersHandlerTestSuite) TestCreateOrder() {
	s.mockOrderService.EXPECT().
		PlaceOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.PlaceOrderArgs) (*domain.Order, error) {
			s.Equal(int64(7), args.GameID)
			s.Equal("buyer@example.com", args.BuyerEmail)
			return &domain.Order{
				ID:         1,
				GameID:     args.GameID,
				BuyerEmail: args.BuyerEmail,
				UnitPrice:  decimal.NewFromInt(500),
				TotalPrice: decimal.NewFromInt(500),
				Status:     domain.OrderStatusPending,
			}, nil
		})

	resp := s.postOrder(s.validParams())
	defer resp.Body.Close()
	s.Equal(http.StatusCreated, resp.StatusCode)

	var orderResp OrderResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&orderResp))
	s.Equal(domain.OrderStatusPending, orderResp.Status)
	s.InDelta(500.0, orderResp.TotalPrice, 0.001)
}

// TestCreateOrderAdmissionMapping: каждый вид отказа приема транслируется в
// свой http статус.
func (s *OrdersHandlerTestSuite) TestCreateOrderAdmissionMapping() {
	type tcase struct {
		name       string
		serviceErr error
		wantStatus int
	}

	cases := []tcase{
		{
			name:       "game not found",
			serviceErr: domain.NewNotFoundError("game"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "out of stock",
			serviceErr: domain.NewOutOfStockError(),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "invalid input",
			serviceErr: domain.NewInvalidInputError("payment_number"),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid coupon",
			serviceErr: domain.NewInvalidCouponError(domain.CouponReasonExpired),
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, c := range cases {
		s.Run(c.name, func() {
			s.mockOrderService.EXPECT().
				PlaceOrder(gomock.Any(), gomock.Any()).
				Return(nil, c.serviceErr)

			resp := s.postOrder(s.validParams())
			defer resp.Body.Close()
			s.Equal(c.wantStatus, resp.StatusCode)
		})
	}
}

func (s *OrdersHandlerTestSuite) TestCreateOrderBadPayload() {
	// невалидный email отсекает binding, до сервиса запрос не доходит.
	params := s.validParams()
	params.BuyerEmail = "not-an-email"

	resp := s.postOrder(params)
	defer resp.Body.Close()
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}

func (s *OrdersHandlerTestSuite) TestAdminOrdersAuth() {
	adminToken, adminErr := tokens.GenerateUserJWT(1, domain.RoleAdmin, time.Hour, s.jwtSecret)
	s.Require().NoError(adminErr)
	userToken, userErr := tokens.GenerateUserJWT(2, domain.RoleUser, time.Hour, s.jwtSecret)
	s.Require().NoError(userErr)

	s.mockOrderService.EXPECT().List(gomock.Any()).
		Return([]domain.Order{{ID: 1, Status: domain.OrderStatusPending}}, nil)

	type tcase struct {
		name       string
		opts       []func(*testutils.RequestOptions)
		wantStatus int
	}

	cases := []tcase{
		{
			name:       "no token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "user role",
			opts:       []func(*testutils.RequestOptions){testutils.WithAuthToken(userToken)},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin role",
			opts:       []func(*testutils.RequestOptions){testutils.WithAuthToken(adminToken)},
			wantStatus: http.StatusOK,
		},
	}

	for _, c := range cases {
		s.Run(c.name, func() {
			resp, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    AdminRouteGroup + AdminOrdersRoute,
			}, c.opts...)
			s.Require().NoError(err)
			defer resp.Body.Close()
			s.Equal(c.wantStatus, resp.StatusCode)
		})
	}
}

func (s *OrdersHandlerTestSuite) TestUpdateStatus() {
	adminToken, tokenErr := tokens.GenerateUserJWT(1, domain.RoleAdmin, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	patch := func(url string, payload any) *http.Response {
		body, marshalErr := json.Marshal(payload)
		s.Require().NoError(marshalErr)

		resp, err := testutils.MakeRequest(testutils.RequestArgs{
			Router: s.router,
			Method: http.MethodPatch,
			URL:    url,
			Body:   bytes.NewReader(body),
		}, testutils.WithAuthToken(adminToken), testutils.WithJSONBody())
		s.Require().NoError(err)
		return resp
	}

	// успешный перевод.
	s.mockOrderService.EXPECT().
		SetStatus(gomock.Any(), int64(1), domain.OrderStatusProcessing).
		Return(&domain.Order{ID: 1, Status: domain.OrderStatusProcessing}, nil)

	resp := patch("/admin/orders/1", UpdateOrderParams{Status: "processing"})
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	// запрещенный переход - конфликт.
	s.mockOrderService.EXPECT().
		SetStatus(gomock.Any(), int64(2), domain.OrderStatusProcessing).
		Return(nil, domain.NewInvalidTransitionError(domain.OrderStatusCompleted, domain.OrderStatusProcessing))

	resp = patch("/admin/orders/2", UpdateOrderParams{Status: "processing"})
	defer resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)

	// неизвестный статус отсекается до сервиса.
	resp = patch("/admin/orders/3", UpdateOrderParams{Status: "shipped"})
	defer resp.Body.Close()
	s.Equal(http.StatusUnprocessableEntity, resp.StatusCode)
}
