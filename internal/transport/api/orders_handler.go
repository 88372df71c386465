package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/service"
)

type OrdersHandler struct {
	orderSvs OrderServicer
}

func NewOrdersHandler(orderSvs OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs: orderSvs,
	}
}

type OrderResponse struct {
	ID              int64                  `json:"id"`
	GameID          int64                  `json:"game_id"`
	BuyerEmail      string                 `json:"buyer_email"`
	PaymentNumber   string                 `json:"payment_number"`
	TransactionID   string                 `json:"transaction_id"`
	CouponCode      string                 `json:"coupon_code,omitempty"`
	UnitPrice       float64                `json:"unit_price"`
	DiscountPercent int32                  `json:"discount_percent"`
	TotalPrice      float64                `json:"total_price"`
	Note            string                 `json:"note,omitempty"`
	Status          domain.OrderStatusType `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func newOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID,
		GameID:          order.GameID,
		BuyerEmail:      order.BuyerEmail,
		PaymentNumber:   order.PaymentNumber,
		TransactionID:   order.TransactionID,
		CouponCode:      order.CouponCode,
		UnitPrice:       order.UnitPrice.InexactFloat64(),
		DiscountPercent: order.DiscountPercent,
		TotalPrice:      order.TotalPrice.InexactFloat64(),
		Note:            order.Note,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

type CreateOrderParams struct {
	GameID        int64  `binding:"required,gt=0"      json:"game_id"`
	BuyerEmail    string `binding:"required,email"     json:"buyer_email"`
	PaymentNumber string `binding:"required,max=20"    json:"payment_number"`
	TransactionID string `binding:"required,max=64"    json:"transaction_id"`
	CouponCode    string `binding:"max=64"             json:"coupon_code"`
	Note          string `binding:"max=1000"           json:"note"`
}

// Create POST OrdersRoute. Публичная точка приема заказов: заказ либо
// создается в статусе pending, либо отклоняется с типизированной причиной.
func (o *OrdersHandler) Create(c *gin.Context) {
	var params CreateOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := o.orderSvs.PlaceOrder(reqCtx, service.PlaceOrderArgs{
		GameID:        params.GameID,
		BuyerEmail:    params.BuyerEmail,
		PaymentNumber: params.PaymentNumber,
		TransactionID: params.TransactionID,
		CouponCode:    params.CouponCode,
		Note:          params.Note,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(order))
}

// Index GET AdminRouteGroup + AdminOrdersRoute.
func (o *OrdersHandler) Index(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	orders, err := o.orderSvs.List(reqCtx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i := range orders {
		response[i] = newOrderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, response)
}

type UpdateOrderParams struct {
	Status string `binding:"required" json:"status"`
}

// UpdateStatus PATCH AdminRouteGroup + AdminOrderRoute. Меняет статус заказа
// по правилам жизненного цикла; снапшот цены при этом не пересчитывается.
func (o *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var params UpdateOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	status, valid := domain.ParseOrderStatus(params.Status)
	if !valid {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown status"})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	order, err := o.orderSvs.SetStatus(reqCtx, id, status)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}
