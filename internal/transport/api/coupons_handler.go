package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/internal/service"
)

type CouponsHandler struct {
	couponSvs CouponServicer
}

func NewCouponsHandler(couponSvs CouponServicer) *CouponsHandler {
	return &CouponsHandler{
		couponSvs: couponSvs,
	}
}

type ValidateCouponParams struct {
	Code   string `binding:"required,max=64" json:"code"`
	GameID int64  `binding:"required,gt=0"   json:"game_id"`
}

type CouponResultResponse struct {
	Valid           bool   `json:"valid"`
	DiscountPercent int32  `json:"discount_percent,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// Validate POST CouponValidateRoute. Чисто информационная проверка: сам
// купон не резервируется и не помечается использованным.
func (h *CouponsHandler) Validate(c *gin.Context) {
	var params ValidateCouponParams
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

	result, err := h.couponSvs.Validate(reqCtx, params.Code, params.GameID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, CouponResultResponse{
		Valid:           result.Valid,
		DiscountPercent: result.DiscountPercent,
		Reason:          result.Reason,
	})
}

type CouponResponse struct {
	ID              int64      `json:"id"`
	Code            string     `json:"code"`
	DiscountPercent int32      `json:"discount_percent"`
	Active          bool       `json:"active"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	GameID          int64      `json:"game_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func newCouponResponse(coupon *domain.Coupon) CouponResponse {
	return CouponResponse{
		ID:              coupon.ID,
		Code:            coupon.Code,
		DiscountPercent: coupon.DiscountPercent,
		Active:          coupon.Active,
		ExpiresAt:       coupon.ExpiresAt,
		GameID:          coupon.GameID,
		CreatedAt:       coupon.CreatedAt,
	}
}

// Index GET AdminRouteGroup + AdminCouponsRoute.
func (h *CouponsHandler) Index(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	coupons, err := h.couponSvs.List(reqCtx)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	response := make([]CouponResponse, len(coupons))
	for i := range coupons {
		response[i] = newCouponResponse(&coupons[i])
	}
	c.JSON(http.StatusOK, response)
}

type CreateCouponParams struct {
	Code            string     `binding:"required,min=1,max=64" json:"code"`
	DiscountPercent int32      `binding:"required,min=1,max=100" json:"discount_percent"`
	Active          bool       `json:"active"`
	ExpiresAt       *time.Time `json:"expires_at"`
	GameID          int64      `binding:"gte=0" json:"game_id"`
}

// Create POST AdminRouteGroup + AdminCouponsRoute.
func (h *CouponsHandler) Create(c *gin.Context) {
	var params CreateCouponParams
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

	coupon, err := h.couponSvs.Create(reqCtx, service.CreateCouponArgs{
		Code:            params.Code,
		DiscountPercent: params.DiscountPercent,
		Active:          params.Active,
		ExpiresAt:       params.ExpiresAt,
		GameID:          params.GameID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "coupon with this code already exists"})
			return
		}
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCouponResponse(coupon))
}

type UpdateCouponParams struct {
	DiscountPercent *int32     `binding:"omitempty,min=0,max=100" json:"discount_percent"`
	Active          *bool      `json:"active"`
	ExpiresAt       *time.Time `json:"expires_at"`
	// ClearExpiresAt делает купон бессрочным. Отсутствующий expires_at в
	// запросе означает "не менять", поэтому сброс - отдельное поле.
	ClearExpiresAt bool `json:"clear_expires_at"`
}

// Update PATCH AdminRouteGroup + AdminCouponRoute. Nil-поля не изменяются.
func (h *CouponsHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var params UpdateCouponParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	coupon, err := h.couponSvs.Update(reqCtx, id, repoargs.UpdateCoupon{
		DiscountPercent: params.DiscountPercent,
		Active:          params.Active,
		ExpiresAt:       params.ExpiresAt,
		ClearExpiresAt:  params.ClearExpiresAt,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCouponResponse(coupon))
}

// Delete DELETE AdminRouteGroup + AdminCouponRoute.
func (h *CouponsHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := h.couponSvs.Delete(reqCtx, id); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.AbortWithStatus(http.StatusNoContent)
}
