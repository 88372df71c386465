package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type VerifyHandler struct {
	verifier PaymentVerifier
}

func NewVerifyHandler(verifier PaymentVerifier) *VerifyHandler {
	return &VerifyHandler{
		verifier: verifier,
	}
}

type VerifyNagadParams struct {
	PaymentNumber string  `binding:"required,max=20" json:"payment_number"`
	TransactionID string  `binding:"required,max=64" json:"transaction_id"`
	Amount        float64 `binding:"required,gt=0"   json:"amount"`
}

type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Reason   string `json:"reason,omitempty"`
}

// Nagad POST VerifyNagadRoute. Проверка справочная: ответ verified=false не
// мешает оформить заказ, он лишь подсказка покупателю перед отправкой.
func (h *VerifyHandler) Nagad(c *gin.Context) {
	var params VerifyNagadParams
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

	result := h.verifier.Verify(
		reqCtx,
		params.PaymentNumber,
		params.TransactionID,
		decimal.NewFromFloat(params.Amount),
	)
	c.JSON(http.StatusOK, VerifyResponse{
		Verified: result.Verified,
		Reason:   result.Reason,
	})
}
