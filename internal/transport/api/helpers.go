package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/transport/api/middlewares"
)

// getUserIDFromContext берет из контекста gin ID текущего юзера. ID устанавливается в
// middlewares.AuthRequired. В случае, если значения в контексте нет или ошибка утверждения
// типа - вернется 0.
func getUserIDFromContext(c *gin.Context) int64 {
	userIDVal, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return 0
	}
	userID, ok := userIDVal.(int64)
	if !ok {
		return 0
	}
	return userID
}

// parseIDParam читает числовой параметр пути :id. При невалидном значении
// отвечает 404 и возвращает false: несуществующий id неотличим от нечислового.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

// admissionStatusCode сопоставляет вид отказа http статусу.
func admissionStatusCode(kind domain.AdmissionKind) int {
	switch kind {
	case domain.AdmissionNotFound:
		return http.StatusNotFound
	case domain.AdmissionOutOfStock, domain.AdmissionInvalidTransition:
		return http.StatusConflict
	case domain.AdmissionInvalidInput, domain.AdmissionInvalidCoupon:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// abortWithServiceError единообразно завершает запрос при ошибке сервиса:
// типизированные отказы уходят клиенту с причиной, все остальное - приватная 500.
func abortWithServiceError(c *gin.Context, err error) {
	if admErr, ok := domain.AsAdmissionError(err); ok {
		body := gin.H{"error": admErr.Reason}
		if len(admErr.Fields) > 0 {
			body["fields"] = admErr.Fields
		}
		c.AbortWithStatusJSON(admissionStatusCode(admErr.Kind), body)
		return
	}
	if errors.Is(err, domain.ErrRecordNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
}
