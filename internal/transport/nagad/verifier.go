// Package nagad выполняет предварительную проверку заявленных платежей.
// Платеж в этом домене - ручной перевод "send money" без программного
// колбэка, поэтому проверка принципиально совещательная: она никогда не
// служит единственным основанием для отказа в приеме заказа, финальную
// сверку по реальному реестру делает оператор.
package nagad

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rshanto/gameghor/internal/transport/nagad/client"
)

const defaultLedgerTimeout = 5 * time.Second

// Причины отрицательного результата проверки. Уходят покупателю как есть.
const (
	ReasonBadNumber         = "invalid nagad number"
	ReasonBadTransactionID  = "invalid transaction id"
	ReasonTimeout           = "timeout"
	ReasonNotFound          = "transaction not found"
	ReasonAmountMismatch    = "amount mismatch"
	ReasonLedgerUnavailable = "ledger unavailable"
)

var (
	// Номер кошелька Nagad: бангладешский мобильный номер 01[3-9] + 8 цифр.
	nagadNumberRe = regexp.MustCompile(`^01[3-9]\d{8}$`)
	transactionRe = regexp.MustCompile(`^[A-Z0-9]{8,20}$`)
)

type Result struct {
	Verified bool
	Reason   string
}

// Verifier проверяет правдоподобность заявленной транзакции: формат номера и
// id, затем (если настроен) поиск в реестре. Повторный вызов с теми же
// аргументами возвращает тот же результат; транзакция никогда не помечается
// использованной - это решение принадлежит шагу сверки оператора.
type Verifier struct {
	ledger  Client
	timeout time.Duration
	l       *logrus.Entry
}

func NewVerifier(l *logrus.Logger) *Verifier {
	return &Verifier{
		timeout: defaultLedgerTimeout,
		l:       l.WithField("component", "nagad-verifier"),
	}
}

// SetLedger подключает клиента реестра транзакций. Без него проверка
// ограничивается форматом.
func (v *Verifier) SetLedger(c Client) *Verifier {
	v.ledger = c
	return v
}

func (v *Verifier) SetTimeout(d time.Duration) *Verifier {
	v.timeout = d
	return v
}

// Verify проверяет заявленный платеж. Всегда возвращает результат, а не
// ошибку: сбой реестра и таймаут - это отрицательный совещательный результат,
// а не повод блокировать отправку заказа.
func (v *Verifier) Verify(
	ctx context.Context,
	paymentNumber string,
	transactionID string,
	expectedAmount decimal.Decimal,
) Result {
	if !nagadNumberRe.MatchString(strings.TrimSpace(paymentNumber)) {
		return Result{Reason: ReasonBadNumber}
	}

	trx := strings.ToUpper(strings.TrimSpace(transactionID))
	if !transactionRe.MatchString(trx) {
		return Result{Reason: ReasonBadTransactionID}
	}

	if v.ledger == nil {
		return Result{Verified: true}
	}
	return v.lookup(ctx, trx, expectedAmount)
}

func (v *Verifier) lookup(ctx context.Context, trx string, expectedAmount decimal.Decimal) Result {
	reqCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	resp, err := v.ledger.LookupTransaction(reqCtx, trx)
	if err != nil {
		v.l.WithError(err).WithField("transactionID", trx).Debug("ledger lookup failed")

		if errors.Is(err, context.DeadlineExceeded) {
			return Result{Reason: ReasonTimeout}
		}
		var statusErr *client.StatusCodeError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return Result{Reason: ReasonNotFound}
		}
		return Result{Reason: ReasonLedgerUnavailable}
	}

	// Переплата не мешает сверке, недоплата - повод для ручного разбора.
	if resp.Amount.LessThan(expectedAmount) {
		return Result{Reason: ReasonAmountMismatch}
	}
	return Result{Verified: true}
}
