package domain

type OrderStatusType string

const (
	OrderStatusPending    OrderStatusType = "pending"
	OrderStatusProcessing OrderStatusType = "processing"
	OrderStatusCompleted  OrderStatusType = "completed"
	OrderStatusCancelled  OrderStatusType = "cancelled"
)

// validNext описывает допустимые переходы статусов заказа. Прямой переход
// pending -> completed разрешен: оператор вправе закрыть заказ минуя processing.
var validNext = map[OrderStatusType]map[OrderStatusType]bool{
	OrderStatusPending:    {OrderStatusProcessing: true, OrderStatusCompleted: true, OrderStatusCancelled: true},
	OrderStatusProcessing: {OrderStatusCompleted: true, OrderStatusCancelled: true},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// CanTransition сообщает, разрешен ли переход заказа из статуса from в статус to.
func CanTransition(from, to OrderStatusType) bool {
	return validNext[from][to]
}

// Terminal возвращает true для конечных статусов, из которых переходы запрещены.
func (s OrderStatusType) Terminal() bool {
	return len(validNext[s]) == 0
}

// ParseOrderStatus разбирает статус из внешнего представления.
func ParseOrderStatus(raw string) (OrderStatusType, bool) {
	s := OrderStatusType(raw)
	if _, ok := validNext[s]; !ok {
		return "", false
	}
	return s, true
}

type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

type PlatformType string

const (
	PlatformPC     PlatformType = "pc"
	PlatformMobile PlatformType = "mobile"
)

// CouponResult - результат проверки купона. Reason заполняется только
// для невалидных купонов.
type CouponResult struct {
	Valid           bool
	DiscountPercent int32
	Reason          string
}

// Причины отказа движка купонов. Строки уходят покупателю как есть.
const (
	CouponReasonNotFound      = "not found"
	CouponReasonInactive      = "inactive"
	CouponReasonExpired       = "expired"
	CouponReasonNotApplicable = "not applicable to this game"
)
