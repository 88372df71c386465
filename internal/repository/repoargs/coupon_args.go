package repoargs

import "time"

type CreateCoupon struct {
	Code            string
	DiscountPercent int32
	Active          bool
	ExpiresAt       *time.Time
	GameID          int64
}

// UpdateCoupon - частичное обновление купона. Nil-поля не изменяются.
type UpdateCoupon struct {
	DiscountPercent *int32
	Active          *bool
	ExpiresAt       *time.Time
	// ClearExpiresAt снимает срок действия (expires_at -> NULL): nil в
	// ExpiresAt означает "без изменений", отдельного nil-значения для
	// сброса у указателя нет. Имеет приоритет над ExpiresAt.
	ClearExpiresAt bool
}
