package psswd

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher реализует service.PasswordHasher поверх bcrypt.
// Нулевое значение готово к использованию и применяет bcrypt.DefaultCost.
type Hasher struct {
	cost int
}

func (h Hasher) HashPassword(password string) (string, error) {
	cost := h.cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %s", err.Error())
	}
	return string(bytes), nil
}

func (h Hasher) ComparePassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
