package repoargs

import "github.com/rshanto/gameghor/internal/domain"

type CreateUser struct {
	Email        string
	Name         string
	PasswordHash string
	Role         domain.RoleType
}
