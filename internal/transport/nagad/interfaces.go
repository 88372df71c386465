package nagad

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/rshanto/gameghor/internal/transport/nagad/client"
)

type Client interface {
	LookupTransaction(ctx context.Context, transactionID string) (*client.Response, error)
}
