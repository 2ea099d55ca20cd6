package contracts

import "context"

// Transactor runs fn inside a database transaction. Repositories called with the
// context handed to fn take part in it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
