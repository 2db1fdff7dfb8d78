package repositories

import "context"

// TxFn is a function that runs within a transaction.
type TxFn func(ctx context.Context) error

// TransactionManager runs a function as one atomic unit of work. Every
// tenancy mutation goes through it: either all sub-steps commit or none do,
// so a company can never exist without its founding profile.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
