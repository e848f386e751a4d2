package repositories

import "context"

// TxFn runs with a context that carries the open transaction; every
// repository call made through that context joins it.
type TxFn func(ctx context.Context) error

// TransactionManager groups repository writes into one atomic unit.
// The folder cascade is the main consumer: image rows and folder rows
// go together or not at all.
type TransactionManager interface {
	// ExecTx begins a transaction, runs fn, and commits; any error from
	// fn rolls everything back
	ExecTx(ctx context.Context, fn TxFn) error
}
