package liquidity

import (
	"errors"
	"fmt"

	"liquidityPilot/internal/pool"
)

var (
	// ErrPoolNotFound means the factory has no pool for the pair.
	ErrPoolNotFound = pool.ErrPoolNotFound
	// ErrInsufficientLiquidity means a zero reserve, supply or share balance blocked a ratio computation.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	// ErrApprovalFailed means the pool-share approval was rejected or reverted.
	ErrApprovalFailed = errors.New("approval failed")
	// ErrTransactionFailed means the router transaction was rejected or reverted.
	ErrTransactionFailed = errors.New("transaction failed")
	// ErrInvalidAmount means a deposit amount was missing or not positive.
	ErrInvalidAmount = errors.New("invalid amount")
)

// OperationError reports the operation and the last stage it reached before failing.
type OperationError struct {
	Op    Operation
	Stage Stage
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed after %s: %v", e.Op, e.Stage, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
