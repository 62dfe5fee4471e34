package main

import (
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"liquidityPilot/internal/liquidity"
	"liquidityPilot/internal/model"
	"liquidityPilot/internal/registry"
)

func newOperationRecord(chain registry.ChainConfig, account common.Address, op liquidity.Operation, tokenA, tokenB string, res *liquidity.Result, runErr error, startedAt string) model.OperationRecord {
	rec := model.OperationRecord{
		ChainID:    chain.ChainID,
		Chain:      chain.Name,
		Op:         string(op),
		Account:    account.Hex(),
		TokenA:     tokenA,
		TokenB:     tokenB,
		StartedAt:  startedAt,
		FinishedAt: nowUTC(),
	}
	stage := liquidity.StageFailed
	if res != nil {
		stage = res.Stage
		if res.Pool != (common.Address{}) {
			rec.Pool = res.Pool.Hex()
		}
		if res.Amount != nil {
			rec.Amount = res.Amount.String()
		}
		if res.MinOut != nil {
			rec.MinOut = res.MinOut.String()
		}
		if res.ApprovalTx != (common.Hash{}) {
			rec.ApprovalTx = res.ApprovalTx.Hex()
		}
		if res.TxHash != (common.Hash{}) {
			rec.TxHash = res.TxHash.Hex()
		}
		if res.Receipt != nil {
			rec.GasUsed = res.Receipt.GasUsed
		}
	}
	if runErr != nil {
		rec.Error = runErr.Error()
		if !stage.Terminal() {
			stage = liquidity.StageFailed
		}
	}
	rec.Stage = string(stage)
	return rec
}

// journalResult records the run. Journal failures are logged, not returned.
func journalResult(a *app, op liquidity.Operation, tokenA, tokenB string, res *liquidity.Result, runErr error, startedAt string) {
	rec := newOperationRecord(a.chain, a.client.Address(), op, tokenA, tokenB, res, runErr, startedAt)
	if err := a.journal.PutOperationBatch(a.ctx, []model.OperationRecord{rec}); err != nil {
		a.logger.Error("journal write failed", zap.String("op", rec.Op), zap.Error(err))
	}
}
