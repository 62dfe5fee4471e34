package storage

import (
	"context"

	"liquidityPilot/internal/model"
)

// Journal is a sink for finished operation records.
type Journal interface {
	PutOperationBatch(ctx context.Context, records []model.OperationRecord) error
}

// Multi fans a batch out to every journal, stopping at the first error.
type Multi []Journal

func (m Multi) PutOperationBatch(ctx context.Context, records []model.OperationRecord) error {
	for _, j := range m {
		if j == nil {
			continue
		}
		if err := j.PutOperationBatch(ctx, records); err != nil {
			return err
		}
	}
	return nil
}
