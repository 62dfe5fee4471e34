package model

// OperationRecord is the journal entry for one deposit or withdraw run.
type OperationRecord struct {
	ChainID    int64  `json:"chain_id"`
	Chain      string `json:"chain"`
	Op         string `json:"op"`
	Account    string `json:"account"`
	TokenA     string `json:"token_a"`
	TokenB     string `json:"token_b"`
	Pool       string `json:"pool,omitempty"`
	Stage      string `json:"stage"`
	Amount     string `json:"amount,omitempty"`
	MinOut     string `json:"min_out,omitempty"`
	ApprovalTx string `json:"approval_tx,omitempty"`
	TxHash     string `json:"tx_hash,omitempty"`
	GasUsed    uint64 `json:"gas_used,omitempty"`
	Error      string `json:"error,omitempty"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
}

// Succeeded reports whether the run reached a confirmed transaction.
func (r OperationRecord) Succeeded() bool {
	return r.Error == "" && r.Stage == "confirmed"
}
