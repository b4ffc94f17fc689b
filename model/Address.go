package model

type AddressInfo struct {
	Address          string           `json:"address"`
	Balance          float64          `json:"balance"`
	BalanceSat       int64            `json:"balance_sat"`
	BalanceImmature  float64          `json:"balance_immature"`
	BalanceSpendable float64          `json:"balance_spendable"`
	TotalReceived    float64          `json:"total_received"`
	TotalReceivedSat int64            `json:"total_received_sat"`
	TxCount          int              `json:"tx_count"`
	Transactions     []AddressTxEntry `json:"transactions"`
	Utxos            []AddressUtxo    `json:"utxos"`
}

type AddressTxEntry struct {
	TxID     string  `json:"txid"`
	Height   uint64  `json:"height"`
	DeltaSat int64   `json:"delta_sat"`
	Delta    float64 `json:"delta"`
}

type AddressUtxo struct {
	TxID        string  `json:"txid"`
	OutputIndex uint32  `json:"output_index"`
	Satoshis    int64   `json:"satoshis"`
	Value       float64 `json:"value"`
	Height      uint64  `json:"height"`
}
