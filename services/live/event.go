// Package live samples the node's tip and mempool and fans the resulting events out to subscribers.
package live

type EventType string

const (
	EventNewBlock      EventType = "NewBlock"
	EventMempoolUpdate EventType = "MempoolUpdate"
)

// Event is serialized as {"type": ..., "data": ...}. Data is *NewBlock or *MempoolUpdate.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`

	seq uint64
}

type NewBlock struct {
	Hash              string  `json:"hash"`
	Height            uint64  `json:"height"`
	Time              uint64  `json:"time"`
	NTx               uint32  `json:"n_tx"`
	Chainlock         bool    `json:"chainlock"`
	CreditPoolBalance float64 `json:"credit_pool_balance"`
}

type MempoolUpdate struct {
	Size     uint64  `json:"size"`
	Bytes    uint64  `json:"bytes"`
	TotalFee float64 `json:"total_fee"`
}

func NewBlockEvent(b *NewBlock) Event {
	return Event{Type: EventNewBlock, Data: b}
}

func NewMempoolUpdateEvent(m *MempoolUpdate) Event {
	return Event{Type: EventMempoolUpdate, Data: m}
}

// Seq is the bus sequence number, 0 for an event that was never published.
func (e Event) Seq() uint64 {
	return e.seq
}
