package dashcore

import (
	"bytes"

	"github.com/dashbook/dashbook/errors"
)

// Block is the verbose getblock / getblockheader result.
type Block struct {
	Hash              string   `json:"hash"`
	Confirmations     int64    `json:"confirmations"`
	Height            uint64   `json:"height"`
	Version           uint32   `json:"version"`
	VersionHex        string   `json:"versionHex,omitempty"`
	MerkleRoot        string   `json:"merkleroot"`
	Time              uint64   `json:"time"`
	MedianTime        uint64   `json:"mediantime"`
	Nonce             uint64   `json:"nonce"`
	Bits              string   `json:"bits"`
	Difficulty        float64  `json:"difficulty"`
	Chainwork         string   `json:"chainwork"`
	NTx               uint32   `json:"nTx"`
	PreviousBlockHash *string  `json:"previousblockhash,omitempty"`
	NextBlockHash     *string  `json:"nextblockhash,omitempty"`
	Chainlock         bool     `json:"chainlock"`
	Size              *uint64  `json:"size,omitempty"`
	CbTx              *CbTx    `json:"cbTx,omitempty"`
	Tx                BlockTxs `json:"tx"`
}

type BlockTxsKind int

const (
	BlockTxsNone BlockTxsKind = iota
	BlockTxsIDs
	BlockTxsFull
)

// BlockTxs holds the tx field of a block. getblock with verbosity 1 returns txids,
// verbosity 2 returns full transactions. The kind is decided by the first element.
type BlockTxs struct {
	Kind         BlockTxsKind
	TxIDs        []string
	Transactions []Transaction
}

func (b *BlockTxs) UnmarshalJSON(data []byte) error {
	var raw []rawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.NewInvalidResponseError("block tx field is not an array", err)
	}

	*b = BlockTxs{}

	if len(raw) == 0 {
		return nil
	}

	first := bytes.TrimLeft(raw[0], " \t\r\n")
	if len(first) == 0 {
		return errors.NewInvalidResponseError("block tx field has an empty element")
	}

	switch first[0] {
	case '"':
		b.Kind = BlockTxsIDs
		return json.Unmarshal(data, &b.TxIDs)
	case '{':
		b.Kind = BlockTxsFull
		return json.Unmarshal(data, &b.Transactions)
	default:
		return errors.NewInvalidResponseError("block tx field has elements of unexpected kind %q", first[0])
	}
}

func (b BlockTxs) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case BlockTxsIDs:
		return json.Marshal(b.TxIDs)
	case BlockTxsFull:
		return json.Marshal(b.Transactions)
	default:
		return []byte("[]"), nil
	}
}

type CbTx struct {
	Version           uint32  `json:"version"`
	Height            uint64  `json:"height"`
	MerkleRootMNList  string  `json:"merkleRootMNList"`
	MerkleRootQuorums string  `json:"merkleRootQuorums"`
	BestCLHeightDiff  uint64  `json:"bestCLHeightDiff"`
	BestCLSignature   string  `json:"bestCLSignature"`
	CreditPoolBalance float64 `json:"creditPoolBalance"`
}

type BlockStats struct {
	AvgFee       float64 `json:"avgfee"`
	AvgFeeRate   float64 `json:"avgfeerate"`
	AvgTxSize    uint64  `json:"avgtxsize"`
	BlockHash    string  `json:"blockhash"`
	Height       uint64  `json:"height"`
	Ins          uint32  `json:"ins"`
	MaxFee       float64 `json:"maxfee"`
	MaxTxSize    uint64  `json:"maxtxsize"`
	MedianFee    float64 `json:"medianfee"`
	MedianTime   uint64  `json:"mediantime"`
	MinFee       float64 `json:"minfee"`
	MinTxSize    uint64  `json:"mintxsize"`
	Outs         uint32  `json:"outs"`
	Subsidy      int64   `json:"subsidy"`
	Time         uint64  `json:"time"`
	TotalOut     int64   `json:"total_out"`
	TotalSize    uint64  `json:"total_size"`
	TotalFee     float64 `json:"totalfee"`
	Txs          uint32  `json:"txs"`
	UtxoIncrease int32   `json:"utxo_increase"`
	UtxoSizeInc  int64   `json:"utxo_size_inc"`
}

// Transaction is the verbose getrawtransaction result, also used for the full tx list of a block.
type Transaction struct {
	TxID                string         `json:"txid"`
	Version             uint32         `json:"version"`
	Type                uint32         `json:"type"`
	Size                uint64         `json:"size"`
	LockTime            uint64         `json:"locktime"`
	Vin                 []TxInput      `json:"vin"`
	Vout                []TxOutput     `json:"vout"`
	ExtraPayloadSize    *uint32        `json:"extraPayloadSize,omitempty"`
	ExtraPayload        *string        `json:"extraPayload,omitempty"`
	BlockHash           *string        `json:"blockhash,omitempty"`
	Height              *uint64        `json:"height,omitempty"`
	Confirmations       *int64         `json:"confirmations,omitempty"`
	Time                *uint64        `json:"time,omitempty"`
	BlockTime           *uint64        `json:"blocktime,omitempty"`
	InstantLock         bool           `json:"instantlock"`
	InstantLockInternal bool           `json:"instantlock_internal"`
	Chainlock           *bool          `json:"chainlock,omitempty"`
	ProRegTx            *ProRegTx      `json:"proRegTx,omitempty"`
	ProUpServTx         rawMessage     `json:"proUpServTx,omitempty"`
	ProUpRegTx          rawMessage     `json:"proUpRegTx,omitempty"`
	ProUpRevTx          rawMessage     `json:"proUpRevTx,omitempty"`
	CbTx                *CbTx          `json:"cbTx,omitempty"`
	QcTx                *QcTx          `json:"qcTx,omitempty"`
	AssetUnlockTx       *AssetUnlockTx `json:"assetUnlockTx,omitempty"`
	Hex                 *string        `json:"hex,omitempty"`
	Fee                 *float64       `json:"fee,omitempty"`
}

type TxInput struct {
	TxID      *string    `json:"txid,omitempty"`
	Vout      *uint32    `json:"vout,omitempty"`
	Coinbase  *string    `json:"coinbase,omitempty"`
	ScriptSig *ScriptSig `json:"scriptSig,omitempty"`
	Value     *float64   `json:"value,omitempty"`
	ValueSat  *int64     `json:"valueSat,omitempty"`
	Address   *string    `json:"address,omitempty"`
	Sequence  uint64     `json:"sequence"`
}

type ScriptSig struct {
	Asm string `json:"asm"`
	Hex string `json:"hex"`
}

type TxOutput struct {
	Value        float64      `json:"value"`
	ValueSat     int64        `json:"valueSat"`
	N            uint32       `json:"n"`
	ScriptPubKey ScriptPubKey `json:"scriptPubKey"`
	SpentTxID    *string      `json:"spentTxId,omitempty"`
	SpentIndex   *uint32      `json:"spentIndex,omitempty"`
	SpentHeight  *int64       `json:"spentHeight,omitempty"`
}

type ScriptPubKey struct {
	Asm     string  `json:"asm"`
	Desc    *string `json:"desc,omitempty"`
	Hex     string  `json:"hex"`
	Address *string `json:"address,omitempty"`
	Type    string  `json:"type"`
}

type ProRegTx struct {
	Version          uint32         `json:"version"`
	Type             *uint32        `json:"type,omitempty"`
	CollateralHash   string         `json:"collateralHash"`
	CollateralIndex  uint32         `json:"collateralIndex"`
	Service          string         `json:"service"`
	Addresses        *NodeAddresses `json:"addresses,omitempty"`
	OwnerAddress     string         `json:"ownerAddress"`
	VotingAddress    string         `json:"votingAddress"`
	PayoutAddress    string         `json:"payoutAddress"`
	PubKeyOperator   string         `json:"pubKeyOperator"`
	OperatorReward   float64        `json:"operatorReward"`
	PlatformNodeID   *string        `json:"platformNodeID,omitempty"`
	PlatformP2PPort  *uint16        `json:"platformP2PPort,omitempty"`
	PlatformHTTPPort *uint16        `json:"platformHTTPPort,omitempty"`
	InputsHash       string         `json:"inputsHash"`
}

type NodeAddresses struct {
	CoreP2P       []string `json:"core_p2p,omitempty"`
	PlatformHTTPS []string `json:"platform_https,omitempty"`
	PlatformP2P   []string `json:"platform_p2p,omitempty"`
}

type QcTx struct {
	Version    uint32       `json:"version"`
	Height     uint64       `json:"height"`
	Commitment QcCommitment `json:"commitment"`
}

type QcCommitment struct {
	Version           uint32 `json:"version"`
	LLMQType          uint32 `json:"llmqType"`
	QuorumHash        string `json:"quorumHash"`
	QuorumIndex       uint32 `json:"quorumIndex"`
	SignersCount      uint32 `json:"signersCount"`
	Signers           string `json:"signers"`
	ValidMembersCount uint32 `json:"validMembersCount"`
	ValidMembers      string `json:"validMembers"`
	QuorumPublicKey   string `json:"quorumPublicKey"`
	QuorumVvecHash    string `json:"quorumVvecHash"`
	QuorumSig         string `json:"quorumSig"`
	MembersSig        string `json:"membersSig"`
}

type AssetUnlockTx struct {
	Version         uint32 `json:"version"`
	Index           uint64 `json:"index"`
	Fee             uint64 `json:"fee"`
	RequestedHeight uint64 `json:"requestedHeight"`
	QuorumHash      string `json:"quorumHash"`
	QuorumSig       string `json:"quorumSig"`
}

type AddressBalance struct {
	Balance          int64 `json:"balance"`
	BalanceImmature  int64 `json:"balance_immature"`
	BalanceSpendable int64 `json:"balance_spendable"`
	Received         int64 `json:"received"`
}

type AddressDelta struct {
	Satoshis   int64  `json:"satoshis"`
	TxID       string `json:"txid"`
	Index      uint32 `json:"index"`
	BlockIndex uint32 `json:"blockindex"`
	Height     uint64 `json:"height"`
	Address    string `json:"address"`
}

type AddressUtxo struct {
	Address     string `json:"address"`
	TxID        string `json:"txid"`
	OutputIndex uint32 `json:"outputIndex"`
	Script      string `json:"script"`
	Satoshis    int64  `json:"satoshis"`
	Height      uint64 `json:"height"`
}

type MasternodeListEntry struct {
	ProTxHash           string         `json:"proTxHash"`
	Address             string         `json:"address"`
	Addresses           *NodeAddresses `json:"addresses,omitempty"`
	Payee               string         `json:"payee"`
	Status              string         `json:"status"`
	Type                string         `json:"type"`
	PoSePenaltyScore    uint32         `json:"pospenaltyscore"`
	ConsecutivePayments uint32         `json:"consecutivePayments"`
	LastPaidTime        uint64         `json:"lastpaidtime"`
	LastPaidBlock       uint64         `json:"lastpaidblock"`
	OwnerAddress        string         `json:"owneraddress"`
	VotingAddress       string         `json:"votingaddress"`
	CollateralAddress   string         `json:"collateraladdress"`
	PubKeyOperator      string         `json:"pubkeyoperator"`
	PlatformNodeID      *string        `json:"platformNodeID,omitempty"`
	PlatformP2PPort     *uint16        `json:"platformP2PPort,omitempty"`
	PlatformHTTPPort    *uint16        `json:"platformHTTPPort,omitempty"`
}

// ProTx is the protx info result.
type ProTx struct {
	Type              string             `json:"type"`
	ProTxHash         string             `json:"proTxHash"`
	CollateralHash    string             `json:"collateralHash"`
	CollateralIndex   uint32             `json:"collateralIndex"`
	CollateralAddress string             `json:"collateralAddress"`
	OperatorReward    float64            `json:"operatorReward"`
	State             MasternodeState    `json:"state"`
	Confirmations     int64              `json:"confirmations"`
	MetaInfo          MasternodeMetaInfo `json:"metaInfo"`
}

type MasternodeState struct {
	Version             uint32         `json:"version"`
	Service             string         `json:"service"`
	Addresses           *NodeAddresses `json:"addresses,omitempty"`
	RegisteredHeight    uint64         `json:"registeredHeight"`
	LastPaidHeight      uint64         `json:"lastPaidHeight"`
	ConsecutivePayments uint32         `json:"consecutivePayments"`
	PoSePenalty         uint32         `json:"PoSePenalty"`
	PoSeRevivedHeight   int64          `json:"PoSeRevivedHeight"`
	PoSeBanHeight       int64          `json:"PoSeBanHeight"`
	RevocationReason    uint32         `json:"revocationReason"`
	OwnerAddress        string         `json:"ownerAddress"`
	VotingAddress       string         `json:"votingAddress"`
	PayoutAddress       string         `json:"payoutAddress"`
	PubKeyOperator      string         `json:"pubKeyOperator"`
	PlatformNodeID      *string        `json:"platformNodeID,omitempty"`
	PlatformP2PPort     *uint16        `json:"platformP2PPort,omitempty"`
	PlatformHTTPPort    *uint16        `json:"platformHTTPPort,omitempty"`
}

type MasternodeMetaInfo struct {
	LastDSQ                    int64   `json:"lastDSQ"`
	MixingTxCount              uint32  `json:"mixingTxCount"`
	OutboundAttemptCount       uint32  `json:"outboundAttemptCount"`
	LastOutboundAttempt        uint64  `json:"lastOutboundAttempt"`
	LastOutboundAttemptElapsed uint64  `json:"lastOutboundAttemptElapsed"`
	LastOutboundSuccess        uint64  `json:"lastOutboundSuccess"`
	LastOutboundSuccessElapsed uint64  `json:"lastOutboundSuccessElapsed"`
	IsPlatformBanned           *bool   `json:"is_platform_banned,omitempty"`
	PlatformBanHeightUpdated   *uint64 `json:"platform_ban_height_updated,omitempty"`
}

type MasternodeCount struct {
	Total    uint32                  `json:"total"`
	Enabled  uint32                  `json:"enabled"`
	Detailed MasternodeCountDetailed `json:"detailed"`
}

type MasternodeCountDetailed struct {
	Regular MasternodeTypeCount `json:"regular"`
	Evo     MasternodeTypeCount `json:"evo"`
}

type MasternodeTypeCount struct {
	Total   uint32 `json:"total"`
	Enabled uint32 `json:"enabled"`
}

type NetworkInfo struct {
	Version          uint64  `json:"version"`
	BuildVersion     string  `json:"buildversion"`
	SubVersion       string  `json:"subversion"`
	ProtocolVersion  uint64  `json:"protocolversion"`
	Connections      uint32  `json:"connections"`
	ConnectionsIn    uint32  `json:"connections_in"`
	ConnectionsOut   uint32  `json:"connections_out"`
	ConnectionsMN    uint32  `json:"connections_mn"`
	ConnectionsMNIn  uint32  `json:"connections_mn_in"`
	ConnectionsMNOut uint32  `json:"connections_mn_out"`
	RelayFee         float64 `json:"relayfee"`
	Warnings         string  `json:"warnings"`
}

type BlockchainInfo struct {
	Chain                string  `json:"chain"`
	Blocks               uint64  `json:"blocks"`
	Headers              uint64  `json:"headers"`
	BestBlockHash        string  `json:"bestblockhash"`
	Difficulty           float64 `json:"difficulty"`
	Time                 uint64  `json:"time"`
	MedianTime           uint64  `json:"mediantime"`
	VerificationProgress float64 `json:"verificationprogress"`
	InitialBlockDownload bool    `json:"initialblockdownload"`
	Chainwork            string  `json:"chainwork"`
	SizeOnDisk           uint64  `json:"size_on_disk"`
	Pruned               bool    `json:"pruned"`
	Warnings             string  `json:"warnings"`
}

type MempoolInfo struct {
	Loaded           bool    `json:"loaded"`
	Size             uint64  `json:"size"`
	Bytes            uint64  `json:"bytes"`
	Usage            uint64  `json:"usage"`
	TotalFee         float64 `json:"total_fee"`
	MaxMempool       uint64  `json:"maxmempool"`
	MempoolMinFee    float64 `json:"mempoolminfee"`
	MinRelayTxFee    float64 `json:"minrelaytxfee"`
	InstantSendLocks uint64  `json:"instantsendlocks"`
	UnbroadcastCount uint64  `json:"unbroadcastcount"`
}

type ChainTxStats struct {
	Time                   uint64  `json:"time"`
	TxCount                uint64  `json:"txcount"`
	WindowFinalBlockHeight uint64  `json:"window_final_block_height"`
	WindowBlockCount       uint64  `json:"window_block_count"`
	WindowTxCount          uint64  `json:"window_tx_count"`
	WindowInterval         uint64  `json:"window_interval"`
	TxRate                 float64 `json:"txrate"`
}

type ChainLock struct {
	BlockHash  string `json:"blockhash"`
	Height     uint64 `json:"height"`
	Signature  string `json:"signature"`
	KnownBlock bool   `json:"known_block"`
}

type GovernanceInfo struct {
	GovernanceMinQuorum      uint32  `json:"governanceminquorum"`
	ProposalFee              float64 `json:"proposalfee"`
	SuperblockCycle          uint32  `json:"superblockcycle"`
	SuperblockMaturityWindow uint32  `json:"superblockmaturitywindow"`
	LastSuperblock           uint64  `json:"lastsuperblock"`
	NextSuperblock           uint64  `json:"nextsuperblock"`
	FundingThreshold         uint32  `json:"fundingthreshold"`
	GovernanceBudget         float64 `json:"governancebudget"`
}

type GovernanceObject struct {
	DataHex             string `json:"DataHex"`
	DataString          string `json:"DataString"`
	Hash                string `json:"Hash"`
	CollateralHash      string `json:"CollateralHash"`
	ObjectType          uint32 `json:"ObjectType"`
	CreationTime        uint64 `json:"CreationTime"`
	FBlockchainValidity bool   `json:"fBlockchainValidity"`
	IsValidReason       string `json:"IsValidReason"`
	FCachedValid        bool   `json:"fCachedValid"`
	FCachedFunding      bool   `json:"fCachedFunding"`
	FCachedDelete       bool   `json:"fCachedDelete"`
	FCachedEndorsed     bool   `json:"fCachedEndorsed"`
	AbsoluteYesCount    int32  `json:"AbsoluteYesCount"`
	YesCount            int32  `json:"YesCount"`
	NoCount             int32  `json:"NoCount"`
	AbstainCount        int32  `json:"AbstainCount"`
}

// ProposalData is the JSON document carried in GovernanceObject.DataString for proposals.
type ProposalData struct {
	EndEpoch       uint64  `json:"end_epoch"`
	Name           string  `json:"name"`
	PaymentAddress string  `json:"payment_address"`
	PaymentAmount  float64 `json:"payment_amount"`
	StartEpoch     uint64  `json:"start_epoch"`
	Type           uint32  `json:"type"`
	URL            string  `json:"url"`
}

// GovernanceObjectProposal is the ObjectType of a proposal.
const GovernanceObjectProposal = 1
