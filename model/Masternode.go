package model

import (
	"sort"
	"strings"

	"github.com/dashbook/dashbook/dashcore"
)

const MasternodeStatusEnabled = "ENABLED"

type MasternodeSummary struct {
	ProTxHash         string  `json:"pro_tx_hash"`
	MnType            string  `json:"mn_type"`
	Status            string  `json:"status"`
	Service           string  `json:"service"`
	PoSePenalty       uint32  `json:"pose_penalty"`
	LastPaidBlock     uint64  `json:"last_paid_block"`
	LastPaidTime      uint64  `json:"last_paid_time"`
	RegisteredHeight  *uint64 `json:"registered_height"`
	CollateralAddress string  `json:"collateral_address"`
	PayoutAddress     string  `json:"payout_address"`
	PlatformNodeID    *string `json:"platform_node_id"`
	PlatformHTTPPort  *uint16 `json:"platform_http_port"`
	PlatformP2PPort   *uint16 `json:"platform_p2p_port"`
}

type MasternodeDetail struct {
	ProTxHash           string  `json:"pro_tx_hash"`
	MnType              string  `json:"mn_type"`
	CollateralHash      string  `json:"collateral_hash"`
	CollateralIndex     uint32  `json:"collateral_index"`
	CollateralAddress   string  `json:"collateral_address"`
	OperatorReward      float64 `json:"operator_reward"`
	Service             string  `json:"service"`
	RegisteredHeight    uint64  `json:"registered_height"`
	LastPaidHeight      uint64  `json:"last_paid_height"`
	ConsecutivePayments uint32  `json:"consecutive_payments"`
	PoSePenalty         uint32  `json:"pose_penalty"`
	PoSeRevivedHeight   int64   `json:"pose_revived_height"`
	PoSeBanHeight       int64   `json:"pose_ban_height"`
	RevocationReason    uint32  `json:"revocation_reason"`
	OwnerAddress        string  `json:"owner_address"`
	VotingAddress       string  `json:"voting_address"`
	PayoutAddress       string  `json:"payout_address"`
	PubKeyOperator      string  `json:"pub_key_operator"`
	PlatformNodeID      *string `json:"platform_node_id"`
	PlatformHTTPPort    *uint16 `json:"platform_http_port"`
	PlatformP2PPort     *uint16 `json:"platform_p2p_port"`
	IsPlatformBanned    *bool   `json:"is_platform_banned"`
	Confirmations       int64   `json:"confirmations"`
	LastDSQ             int64   `json:"last_dsq"`
	MixingTxCount       uint32  `json:"mixing_tx_count"`
}

type MasternodeListResponse struct {
	Masternodes []MasternodeSummary `json:"masternodes"`
	Total       int                 `json:"total"`
	Page        int                 `json:"page"`
	Pages       int                 `json:"pages"`
}

// NewMasternodeSummary shapes a list entry. The list does not carry the registration height.
func NewMasternodeSummary(entry *dashcore.MasternodeListEntry) MasternodeSummary {
	return MasternodeSummary{
		ProTxHash:         entry.ProTxHash,
		MnType:            entry.Type,
		Status:            entry.Status,
		Service:           entry.Address,
		PoSePenalty:       entry.PoSePenaltyScore,
		LastPaidBlock:     entry.LastPaidBlock,
		LastPaidTime:      entry.LastPaidTime,
		CollateralAddress: entry.CollateralAddress,
		PayoutAddress:     entry.Payee,
		PlatformNodeID:    clonePtr(entry.PlatformNodeID),
		PlatformHTTPPort:  clonePtr(entry.PlatformHTTPPort),
		PlatformP2PPort:   clonePtr(entry.PlatformP2PPort),
	}
}

func NewMasternodeDetail(p *dashcore.ProTx) *MasternodeDetail {
	return &MasternodeDetail{
		ProTxHash:           p.ProTxHash,
		MnType:              p.Type,
		CollateralHash:      p.CollateralHash,
		CollateralIndex:     p.CollateralIndex,
		CollateralAddress:   p.CollateralAddress,
		OperatorReward:      p.OperatorReward,
		Service:             p.State.Service,
		RegisteredHeight:    p.State.RegisteredHeight,
		LastPaidHeight:      p.State.LastPaidHeight,
		ConsecutivePayments: p.State.ConsecutivePayments,
		PoSePenalty:         p.State.PoSePenalty,
		PoSeRevivedHeight:   p.State.PoSeRevivedHeight,
		PoSeBanHeight:       p.State.PoSeBanHeight,
		RevocationReason:    p.State.RevocationReason,
		OwnerAddress:        p.State.OwnerAddress,
		VotingAddress:       p.State.VotingAddress,
		PayoutAddress:       p.State.PayoutAddress,
		PubKeyOperator:      p.State.PubKeyOperator,
		PlatformNodeID:      clonePtr(p.State.PlatformNodeID),
		PlatformHTTPPort:    clonePtr(p.State.PlatformHTTPPort),
		PlatformP2PPort:     clonePtr(p.State.PlatformP2PPort),
		IsPlatformBanned:    clonePtr(p.MetaInfo.IsPlatformBanned),
		Confirmations:       p.Confirmations,
		LastDSQ:             p.MetaInfo.LastDSQ,
		MixingTxCount:       p.MetaInfo.MixingTxCount,
	}
}

func (s MasternodeSummary) Clone() MasternodeSummary {
	c := s
	c.RegisteredHeight = clonePtr(s.RegisteredHeight)
	c.PlatformNodeID = clonePtr(s.PlatformNodeID)
	c.PlatformHTTPPort = clonePtr(s.PlatformHTTPPort)
	c.PlatformP2PPort = clonePtr(s.PlatformP2PPort)

	return c
}

// CloneMasternodes deep copies a shaped masternode list.
func CloneMasternodes(list []MasternodeSummary) []MasternodeSummary {
	c := make([]MasternodeSummary, len(list))
	for i := range list {
		c[i] = list[i].Clone()
	}

	return c
}

// SelectMasternodes filters by type and status, case-insensitively, where "" and "all" match everything.
// ENABLED nodes come first, then ascending PoSe penalty. The input order is kept for equal keys.
func SelectMasternodes(list []MasternodeSummary, mnType, status string) []MasternodeSummary {
	selected := make([]MasternodeSummary, 0, len(list))

	for _, mn := range list {
		if !matchesFilter(mn.MnType, mnType) || !matchesFilter(mn.Status, status) {
			continue
		}

		selected = append(selected, mn)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		iEnabled := selected[i].Status == MasternodeStatusEnabled
		jEnabled := selected[j].Status == MasternodeStatusEnabled

		if iEnabled != jEnabled {
			return iEnabled
		}

		return selected[i].PoSePenalty < selected[j].PoSePenalty
	})

	return selected
}

func matchesFilter(value, filter string) bool {
	if filter == "" || filter == "all" {
		return true
	}

	return strings.EqualFold(value, filter)
}
