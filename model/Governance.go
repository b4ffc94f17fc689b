package model

import (
	"sort"

	"github.com/dashbook/dashbook/dashcore"
)

type GovernanceOverview struct {
	Info      GovernanceInfo `json:"info"`
	Proposals []Proposal     `json:"proposals"`
}

type GovernanceInfo struct {
	GovernanceMinQuorum uint32  `json:"governance_min_quorum"`
	ProposalFee         float64 `json:"proposal_fee"`
	SuperblockCycle     uint32  `json:"superblock_cycle"`
	LastSuperblock      uint64  `json:"last_superblock"`
	NextSuperblock      uint64  `json:"next_superblock"`
	FundingThreshold    uint32  `json:"funding_threshold"`
	GovernanceBudget    float64 `json:"governance_budget"`
}

type Proposal struct {
	Hash             string  `json:"hash"`
	Name             string  `json:"name"`
	URL              string  `json:"url"`
	PaymentAddress   string  `json:"payment_address"`
	PaymentAmount    float64 `json:"payment_amount"`
	StartEpoch       uint64  `json:"start_epoch"`
	EndEpoch         uint64  `json:"end_epoch"`
	CreationTime     uint64  `json:"creation_time"`
	YesCount         int32   `json:"yes_count"`
	NoCount          int32   `json:"no_count"`
	AbstainCount     int32   `json:"abstain_count"`
	AbsoluteYesCount int32   `json:"absolute_yes_count"`
	IsFunded         bool    `json:"is_funded"`
	IsValid          bool    `json:"is_valid"`
	CollateralHash   string  `json:"collateral_hash"`
}

func NewGovernanceInfo(info *dashcore.GovernanceInfo) GovernanceInfo {
	return GovernanceInfo{
		GovernanceMinQuorum: info.GovernanceMinQuorum,
		ProposalFee:         info.ProposalFee,
		SuperblockCycle:     info.SuperblockCycle,
		LastSuperblock:      info.LastSuperblock,
		NextSuperblock:      info.NextSuperblock,
		FundingThreshold:    info.FundingThreshold,
		GovernanceBudget:    info.GovernanceBudget,
	}
}

// NewProposal returns false for objects that are not proposals or whose document does not decode.
func NewProposal(hash string, obj *dashcore.GovernanceObject) (Proposal, bool) {
	if obj.ObjectType != dashcore.GovernanceObjectProposal {
		return Proposal{}, false
	}

	data, err := obj.Proposal()
	if err != nil {
		return Proposal{}, false
	}

	return Proposal{
		Hash:             hash,
		Name:             data.Name,
		URL:              data.URL,
		PaymentAddress:   data.PaymentAddress,
		PaymentAmount:    data.PaymentAmount,
		StartEpoch:       data.StartEpoch,
		EndEpoch:         data.EndEpoch,
		CreationTime:     obj.CreationTime,
		YesCount:         obj.YesCount,
		NoCount:          obj.NoCount,
		AbstainCount:     obj.AbstainCount,
		AbsoluteYesCount: obj.AbsoluteYesCount,
		IsFunded:         obj.FCachedFunding,
		IsValid:          obj.FCachedValid,
		CollateralHash:   obj.CollateralHash,
	}, true
}

// NewGovernanceOverview keeps the proposals only, newest first. Ties are ordered by hash.
func NewGovernanceOverview(info *dashcore.GovernanceInfo, objects map[string]dashcore.GovernanceObject) *GovernanceOverview {
	proposals := make([]Proposal, 0, len(objects))

	for hash, obj := range objects {
		if p, ok := NewProposal(hash, &obj); ok {
			proposals = append(proposals, p)
		}
	}

	sort.Slice(proposals, func(i, j int) bool {
		if proposals[i].CreationTime != proposals[j].CreationTime {
			return proposals[i].CreationTime > proposals[j].CreationTime
		}

		return proposals[i].Hash < proposals[j].Hash
	})

	return &GovernanceOverview{
		Info:      NewGovernanceInfo(info),
		Proposals: proposals,
	}
}
