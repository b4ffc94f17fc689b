package dashcore

import (
	"context"

	"github.com/dashbook/dashbook/errors"
)

func (c *Client) GetGovernanceInfo(ctx context.Context) (*GovernanceInfo, error) {
	info := &GovernanceInfo{}
	if err := c.Call(ctx, "getgovernanceinfo", nil, info); err != nil {
		return nil, err
	}

	return info, nil
}

// GetGovernanceObjects returns all governance objects keyed by object hash.
func (c *Client) GetGovernanceObjects(ctx context.Context) (map[string]GovernanceObject, error) {
	objects := make(map[string]GovernanceObject)
	if err := c.Call(ctx, "gobject", []interface{}{"list"}, &objects); err != nil {
		return nil, err
	}

	return objects, nil
}

// Proposal decodes the proposal document carried in DataString.
func (o *GovernanceObject) Proposal() (*ProposalData, error) {
	data := &ProposalData{}
	if err := json.Unmarshal([]byte(o.DataString), data); err != nil {
		return nil, errors.NewInvalidResponseError("governance object %s has an invalid proposal document", o.Hash, err)
	}

	return data, nil
}
