package aws

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/network"
	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

// Topology is the network a run deploys into, as resolved through the EC2 API
type Topology struct {
	VPC     pkgtypes.VPC
	Subnets []pkgtypes.Subnet
	Network *network.Context
}

// Selected returns the subnets chosen for a tier, in selection order
func (t *Topology) Selected(tier network.Tier) []pkgtypes.Subnet {
	byID := make(map[string]pkgtypes.Subnet, len(t.Subnets))
	for _, s := range t.Subnets {
		byID[s.ID] = s
	}

	var out []pkgtypes.Subnet
	for _, id := range t.Network.Subnets(tier).IDs() {
		out = append(out, byID[id])
	}
	return out
}

// ResolveTopology finds the configured VPC and builds a network.Context from
// its subnets. Pinned subnet IDs must belong to the VPC; tiers without pinned
// IDs take every subnet classified into that tier.
func (c *Client) ResolveTopology(ctx context.Context, cfg config.NetworkSettings, environment, tenant string) (*Topology, error) {
	ref := cfg.VPCID
	if ref == "" {
		ref = cfg.VPCName
	}
	if ref == "" {
		return nil, fmt.Errorf("no VPC configured")
	}

	vpc, err := c.FindVPC(ctx, ref)
	if err != nil {
		return nil, err
	}

	subnets, err := c.ListSubnets(ctx, vpc.ID)
	if err != nil {
		return nil, err
	}

	log := zap.S().With("vpc", vpc.ID, "environment", environment, "tenant", tenant)
	log.Debugf("resolved %d subnets", len(subnets))

	opts := []network.Option{
		network.WithEnvironment(environment),
		network.WithTenant(tenant),
	}
	tiers := []struct {
		tier   network.Tier
		pinned []string
		with   func(*network.SubnetSelection) network.Option
	}{
		{network.TierPublic, cfg.PublicSubnetIDs, network.WithPublicSubnets},
		{network.TierPrivate, cfg.PrivateSubnetIDs, network.WithPrivateSubnets},
		{network.TierIsolated, cfg.IsolatedSubnetIDs, network.WithIsolatedSubnets},
	}
	for _, t := range tiers {
		sel, err := selectTier(t.tier, t.pinned, subnets)
		if err != nil {
			return nil, fmt.Errorf("vpc %s: %w", vpc.ID, err)
		}
		if sel == nil {
			log.Debugf("no %s subnets", t.tier)
			continue
		}
		opts = append(opts, t.with(sel))
	}

	return &Topology{
		VPC:     *vpc,
		Subnets: subnets,
		Network: network.New(network.ID(vpc.ID), opts...),
	}, nil
}

func selectTier(tier network.Tier, pinned []string, subnets []pkgtypes.Subnet) (*network.SubnetSelection, error) {
	sel := &network.SubnetSelection{Tier: tier}

	if len(pinned) > 0 {
		known := make(map[string]bool, len(subnets))
		for _, s := range subnets {
			known[s.ID] = true
		}
		var missing []string
		for _, id := range pinned {
			if !known[id] {
				missing = append(missing, id)
				continue
			}
			sel.Subnets = append(sel.Subnets, network.ID(id))
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%s subnets %s: %w", tier, strings.Join(missing, ", "), ErrNotFound)
		}
		return sel, nil
	}

	for _, s := range subnets {
		if s.Tier == string(tier) {
			sel.Subnets = append(sel.Subnets, network.ID(s.ID))
		}
	}
	if len(sel.Subnets) == 0 {
		return nil, nil
	}
	return sel, nil
}
