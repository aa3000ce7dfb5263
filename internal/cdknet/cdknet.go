// Package cdknet binds CDK network constructs to a network.Context.
package cdknet

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/network"
)

// VPC is a network.Handle backed by a CDK VPC construct
type VPC struct {
	awsec2.IVpc
}

// ID implements network.Handle
func (v VPC) ID() string { return *v.VpcId() }

// Subnet is a network.Handle backed by a CDK subnet construct
type Subnet struct {
	awsec2.ISubnet
}

// ID implements network.Handle
func (s Subnet) ID() string { return *s.SubnetId() }

// Lookup resolves the configured VPC at synth time through the CDK context
// provider and binds it with Bind. The enclosing stack needs a concrete
// account and region.
func Lookup(scope constructs.Construct, cfg config.NetworkSettings, environment, tenant string) (*network.Context, error) {
	opts := &awsec2.VpcLookupOptions{}
	switch {
	case cfg.VPCID != "":
		opts.VpcId = jsii.String(cfg.VPCID)
	case cfg.VPCName != "":
		opts.VpcName = jsii.String(cfg.VPCName)
	default:
		return nil, fmt.Errorf("no VPC configured")
	}

	vpc := awsec2.Vpc_FromLookup(scope, jsii.String("Vpc"), opts)
	return Bind(scope, vpc, cfg, environment, tenant), nil
}

// Bind builds a network.Context around a CDK VPC. Tiers with pinned subnet
// IDs import those subnets; other tiers take the VPC's own subnets of that
// tier, and a tier the VPC does not have is left absent.
func Bind(scope constructs.Construct, vpc awsec2.IVpc, cfg config.NetworkSettings, environment, tenant string) *network.Context {
	opts := []network.Option{
		network.WithEnvironment(environment),
		network.WithTenant(tenant),
	}

	tiers := []struct {
		tier   network.Tier
		pinned []string
		own    func() *[]awsec2.ISubnet
		with   func(*network.SubnetSelection) network.Option
	}{
		{network.TierPublic, cfg.PublicSubnetIDs, vpc.PublicSubnets, network.WithPublicSubnets},
		{network.TierPrivate, cfg.PrivateSubnetIDs, vpc.PrivateSubnets, network.WithPrivateSubnets},
		{network.TierIsolated, cfg.IsolatedSubnetIDs, vpc.IsolatedSubnets, network.WithIsolatedSubnets},
	}
	for _, t := range tiers {
		var subnets []awsec2.ISubnet
		if len(t.pinned) > 0 {
			for i, id := range t.pinned {
				subnets = append(subnets, awsec2.Subnet_FromSubnetId(scope, jsii.String(fmt.Sprintf("%s-subnet-%d", t.tier, i)), jsii.String(id)))
			}
		} else if own := t.own(); own != nil {
			subnets = *own
		}
		if len(subnets) == 0 {
			continue
		}

		sel := &network.SubnetSelection{Tier: t.tier}
		for _, s := range subnets {
			sel.Subnets = append(sel.Subnets, Subnet{s})
		}
		opts = append(opts, t.with(sel))
	}

	return network.New(VPC{vpc}, opts...)
}

// Unwrap returns the CDK VPC behind a context's network handle
func Unwrap(ctx *network.Context) (awsec2.IVpc, error) {
	switch v := ctx.VPC().(type) {
	case VPC:
		return v.IVpc, nil
	case *VPC:
		return v.IVpc, nil
	case nil:
		return nil, fmt.Errorf("network context has no VPC")
	default:
		return nil, fmt.Errorf("vpc %s is not a CDK construct", v.ID())
	}
}

// Selection converts a subnet selection into a CDK one. Handles that are not
// CDK-backed are imported by ID under scope, with construct IDs derived from
// id. A nil or empty selection yields nil.
func Selection(scope constructs.Construct, id string, sel *network.SubnetSelection) *awsec2.SubnetSelection {
	if sel.Len() == 0 {
		return nil
	}

	subnets := make([]awsec2.ISubnet, 0, sel.Len())
	for i, h := range sel.Subnets {
		switch s := h.(type) {
		case Subnet:
			subnets = append(subnets, s.ISubnet)
		case *Subnet:
			subnets = append(subnets, s.ISubnet)
		default:
			subnets = append(subnets, awsec2.Subnet_FromSubnetId(scope, jsii.String(fmt.Sprintf("%s%d", id, i)), jsii.String(h.ID())))
		}
	}

	return &awsec2.SubnetSelection{Subnets: &subnets}
}
