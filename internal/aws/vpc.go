package aws

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/Azsael/CdkDemo/internal/network"
	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

// SubnetTypeTag is the tag CDK-created VPCs carry on every subnet
const SubnetTypeTag = "aws-cdk:subnet-type"

// ListVPCs returns all VPCs
func (c *Client) ListVPCs(ctx context.Context) ([]pkgtypes.VPC, error) {
	return c.describeVPCs(ctx, &ec2.DescribeVpcsInput{})
}

// DescribeVPC returns detailed information about a specific VPC
func (c *Client) DescribeVPC(ctx context.Context, vpcID string) (*pkgtypes.VPC, error) {
	vpcs, err := c.describeVPCs(ctx, &ec2.DescribeVpcsInput{
		VpcIds: []string{vpcID},
	})
	if err != nil {
		return nil, err
	}

	if len(vpcs) == 0 {
		return nil, fmt.Errorf("vpc %s: %w", vpcID, ErrNotFound)
	}

	return &vpcs[0], nil
}

// FindVPC resolves a VPC by ID ("vpc-..." prefix) or by its Name tag
func (c *Client) FindVPC(ctx context.Context, nameOrID string) (*pkgtypes.VPC, error) {
	if strings.HasPrefix(nameOrID, "vpc-") {
		return c.DescribeVPC(ctx, nameOrID)
	}

	vpcs, err := c.describeVPCs(ctx, &ec2.DescribeVpcsInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("tag:Name"),
				Values: []string{nameOrID},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	switch len(vpcs) {
	case 0:
		return nil, fmt.Errorf("vpc named %q: %w", nameOrID, ErrNotFound)
	case 1:
		return &vpcs[0], nil
	default:
		ids := make([]string, 0, len(vpcs))
		for _, v := range vpcs {
			ids = append(ids, v.ID)
		}
		return nil, fmt.Errorf("vpc named %q (%s): %w", nameOrID, strings.Join(ids, ", "), ErrAmbiguous)
	}
}

func (c *Client) describeVPCs(ctx context.Context, input *ec2.DescribeVpcsInput) ([]pkgtypes.VPC, error) {
	var vpcs []pkgtypes.VPC
	for {
		output, err := c.EC2.DescribeVpcs(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to describe VPCs: %w", err)
		}

		for _, v := range output.Vpcs {
			vpcs = append(vpcs, toVPC(v))
		}

		if output.NextToken == nil {
			break
		}
		input.NextToken = output.NextToken
	}

	return vpcs, nil
}

// ListSubnets returns all subnets, optionally filtered by VPC ID, ordered by
// availability zone then ID
func (c *Client) ListSubnets(ctx context.Context, vpcID string) ([]pkgtypes.Subnet, error) {
	input := &ec2.DescribeSubnetsInput{}

	if vpcID != "" {
		input.Filters = []ec2types.Filter{
			{
				Name:   aws.String("vpc-id"),
				Values: []string{vpcID},
			},
		}
	}

	var subnets []pkgtypes.Subnet
	for {
		output, err := c.EC2.DescribeSubnets(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to describe subnets: %w", err)
		}

		for _, s := range output.Subnets {
			subnets = append(subnets, toSubnet(s))
		}

		if output.NextToken == nil {
			break
		}
		input.NextToken = output.NextToken
	}

	sort.SliceStable(subnets, func(i, j int) bool {
		if subnets[i].AZ != subnets[j].AZ {
			return subnets[i].AZ < subnets[j].AZ
		}
		return subnets[i].ID < subnets[j].ID
	})

	return subnets, nil
}

// FindSecurityGroup resolves a security group in a VPC by ID ("sg-" prefix) or group name
func (c *Client) FindSecurityGroup(ctx context.Context, vpcID, nameOrID string) (*pkgtypes.SecurityGroup, error) {
	input := &ec2.DescribeSecurityGroupsInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("vpc-id"),
				Values: []string{vpcID},
			},
		},
	}
	if strings.HasPrefix(nameOrID, "sg-") {
		input.GroupIds = []string{nameOrID}
	} else {
		input.Filters = append(input.Filters, ec2types.Filter{
			Name:   aws.String("group-name"),
			Values: []string{nameOrID},
		})
	}

	output, err := c.EC2.DescribeSecurityGroups(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to describe security groups: %w", err)
	}

	if len(output.SecurityGroups) == 0 {
		return nil, fmt.Errorf("security group %q in %s: %w", nameOrID, vpcID, ErrNotFound)
	}

	sg := output.SecurityGroups[0]
	return &pkgtypes.SecurityGroup{
		ID:          deref(sg.GroupId),
		Name:        deref(sg.GroupName),
		VPCID:       deref(sg.VpcId),
		Description: deref(sg.Description),
	}, nil
}

// toVPC converts an EC2 VPC to our VPC type
func toVPC(v ec2types.Vpc) pkgtypes.VPC {
	return pkgtypes.VPC{
		ID:        deref(v.VpcId),
		Name:      tagValue(v.Tags, "Name"),
		CIDR:      deref(v.CidrBlock),
		State:     string(v.State),
		IsDefault: derefBool(v.IsDefault),
		OwnerID:   deref(v.OwnerId),
	}
}

// toSubnet converts an EC2 Subnet to our Subnet type
func toSubnet(s ec2types.Subnet) pkgtypes.Subnet {
	subnet := pkgtypes.Subnet{
		ID:           deref(s.SubnetId),
		Name:         tagValue(s.Tags, "Name"),
		VPCID:        deref(s.VpcId),
		CIDR:         deref(s.CidrBlock),
		AZ:           deref(s.AvailabilityZone),
		AvailableIPs: int(derefInt32(s.AvailableIpAddressCount)),
		State:        string(s.State),
		Public:       derefBool(s.MapPublicIpOnLaunch),
	}
	subnet.Tier = string(classifyTier(tagValue(s.Tags, SubnetTypeTag), subnet.Public))

	return subnet
}

// classifyTier maps the CDK subnet-type tag onto a tier, falling back to
// the public-IP-on-launch flag for subnets CDK did not create
func classifyTier(subnetType string, public bool) network.Tier {
	switch strings.ToLower(subnetType) {
	case "public":
		return network.TierPublic
	case "private":
		return network.TierPrivate
	case "isolated":
		return network.TierIsolated
	}
	if public {
		return network.TierPublic
	}
	return network.TierPrivate
}

func tagValue(tags []ec2types.Tag, key string) string {
	for _, tag := range tags {
		if deref(tag.Key) == key {
			return deref(tag.Value)
		}
	}
	return ""
}
