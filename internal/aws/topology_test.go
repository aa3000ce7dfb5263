package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/network"
)

func topologyClient(t *testing.T) *Client {
	ctrl := gomock.NewController(t)
	mockEC2 := NewMockEC2API(ctrl)
	mockEC2.EXPECT().DescribeVpcs(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ec2.DescribeVpcsOutput{Vpcs: []ec2types.Vpc{ec2Vpc("vpc-1", "main")}}, nil).AnyTimes()
	mockEC2.EXPECT().DescribeSubnets(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ec2.DescribeSubnetsOutput{Subnets: []ec2types.Subnet{
			ec2Subnet("subnet-pub-a", "ap-southeast-2a", "Public", true),
			ec2Subnet("subnet-pub-b", "ap-southeast-2b", "Public", true),
			ec2Subnet("subnet-prv-a", "ap-southeast-2a", "Private", false),
			ec2Subnet("subnet-prv-b", "ap-southeast-2b", "Private", false),
		}}, nil).AnyTimes()
	return &Client{EC2: mockEC2}
}

func Test_ResolveTopology(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.NetworkSettings
		wantPublic   []string
		wantPrivate  []string
		wantIsolated []string
		wantErr      error
		wantErrText  string
	}{
		{
			name:        "every tier from tags",
			cfg:         config.NetworkSettings{VPCName: "main"},
			wantPublic:  []string{"subnet-pub-a", "subnet-pub-b"},
			wantPrivate: []string{"subnet-prv-a", "subnet-prv-b"},
		},
		{
			name: "pinned private subnet",
			cfg: config.NetworkSettings{
				VPCID:            "vpc-1",
				PrivateSubnetIDs: []string{"subnet-prv-b"},
			},
			wantPublic:  []string{"subnet-pub-a", "subnet-pub-b"},
			wantPrivate: []string{"subnet-prv-b"},
		},
		{
			name: "pinned subnet outside the vpc",
			cfg: config.NetworkSettings{
				VPCName:           "main",
				IsolatedSubnetIDs: []string{"subnet-other"},
			},
			wantErr:     ErrNotFound,
			wantErrText: "subnet-other",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			c := topologyClient(t)

			topo, err := c.ResolveTopology(context.Background(), tt.cfg, "prod", "nz")
			if tt.wantErr != nil {
				assert.ErrorIs(err, tt.wantErr)
				assert.ErrorContains(err, tt.wantErrText)
				return
			}
			require.NoError(t, err)

			assert.Equal("vpc-1", topo.VPC.ID)
			assert.Equal("vpc-1", topo.Network.VPC().ID())
			assert.Equal(tt.wantPublic, topo.Network.PublicSubnets().IDs())
			assert.Equal(tt.wantPrivate, topo.Network.PrivateSubnets().IDs())
			assert.Equal(tt.wantIsolated, topo.Network.IsolatedSubnets().IDs())
			assert.Nil(topo.Network.IsolatedSubnets())
			assert.Equal("prod-nz-cluster", topo.Network.ResourceName("cluster"))
		})
	}
}

func Test_ResolveTopology_DefaultsNaming(t *testing.T) {
	c := topologyClient(t)
	topo, err := c.ResolveTopology(context.Background(), config.NetworkSettings{VPCName: "main"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "dev-au-cluster", topo.Network.ResourceName("cluster"))
}

func Test_ResolveTopology_NoVPC(t *testing.T) {
	c := &Client{}
	_, err := c.ResolveTopology(context.Background(), config.NetworkSettings{}, "dev", "au")
	assert.Error(t, err)
}

func Test_Topology_Selected(t *testing.T) {
	c := topologyClient(t)
	topo, err := c.ResolveTopology(context.Background(), config.NetworkSettings{
		VPCName:          "main",
		PrivateSubnetIDs: []string{"subnet-prv-b", "subnet-prv-a"},
	}, "dev", "au")
	require.NoError(t, err)

	selected := topo.Selected(network.TierPrivate)
	require.Len(t, selected, 2)
	assert.Equal(t, "subnet-prv-b", selected[0].ID)
	assert.Equal(t, "ap-southeast-2b", selected[0].AZ)
	assert.Equal(t, "subnet-prv-a", selected[1].ID)
	assert.Empty(t, topo.Selected(network.TierIsolated))
}
