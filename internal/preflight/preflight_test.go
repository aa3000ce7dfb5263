package preflight

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/Azsael/CdkDemo/internal/aws"
	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/network"
	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

var _ Lookup = (*aws.Client)(nil)

func validSettings() *config.Settings {
	s := config.Template()
	return &s
}

var testSubnets = []pkgtypes.Subnet{
	{ID: "subnet-pub", Tier: string(network.TierPublic)},
	{ID: "subnet-prv", Tier: string(network.TierPrivate)},
}

func statuses(r *Report) map[string]Status {
	out := make(map[string]Status, len(r.Checks))
	for _, c := range r.Checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		settings   func(*config.Settings)
		setup      func(m *MockLookup)
		want       map[string]Status
		wantFailed bool
	}{
		{
			name: "all pass",
			setup: func(m *MockLookup) {
				m.EXPECT().FindVPC(gomock.Any(), "main").Return(&pkgtypes.VPC{ID: "vpc-1", Name: "main"}, nil)
				m.EXPECT().ListSubnets(gomock.Any(), "vpc-1").Return(testSubnets, nil)
				m.EXPECT().FindSecurityGroup(gomock.Any(), "vpc-1", "database").Return(&pkgtypes.SecurityGroup{ID: "sg-1", Name: "database"}, nil)
			},
			want: map[string]Status{
				"settings":                    StatusPass,
				"vpc":                         StatusPass,
				"public subnets":              StatusPass,
				"private-with-egress subnets": StatusPass,
				"isolated subnets":            StatusSkip,
				"database security group":     StatusPass,
			},
		},
		{
			name: "vpc missing skips dependent checks",
			setup: func(m *MockLookup) {
				m.EXPECT().FindVPC(gomock.Any(), "main").Return(nil, fmt.Errorf("vpc named %q: %w", "main", aws.ErrNotFound))
			},
			want: map[string]Status{
				"settings":                StatusPass,
				"vpc":                     StatusFail,
				"subnets":                 StatusSkip,
				"database security group": StatusSkip,
			},
			wantFailed: true,
		},
		{
			name: "pinned subnet outside vpc",
			settings: func(s *config.Settings) {
				s.Network.PrivateSubnetIDs = []string{"subnet-prv", "subnet-gone"}
			},
			setup: func(m *MockLookup) {
				m.EXPECT().FindVPC(gomock.Any(), "main").Return(&pkgtypes.VPC{ID: "vpc-1"}, nil)
				m.EXPECT().ListSubnets(gomock.Any(), "vpc-1").Return(testSubnets, nil)
				m.EXPECT().FindSecurityGroup(gomock.Any(), "vpc-1", "database").Return(&pkgtypes.SecurityGroup{ID: "sg-1"}, nil)
			},
			want: map[string]Status{
				"public subnets":              StatusPass,
				"private-with-egress subnets": StatusFail,
			},
			wantFailed: true,
		},
		{
			name: "no private subnets",
			setup: func(m *MockLookup) {
				m.EXPECT().FindVPC(gomock.Any(), "main").Return(&pkgtypes.VPC{ID: "vpc-1"}, nil)
				m.EXPECT().ListSubnets(gomock.Any(), "vpc-1").Return(testSubnets[:1], nil)
				m.EXPECT().FindSecurityGroup(gomock.Any(), "vpc-1", "database").Return(&pkgtypes.SecurityGroup{ID: "sg-1"}, nil)
			},
			want: map[string]Status{
				"private-with-egress subnets": StatusFail,
			},
			wantFailed: true,
		},
		{
			name: "database group by id",
			settings: func(s *config.Settings) {
				s.Database.SecurityGroupID = "sg-9"
			},
			setup: func(m *MockLookup) {
				m.EXPECT().FindVPC(gomock.Any(), "main").Return(&pkgtypes.VPC{ID: "vpc-1"}, nil)
				m.EXPECT().ListSubnets(gomock.Any(), "vpc-1").Return(testSubnets, nil)
				m.EXPECT().FindSecurityGroup(gomock.Any(), "vpc-1", "sg-9").Return(nil, aws.ErrNotFound)
			},
			want: map[string]Status{
				"database security group": StatusFail,
			},
			wantFailed: true,
		},
		{
			name: "secrets",
			settings: func(s *config.Settings) {
				s.Service.Secrets = []config.SecretRef{
					{Name: "DB_PASSWORD", Source: config.SourceSecretsManager, ID: "app/db"},
					{Name: "API_KEY", Source: config.SourceSSM, ID: "/dev/au/api-key"},
				}
			},
			setup: func(m *MockLookup) {
				m.EXPECT().FindVPC(gomock.Any(), "main").Return(&pkgtypes.VPC{ID: "vpc-1"}, nil)
				m.EXPECT().ListSubnets(gomock.Any(), "vpc-1").Return(testSubnets, nil)
				m.EXPECT().FindSecurityGroup(gomock.Any(), "vpc-1", "database").Return(&pkgtypes.SecurityGroup{ID: "sg-1"}, nil)
				m.EXPECT().ResolveSecret(gomock.Any(), "app/db").Return(&pkgtypes.ResolvedSecret{ARN: "arn:secret"}, nil)
				m.EXPECT().ResolveParameter(gomock.Any(), "/dev/au/api-key").Return(nil, errors.New("access denied"))
			},
			want: map[string]Status{
				"secret DB_PASSWORD": StatusPass,
				"secret API_KEY":     StatusFail,
			},
			wantFailed: true,
		},
		{
			name: "invalid settings still checks the account",
			settings: func(s *config.Settings) {
				s.Service.Repository = ""
			},
			setup: func(m *MockLookup) {
				m.EXPECT().FindVPC(gomock.Any(), "main").Return(&pkgtypes.VPC{ID: "vpc-1"}, nil)
				m.EXPECT().ListSubnets(gomock.Any(), "vpc-1").Return(testSubnets, nil)
				m.EXPECT().FindSecurityGroup(gomock.Any(), "vpc-1", "database").Return(&pkgtypes.SecurityGroup{ID: "sg-1"}, nil)
			},
			want: map[string]Status{
				"settings": StatusFail,
				"vpc":      StatusPass,
			},
			wantFailed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			ctrl := gomock.NewController(t)
			lookup := NewMockLookup(ctrl)
			tt.setup(lookup)

			settings := validSettings()
			if tt.settings != nil {
				tt.settings(settings)
			}

			report := Run(context.Background(), lookup, settings)
			got := statuses(report)
			for name, status := range tt.want {
				assert.Equal(status, got[name], "check %q", name)
			}
			assert.Equal(tt.wantFailed, report.Failed())
		})
	}
}

func TestRun_NoVPCConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookup := NewMockLookup(ctrl)

	settings := validSettings()
	settings.Network.VPCName = ""

	report := Run(context.Background(), lookup, settings)
	assert.True(t, report.Failed())
	assert.Equal(t, StatusFail, statuses(report)["vpc"])
	assert.Equal(t, 2, report.Count(StatusFail))
}

func TestReport_Count(t *testing.T) {
	r := &Report{Checks: []Check{
		{Name: "a", Status: StatusPass},
		{Name: "b", Status: StatusSkip},
		{Name: "c", Status: StatusPass},
	}}
	assert.Equal(t, 2, r.Count(StatusPass))
	assert.Equal(t, 1, r.Count(StatusSkip))
	assert.False(t, r.Failed())
}
