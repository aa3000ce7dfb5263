// Package preflight verifies that the infrastructure a stack imports exists
// before anything is synthesized or deployed.
package preflight

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/network"
	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

//go:generate mockgen -source=./preflight.go --destination=./preflight_mock_test.go --package=preflight

// Lookup is the read-only view of the target account the checks need.
// *aws.Client implements it.
type Lookup interface {
	FindVPC(ctx context.Context, nameOrID string) (*pkgtypes.VPC, error)
	ListSubnets(ctx context.Context, vpcID string) ([]pkgtypes.Subnet, error)
	FindSecurityGroup(ctx context.Context, vpcID, nameOrID string) (*pkgtypes.SecurityGroup, error)
	ResolveSecret(ctx context.Context, nameOrARN string) (*pkgtypes.ResolvedSecret, error)
	ResolveParameter(ctx context.Context, name string) (*pkgtypes.ResolvedSecret, error)
}

// Status is the outcome of a single check
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Check is one verified precondition
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Report is the ordered result of Run
type Report struct {
	Checks []Check
}

// Failed reports whether any check failed
func (r *Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return true
		}
	}
	return false
}

// Count returns how many checks ended with status
func (r *Report) Count(status Status) int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == status {
			n++
		}
	}
	return n
}

func (r *Report) add(name string, status Status, format string, args ...any) {
	c := Check{Name: name, Status: status, Detail: fmt.Sprintf(format, args...)}
	zap.S().Debugw("preflight check", "check", c.Name, "status", c.Status, "detail", c.Detail)
	r.Checks = append(r.Checks, c)
}

// Run checks settings against the account behind lookup. Lookup failures
// are recorded as failed checks; checks that depend on a failed one are
// skipped. Run never returns a partial report.
func Run(ctx context.Context, lookup Lookup, settings *config.Settings) *Report {
	r := &Report{}

	if err := settings.Validate(); err != nil {
		r.add("settings", StatusFail, "%v", err)
	} else {
		r.add("settings", StatusPass, "valid")
	}

	vpc := checkVPC(ctx, r, lookup, settings.Network)
	if vpc == nil {
		for _, name := range []string{"subnets", "database security group"} {
			r.add(name, StatusSkip, "no VPC")
		}
	} else {
		checkSubnets(ctx, r, lookup, vpc.ID, settings)
		checkDatabase(ctx, r, lookup, vpc.ID, settings.Database)
	}

	checkSecrets(ctx, r, lookup, settings.Service.Secrets)
	return r
}

func checkVPC(ctx context.Context, r *Report, lookup Lookup, cfg config.NetworkSettings) *pkgtypes.VPC {
	ref := cfg.VPCID
	if ref == "" {
		ref = cfg.VPCName
	}
	if ref == "" {
		r.add("vpc", StatusFail, "network.vpc_name or network.vpc_id is not set")
		return nil
	}

	vpc, err := lookup.FindVPC(ctx, ref)
	if err != nil {
		r.add("vpc", StatusFail, "%v", err)
		return nil
	}
	r.add("vpc", StatusPass, "%s (%s, %s)", vpc.ID, vpc.Name, vpc.CIDR)
	return vpc
}

func checkSubnets(ctx context.Context, r *Report, lookup Lookup, vpcID string, settings *config.Settings) {
	subnets, err := lookup.ListSubnets(ctx, vpcID)
	if err != nil {
		r.add("subnets", StatusFail, "%v", err)
		return
	}

	cfg := settings.Network
	tiers := []struct {
		tier     network.Tier
		pinned   []string
		required bool
	}{
		// internet-facing load balancers
		{network.TierPublic, cfg.PublicSubnetIDs, true},
		// tasks
		{network.TierPrivate, cfg.PrivateSubnetIDs, true},
		{network.TierIsolated, cfg.IsolatedSubnetIDs, false},
	}

	for _, t := range tiers {
		name := fmt.Sprintf("%s subnets", t.tier)

		if len(t.pinned) > 0 {
			known := make(map[string]bool, len(subnets))
			for _, s := range subnets {
				known[s.ID] = true
			}
			var missing []string
			for _, id := range t.pinned {
				if !known[id] {
					missing = append(missing, id)
				}
			}
			if len(missing) > 0 {
				r.add(name, StatusFail, "not in %s: %s", vpcID, strings.Join(missing, ", "))
				continue
			}
			r.add(name, StatusPass, "%s", strings.Join(t.pinned, ", "))
			continue
		}

		var ids []string
		for _, s := range subnets {
			if s.Tier == string(t.tier) {
				ids = append(ids, s.ID)
			}
		}
		switch {
		case len(ids) > 0:
			r.add(name, StatusPass, "%s", strings.Join(ids, ", "))
		case t.required:
			r.add(name, StatusFail, "none found in %s", vpcID)
		default:
			r.add(name, StatusSkip, "none found in %s", vpcID)
		}
	}
}

func checkDatabase(ctx context.Context, r *Report, lookup Lookup, vpcID string, db config.DatabaseSettings) {
	ref := db.SecurityGroupID
	if ref == "" {
		ref = db.SecurityGroupName
	}
	if ref == "" {
		r.add("database security group", StatusFail, "database.security_group_name is not set")
		return
	}

	sg, err := lookup.FindSecurityGroup(ctx, vpcID, ref)
	if err != nil {
		r.add("database security group", StatusFail, "%v", err)
		return
	}
	r.add("database security group", StatusPass, "%s (%s)", sg.ID, sg.Name)
}

func checkSecrets(ctx context.Context, r *Report, lookup Lookup, refs []config.SecretRef) {
	for _, ref := range refs {
		name := fmt.Sprintf("secret %s", ref.Name)

		var (
			resolved *pkgtypes.ResolvedSecret
			err      error
		)
		switch ref.Source {
		case config.SourceSecretsManager:
			resolved, err = lookup.ResolveSecret(ctx, ref.ID)
		case config.SourceSSM:
			resolved, err = lookup.ResolveParameter(ctx, ref.ID)
		default:
			r.add(name, StatusSkip, "unknown source %q", ref.Source)
			continue
		}
		if err != nil {
			r.add(name, StatusFail, "%v", err)
			continue
		}

		if resolved.Version > 0 {
			r.add(name, StatusPass, "%s (version %d)", resolved.ARN, resolved.Version)
		} else {
			r.add(name, StatusPass, "%s", resolved.ARN)
		}
	}
}
