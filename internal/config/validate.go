package config

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a Settings value
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration:\n  - " + strings.Join(e.Problems, "\n  - ")
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks that every identifier naming existing infrastructure is
// set and that numeric settings are usable. It returns a *ValidationError.
func (s *Settings) Validate() error {
	verr := &ValidationError{}

	if s.StackName == "" {
		verr.add("stack_name is required")
	}
	if s.Network.VPCName == "" && s.Network.VPCID == "" {
		verr.add("network.vpc_name or network.vpc_id is required")
	}
	tiers := []struct {
		key string
		ids []string
	}{
		{"public_subnet_ids", s.Network.PublicSubnetIDs},
		{"private_subnet_ids", s.Network.PrivateSubnetIDs},
		{"isolated_subnet_ids", s.Network.IsolatedSubnetIDs},
	}
	for _, tier := range tiers {
		for i, id := range tier.ids {
			if strings.TrimSpace(id) == "" {
				verr.add("network.%s[%d] is empty", tier.key, i)
			}
		}
	}

	if s.DNS.ZoneName == "" {
		verr.add("dns.zone_name is required")
	}
	if s.DNS.DomainName == "" {
		verr.add("dns.domain_name is required")
	} else if s.DNS.ZoneName != "" && !isWithinZone(s.DNS.DomainName, s.DNS.ZoneName) {
		verr.add("dns.domain_name %q is not within zone %q", s.DNS.DomainName, s.DNS.ZoneName)
	}

	if s.Database.SecurityGroupName == "" && s.Database.SecurityGroupID == "" {
		verr.add("database.security_group_name or database.security_group_id is required")
	}
	if s.Database.Port <= 0 || s.Database.Port > 65535 {
		verr.add("database.port %d is out of range", s.Database.Port)
	}

	s.validateService(verr)

	if s.Scaling.MinCapacity < 0 {
		verr.add("scaling.min_capacity must not be negative")
	}
	if s.Scaling.MaxCapacity < s.Scaling.MinCapacity {
		verr.add("scaling.max_capacity (%d) is below scaling.min_capacity (%d)", s.Scaling.MaxCapacity, s.Scaling.MinCapacity)
	}
	if s.Scaling.TargetCPUPercent <= 0 || s.Scaling.TargetCPUPercent > 100 {
		verr.add("scaling.target_cpu_percent must be between 1 and 100")
	}
	if s.Alarm.EvaluationPeriods <= 0 {
		verr.add("alarm.evaluation_periods must be positive")
	}

	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

func (s *Settings) validateService(verr *ValidationError) {
	svc := s.Service
	if svc.Repository == "" {
		verr.add("service.repository is required")
	}
	if svc.Tag == "" {
		verr.add("service.tag is required")
	}
	if svc.CPU <= 0 {
		verr.add("service.cpu must be positive")
	}
	if svc.MemoryMiB <= 0 {
		verr.add("service.memory_mib must be positive")
	}
	if svc.DesiredCount < 0 {
		verr.add("service.desired_count must not be negative")
	}
	if svc.ContainerPort <= 0 || svc.ContainerPort > 65535 {
		verr.add("service.container_port %d is out of range", svc.ContainerPort)
	}
	if svc.HealthCheckGracePeriod < 0 || svc.IdleTimeout < 0 {
		verr.add("service durations must not be negative")
	}

	for i, env := range svc.Environment {
		if env.Name == "" {
			verr.add("service.environment[%d].name is required", i)
		}
	}

	for i, ref := range svc.Secrets {
		if ref.Name == "" {
			verr.add("service.secrets[%d].name is required", i)
		}
		if ref.ID == "" {
			verr.add("service.secrets[%d].id is required", i)
		}
		switch ref.Source {
		case SourceSecretsManager:
		case SourceSSM:
			if ref.Field != "" {
				verr.add("service.secrets[%d].field is only supported for %s", i, SourceSecretsManager)
			}
		default:
			verr.add("service.secrets[%d].source %q must be %q or %q", i, ref.Source, SourceSecretsManager, SourceSSM)
		}
	}

	if len(svc.Builders) == 0 {
		verr.add("service.builders must name at least one builder")
	}
	seen := make(map[string]bool)
	for _, b := range svc.Builders {
		switch b {
		case BuilderPattern, BuilderRaw:
		default:
			verr.add("service.builders: unknown builder %q", b)
		}
		if seen[b] {
			verr.add("service.builders: %q listed twice", b)
		}
		seen[b] = true
	}
}

// HasBuilder reports whether the named builder is enabled
func (s *Settings) HasBuilder(name string) bool {
	for _, b := range s.Service.Builders {
		if b == name {
			return true
		}
	}
	return false
}

func isWithinZone(domain, zone string) bool {
	domain, zone = canonicalName(domain), canonicalName(zone)
	return domain == zone || strings.HasSuffix(domain, "."+zone)
}

// IsZoneApex reports whether domain names the zone itself
func IsZoneApex(domain, zone string) bool {
	return canonicalName(domain) == canonicalName(zone)
}

func canonicalName(name string) string {
	return strings.TrimSuffix(strings.ToLower(name), ".")
}
