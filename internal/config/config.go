package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides (CDKDEMO_SERVICE_TAG, ...)
const EnvPrefix = "CDKDEMO"

// DefaultFileName is the config file looked up in the working directory
const DefaultFileName = "cdkdemo.yaml"

// Builder names accepted in service.builders
const (
	BuilderPattern = "pattern"
	BuilderRaw     = "raw"
)

// Secret sources accepted in service.secrets[].source
const (
	SourceSecretsManager = "secretsmanager"
	SourceSSM            = "ssm"
)

// Settings is the full configuration of a provisioning run
type Settings struct {
	Account     string `yaml:"account,omitempty" mapstructure:"account"`
	Region      string `yaml:"region,omitempty" mapstructure:"region"`
	Profile     string `yaml:"profile,omitempty" mapstructure:"profile"`
	StackName   string `yaml:"stack_name" mapstructure:"stack_name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Tenant      string `yaml:"tenant" mapstructure:"tenant"`

	Network  NetworkSettings  `yaml:"network" mapstructure:"network"`
	DNS      DNSSettings      `yaml:"dns" mapstructure:"dns"`
	Database DatabaseSettings `yaml:"database" mapstructure:"database"`
	Service  ServiceSettings  `yaml:"service" mapstructure:"service"`
	Scaling  ScalingSettings  `yaml:"scaling" mapstructure:"scaling"`
	Alarm    AlarmSettings    `yaml:"alarm" mapstructure:"alarm"`
}

// NetworkSettings identifies the existing VPC and, optionally, pins the
// subnets used for each tier. Empty subnet lists mean "every subnet of
// that tier in the VPC".
type NetworkSettings struct {
	VPCName           string   `yaml:"vpc_name,omitempty" mapstructure:"vpc_name"`
	VPCID             string   `yaml:"vpc_id,omitempty" mapstructure:"vpc_id"`
	PublicSubnetIDs   []string `yaml:"public_subnet_ids,omitempty" mapstructure:"public_subnet_ids"`
	PrivateSubnetIDs  []string `yaml:"private_subnet_ids,omitempty" mapstructure:"private_subnet_ids"`
	IsolatedSubnetIDs []string `yaml:"isolated_subnet_ids,omitempty" mapstructure:"isolated_subnet_ids"`
}

// DNSSettings configures the hosted zone and the service domain
type DNSSettings struct {
	ZoneName   string `yaml:"zone_name" mapstructure:"zone_name"`
	ZoneID     string `yaml:"zone_id,omitempty" mapstructure:"zone_id"` // import instead of create
	DomainName string `yaml:"domain_name" mapstructure:"domain_name"`
}

// DatabaseSettings names the existing database security group the service talks to
type DatabaseSettings struct {
	SecurityGroupName string `yaml:"security_group_name" mapstructure:"security_group_name"`
	SecurityGroupID   string `yaml:"security_group_id,omitempty" mapstructure:"security_group_id"`
	Port              int    `yaml:"port" mapstructure:"port"`
}

// EnvVar is a plain container environment variable. A list is used rather
// than a map because viper lower-cases map keys.
type EnvVar struct {
	Name  string `yaml:"name" mapstructure:"name"`
	Value string `yaml:"value" mapstructure:"value"`
}

// SecretRef maps a container environment variable onto a stored secret
type SecretRef struct {
	Name   string `yaml:"name" mapstructure:"name"`             // env var inside the container
	Source string `yaml:"source" mapstructure:"source"`         // secretsmanager or ssm
	ID     string `yaml:"id" mapstructure:"id"`                 // secret name/ARN or parameter name
	Field  string `yaml:"field,omitempty" mapstructure:"field"` // JSON key, secretsmanager only
	ARN    string `yaml:"arn,omitempty" mapstructure:"arn"`     // resolved before synth
}

// ServiceSettings configures the container service
type ServiceSettings struct {
	Repository             string        `yaml:"repository" mapstructure:"repository"`
	Tag                    string        `yaml:"tag" mapstructure:"tag"`
	CPU                    int           `yaml:"cpu" mapstructure:"cpu"`
	MemoryMiB              int           `yaml:"memory_mib" mapstructure:"memory_mib"`
	DesiredCount           int           `yaml:"desired_count" mapstructure:"desired_count"`
	ContainerPort          int           `yaml:"container_port" mapstructure:"container_port"`
	HealthCheckPath        string        `yaml:"health_check_path" mapstructure:"health_check_path"`
	HealthCheckGracePeriod time.Duration `yaml:"health_check_grace_period" mapstructure:"health_check_grace_period"`
	IdleTimeout            time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	Environment            []EnvVar      `yaml:"environment,omitempty" mapstructure:"environment"`
	Secrets                []SecretRef   `yaml:"secrets,omitempty" mapstructure:"secrets"`
	Builders               []string      `yaml:"builders" mapstructure:"builders"`
}

// ScalingSettings configures task count autoscaling
type ScalingSettings struct {
	MinCapacity      int `yaml:"min_capacity" mapstructure:"min_capacity"`
	MaxCapacity      int `yaml:"max_capacity" mapstructure:"max_capacity"`
	TargetCPUPercent int `yaml:"target_cpu_percent" mapstructure:"target_cpu_percent"`
}

// AlarmSettings configures the service CPU alarm
type AlarmSettings struct {
	CPUThreshold      float64 `yaml:"cpu_threshold" mapstructure:"cpu_threshold"`
	EvaluationPeriods int     `yaml:"evaluation_periods" mapstructure:"evaluation_periods"`
}

// Default returns the settings every run starts from. Identifiers that name
// existing infrastructure are left empty and must be configured.
func Default() Settings {
	return Settings{
		StackName:   "CdkDemoStack",
		Environment: "dev",
		Tenant:      "au",
		Database: DatabaseSettings{
			Port: 3306,
		},
		Service: ServiceSettings{
			Tag:                    "latest",
			CPU:                    1024,
			MemoryMiB:              2048,
			DesiredCount:           1,
			ContainerPort:          80,
			HealthCheckPath:        "/",
			HealthCheckGracePeriod: 5 * time.Second,
			IdleTimeout:            30 * time.Second,
			Environment: []EnvVar{
				{Name: "ASPNETCORE_ENVIRONMENT", Value: "Production"},
			},
			Builders: []string{BuilderPattern, BuilderRaw},
		},
		Scaling: ScalingSettings{
			MinCapacity:      5,
			MaxCapacity:      20,
			TargetCPUPercent: 20,
		},
		Alarm: AlarmSettings{
			CPUThreshold:      50,
			EvaluationPeriods: 3,
		},
	}
}

// SetDefaults registers Default() with v so that environment overrides
// resolve for every key.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("account", d.Account)
	v.SetDefault("region", d.Region)
	v.SetDefault("profile", d.Profile)
	v.SetDefault("stack_name", d.StackName)
	v.SetDefault("environment", d.Environment)
	v.SetDefault("tenant", d.Tenant)

	v.SetDefault("network.vpc_name", d.Network.VPCName)
	v.SetDefault("network.vpc_id", d.Network.VPCID)
	v.SetDefault("network.public_subnet_ids", d.Network.PublicSubnetIDs)
	v.SetDefault("network.private_subnet_ids", d.Network.PrivateSubnetIDs)
	v.SetDefault("network.isolated_subnet_ids", d.Network.IsolatedSubnetIDs)

	v.SetDefault("dns.zone_name", d.DNS.ZoneName)
	v.SetDefault("dns.zone_id", d.DNS.ZoneID)
	v.SetDefault("dns.domain_name", d.DNS.DomainName)

	v.SetDefault("database.security_group_name", d.Database.SecurityGroupName)
	v.SetDefault("database.security_group_id", d.Database.SecurityGroupID)
	v.SetDefault("database.port", d.Database.Port)

	v.SetDefault("service.repository", d.Service.Repository)
	v.SetDefault("service.tag", d.Service.Tag)
	v.SetDefault("service.cpu", d.Service.CPU)
	v.SetDefault("service.memory_mib", d.Service.MemoryMiB)
	v.SetDefault("service.desired_count", d.Service.DesiredCount)
	v.SetDefault("service.container_port", d.Service.ContainerPort)
	v.SetDefault("service.health_check_path", d.Service.HealthCheckPath)
	v.SetDefault("service.health_check_grace_period", d.Service.HealthCheckGracePeriod)
	v.SetDefault("service.idle_timeout", d.Service.IdleTimeout)
	v.SetDefault("service.environment", d.Service.Environment)
	v.SetDefault("service.builders", d.Service.Builders)

	v.SetDefault("scaling.min_capacity", d.Scaling.MinCapacity)
	v.SetDefault("scaling.max_capacity", d.Scaling.MaxCapacity)
	v.SetDefault("scaling.target_cpu_percent", d.Scaling.TargetCPUPercent)

	v.SetDefault("alarm.cpu_threshold", d.Alarm.CPUThreshold)
	v.SetDefault("alarm.evaluation_periods", d.Alarm.EvaluationPeriods)
}

// NewViper returns a viper instance wired for cdkdemo: defaults, the
// CDKDEMO_ environment prefix and the config file at path (or
// ./cdkdemo.yaml when path is empty).
func NewViper(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	return v
}

// Load reads the config file (if any) and decodes the merged settings.
// A missing file is not an error when no explicit path was requested.
func Load(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &s, nil
}

// Write saves settings as YAML at path, creating parent directories
func Write(path string, s *Settings) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := Marshal(s)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal encodes settings as YAML
func Marshal(s *Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Template returns defaults with example values for the identifiers that
// have no sensible default, for `cdkdemo config init`.
func Template() Settings {
	s := Default()
	s.Network.VPCName = "main"
	s.DNS.ZoneName = "example.com"
	s.DNS.DomainName = "app.example.com"
	s.Database.SecurityGroupName = "database"
	s.Service.Repository = "app"
	return s
}
