package stacks

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapplicationautoscaling"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecr"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/jsii-runtime-go"

	"github.com/Azsael/CdkDemo/internal/cdknet"
	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/network"
)

// shared holds the resources both builders attach to: the hosted zone, the
// certificate and the existing database security group.
type shared struct {
	stack    awscdk.Stack
	settings *config.Settings
	network  *network.Context
	vpc      awsec2.IVpc

	zone     awsroute53.IHostedZone
	cert     awscertificatemanager.ICertificate
	database awsec2.ISecurityGroup
}

func newShared(stack awscdk.Stack, settings *config.Settings, netctx *network.Context) (*shared, error) {
	vpc, err := cdknet.Unwrap(netctx)
	if err != nil {
		return nil, err
	}

	s := &shared{
		stack:    stack,
		settings: settings,
		network:  netctx,
		vpc:      vpc,
	}
	s.zone = s.hostedZone()
	s.cert = s.certificate()
	s.database = s.databaseSecurityGroup()
	return s, nil
}

func (s *shared) hostedZone() awsroute53.IHostedZone {
	dns := s.settings.DNS
	if dns.ZoneID != "" {
		return awsroute53.HostedZone_FromHostedZoneAttributes(s.stack, jsii.String("zone"), &awsroute53.HostedZoneAttributes{
			HostedZoneId: jsii.String(dns.ZoneID),
			ZoneName:     jsii.String(dns.ZoneName),
		})
	}
	return awsroute53.NewHostedZone(s.stack, jsii.String("zone"), &awsroute53.HostedZoneProps{
		ZoneName: jsii.String(dns.ZoneName),
	})
}

func (s *shared) certificate() awscertificatemanager.ICertificate {
	props := &awscertificatemanager.CertificateProps{
		DomainName: jsii.String(s.settings.DNS.DomainName),
		Validation: awscertificatemanager.CertificateValidation_FromDns(s.zone),
	}

	var sans []*string
	for _, b := range s.settings.Service.Builders {
		if domain := s.domainFor(b); domain != s.settings.DNS.DomainName {
			sans = append(sans, jsii.String(domain))
		}
	}
	if len(sans) > 0 {
		props.SubjectAlternativeNames = &sans
	}

	return awscertificatemanager.NewCertificate(s.stack, jsii.String("cert"), props)
}

// domainFor returns the record a builder's load balancer answers on. The
// pattern builder owns the configured domain; the raw builder takes it only
// when it runs alone and otherwise answers on "raw.{domain}".
func (s *shared) domainFor(builder string) string {
	domain := s.settings.DNS.DomainName
	if builder == config.BuilderRaw && s.settings.HasBuilder(config.BuilderPattern) {
		return config.BuilderRaw + "." + domain
	}
	return domain
}

func (s *shared) databaseSecurityGroup() awsec2.ISecurityGroup {
	db := s.settings.Database
	if db.SecurityGroupID != "" {
		return awsec2.SecurityGroup_FromSecurityGroupId(s.stack, jsii.String("db-security"), jsii.String(db.SecurityGroupID), &awsec2.SecurityGroupImportOptions{
			Mutable: jsii.Bool(true),
		})
	}
	return awsec2.SecurityGroup_FromLookupByName(s.stack, jsii.String("db-security"), jsii.String(db.SecurityGroupName), s.vpc)
}

// serviceSecurityGroup creates the task security group. Egress is limited to
// HTTPS (image pulls, secrets) and every TCP port on the database group; the
// database group admits the tasks on the database port.
func (s *shared) serviceSecurityGroup(prefix string) awsec2.SecurityGroup {
	sg := awsec2.NewSecurityGroup(s.stack, jsii.String(prefix+"-security"), &awsec2.SecurityGroupProps{
		Vpc:              s.vpc,
		Description:      jsii.String(fmt.Sprintf("%s tasks", s.network.ResourceName(prefix))),
		AllowAllOutbound: jsii.Bool(false),
	})

	sg.AddEgressRule(awsec2.Peer_AnyIpv4(), awsec2.Port_Tcp(jsii.Number(443)), jsii.String("HTTPS"), nil)
	sg.AddEgressRule(s.database, awsec2.Port_AllTcp(), jsii.String("database"), nil)
	s.database.AddIngressRule(sg, awsec2.Port_Tcp(jsii.Number(float64(s.settings.Database.Port))), jsii.String(s.network.ResourceName(prefix)), nil)

	return sg
}

func (s *shared) image(prefix string) awsecs.ContainerImage {
	repo := awsecr.Repository_FromRepositoryName(s.stack, jsii.String(prefix+"-repo"), jsii.String(s.settings.Service.Repository))
	return awsecs.ContainerImage_FromEcrRepository(repo, jsii.String(s.settings.Service.Tag))
}

func (s *shared) environment() *map[string]*string {
	env := make(map[string]*string, len(s.settings.Service.Environment))
	for _, e := range s.settings.Service.Environment {
		env[e.Name] = jsii.String(e.Value)
	}
	return &env
}

// secrets maps container variables onto Secrets Manager secrets or SSM
// SecureString parameters. Returns nil when none are configured.
func (s *shared) secrets(prefix string) *map[string]awsecs.Secret {
	refs := s.settings.Service.Secrets
	if len(refs) == 0 {
		return nil
	}

	out := make(map[string]awsecs.Secret, len(refs))
	for i, ref := range refs {
		id := jsii.String(fmt.Sprintf("%s-secret-%d", prefix, i))
		switch ref.Source {
		case config.SourceSSM:
			param := awsssm.StringParameter_FromSecureStringParameterAttributes(s.stack, id, &awsssm.SecureStringParameterAttributes{
				ParameterName: jsii.String(ref.ID),
			})
			out[ref.Name] = awsecs.Secret_FromSsmParameter(param)
		default:
			var secret awssecretsmanager.ISecret
			if arn := secretARN(ref); arn != "" {
				secret = awssecretsmanager.Secret_FromSecretCompleteArn(s.stack, id, jsii.String(arn))
			} else {
				secret = awssecretsmanager.Secret_FromSecretNameV2(s.stack, id, jsii.String(ref.ID))
			}
			var field *string
			if ref.Field != "" {
				field = jsii.String(ref.Field)
			}
			out[ref.Name] = awsecs.Secret_FromSecretsManager(secret, field)
		}
	}
	return &out
}

func secretARN(ref config.SecretRef) string {
	if ref.ARN != "" {
		return ref.ARN
	}
	if strings.HasPrefix(ref.ID, "arn:") {
		return ref.ID
	}
	return ""
}

func (s *shared) logDriver(prefix, base string) awsecs.LogDriver {
	group := awslogs.NewLogGroup(s.stack, jsii.String(prefix+"-logs"), &awslogs.LogGroupProps{
		LogGroupName:  jsii.String(s.network.ResourceName(base)),
		Retention:     awslogs.RetentionDays_ONE_MONTH,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})
	return awsecs.LogDrivers_AwsLogs(&awsecs.AwsLogDriverProps{
		LogGroup:     group,
		StreamPrefix: jsii.String(prefix),
	})
}

// grantParameters lets a task role read the run's SSM parameter path
func (s *shared) grantParameters(role awsiam.IRole) {
	path := strings.TrimPrefix(s.network.ParameterPath(), "/")
	role.AddToPrincipalPolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions: jsii.Strings(
			"ssm:GetParameter",
			"ssm:GetParameters",
			"ssm:GetParametersByPath",
		),
		Resources: jsii.Strings(*s.stack.FormatArn(&awscdk.ArnComponents{
			Service:      jsii.String("ssm"),
			Resource:     jsii.String("parameter"),
			ResourceName: jsii.String(path + "*"),
		})),
	}))
}

func (s *shared) alarm(prefix, base string, service awsecs.BaseService) awscloudwatch.Alarm {
	a := s.settings.Alarm
	return service.MetricCpuUtilization(nil).CreateAlarm(s.stack, jsii.String(prefix+"-cpu-alarm"), &awscloudwatch.CreateAlarmOptions{
		AlarmName:         jsii.String(s.network.ResourceName(base)),
		EvaluationPeriods: jsii.Number(float64(a.EvaluationPeriods)),
		Threshold:         jsii.Number(a.CPUThreshold),
		TreatMissingData:  awscloudwatch.TreatMissingData_IGNORE,
	})
}

// scaling lets the task count float between the configured bounds. The
// minimum overrides the service's desired count once scaling is active.
func (s *shared) scaling(prefix string, service awsecs.BaseService) {
	sc := s.settings.Scaling
	count := service.AutoScaleTaskCount(&awsapplicationautoscaling.EnableScalingProps{
		MinCapacity: jsii.Number(float64(sc.MinCapacity)),
		MaxCapacity: jsii.Number(float64(sc.MaxCapacity)),
	})
	count.ScaleOnCpuUtilization(jsii.String(prefix+"-cpu-scaling"), &awsecs.CpuUtilizationScalingProps{
		TargetUtilizationPercent: jsii.Number(float64(sc.TargetCPUPercent)),
	})
}

func (s *shared) outputs(prefix string, dnsName, serviceName *string) {
	awscdk.NewCfnOutput(s.stack, jsii.String(prefix+"-alb-dns"), &awscdk.CfnOutputProps{
		Value:       dnsName,
		Description: jsii.String(prefix + " load balancer DNS name"),
	})
	awscdk.NewCfnOutput(s.stack, jsii.String(prefix+"-service-name"), &awscdk.CfnOutputProps{
		Value:       serviceName,
		Description: jsii.String(prefix + " ECS service name"),
	})
}

func seconds(d time.Duration) awscdk.Duration {
	return awscdk.Duration_Seconds(jsii.Number(d.Seconds()))
}
