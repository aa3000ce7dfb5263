package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	elbv2 "github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/Azsael/CdkDemo/internal/cdknet"
	"github.com/Azsael/CdkDemo/internal/config"
)

const rawPrefix = config.BuilderRaw

// buildRaw assembles the same service shape from individual constructs:
// cluster, task definition, service, load balancer, listeners and DNS.
func buildRaw(s *shared) awsecs.FargateService {
	svc := s.settings.Service
	net := s.network

	cluster := awsecs.NewCluster(s.stack, jsii.String(RawCluster), &awsecs.ClusterProps{
		Vpc:               s.vpc,
		ClusterName:       jsii.String(net.ResourceName(RawCluster)),
		ContainerInsights: jsii.Bool(true),
	})

	taskDef := awsecs.NewFargateTaskDefinition(s.stack, jsii.String(RawTask), &awsecs.FargateTaskDefinitionProps{
		Family:         jsii.String(net.ResourceName(RawTask)),
		Cpu:            jsii.Number(float64(svc.CPU)),
		MemoryLimitMiB: jsii.Number(float64(svc.MemoryMiB)),
	})
	taskDef.AddContainer(jsii.String("container"), &awsecs.ContainerDefinitionOptions{
		Image:       s.image(rawPrefix),
		Essential:   jsii.Bool(true),
		Environment: s.environment(),
		Secrets:     s.secrets(rawPrefix),
		Logging:     s.logDriver(rawPrefix, RawLogs),
		PortMappings: &[]*awsecs.PortMapping{{
			ContainerPort: jsii.Number(float64(svc.ContainerPort)),
			Protocol:      awsecs.Protocol_TCP,
		}},
	})
	s.grantParameters(taskDef.TaskRole())

	securityGroup := s.serviceSecurityGroup(rawPrefix)

	service := awsecs.NewFargateService(s.stack, jsii.String(RawService), &awsecs.FargateServiceProps{
		Cluster:                cluster,
		TaskDefinition:         taskDef,
		ServiceName:            jsii.String(net.ResourceName(RawService)),
		DesiredCount:           jsii.Number(float64(svc.DesiredCount)),
		AssignPublicIp:         jsii.Bool(false),
		VpcSubnets:             cdknet.Selection(s.stack, rawPrefix+"-task-subnet", net.PrivateSubnets()),
		SecurityGroups:         &[]awsec2.ISecurityGroup{securityGroup},
		CircuitBreaker:         &awsecs.DeploymentCircuitBreaker{Rollback: jsii.Bool(true)},
		HealthCheckGracePeriod: seconds(svc.HealthCheckGracePeriod),
	})

	loadBalancer := elbv2.NewApplicationLoadBalancer(s.stack, jsii.String(RawALB), &elbv2.ApplicationLoadBalancerProps{
		Vpc:              s.vpc,
		VpcSubnets:       cdknet.Selection(s.stack, rawPrefix+"-alb-subnet", net.PublicSubnets()),
		LoadBalancerName: jsii.String(net.ResourceName(RawALB)),
		InternetFacing:   jsii.Bool(true),
		IpAddressType:    elbv2.IpAddressType_DUAL_STACK,
		Http2Enabled:     jsii.Bool(true),
		IdleTimeout:      seconds(svc.IdleTimeout),
	})

	loadBalancer.AddRedirect(&elbv2.ApplicationLoadBalancerRedirectConfig{
		SourceProtocol: elbv2.ApplicationProtocol_HTTP,
		TargetProtocol: elbv2.ApplicationProtocol_HTTPS,
	})

	listener := loadBalancer.AddListener(jsii.String(rawPrefix+"-https"), &elbv2.BaseApplicationListenerProps{
		Protocol:     elbv2.ApplicationProtocol_HTTPS,
		Certificates: &[]elbv2.IListenerCertificate{elbv2.ListenerCertificate_FromCertificateManager(s.cert)},
	})

	listener.AddTargets(jsii.String(rawPrefix+"-targets"), &elbv2.AddApplicationTargetsProps{
		TargetGroupName: jsii.String(net.ResourceName(RawTargetGroup)),
		Port:            jsii.Number(float64(svc.ContainerPort)),
		Protocol:        elbv2.ApplicationProtocol_HTTP,
		Targets:         &[]elbv2.IApplicationLoadBalancerTarget{service},
		HealthCheck: &elbv2.HealthCheck{
			Path:             jsii.String(svc.HealthCheckPath),
			HealthyHttpCodes: jsii.String("200-399"),
		},
	})

	rawRecord(s, loadBalancer)

	s.alarm(rawPrefix, RawCPUAlarm, service)
	s.scaling(rawPrefix, service)
	s.outputs(rawPrefix, loadBalancer.LoadBalancerDnsName(), service.ServiceName())

	zap.S().Debugw("built raw service", "cluster", net.ResourceName(RawCluster), "service", net.ResourceName(RawService))
	return service
}

// rawRecord points the raw domain at the load balancer. A CNAME cannot sit at
// the zone apex, so an apex domain gets an alias A record instead.
func rawRecord(s *shared, loadBalancer elbv2.IApplicationLoadBalancer) {
	domain := s.domainFor(config.BuilderRaw)
	if config.IsZoneApex(domain, s.settings.DNS.ZoneName) {
		awsroute53.NewARecord(s.stack, jsii.String(rawPrefix+"-dns"), &awsroute53.ARecordProps{
			Zone:       s.zone,
			RecordName: jsii.String(domain),
			Target:     awsroute53.RecordTarget_FromAlias(awsroute53targets.NewLoadBalancerTarget(loadBalancer)),
		})
		return
	}
	awsroute53.NewCnameRecord(s.stack, jsii.String(rawPrefix+"-dns"), &awsroute53.CnameRecordProps{
		Zone:       s.zone,
		RecordName: jsii.String(domain),
		DomainName: loadBalancer.LoadBalancerDnsName(),
	})
}
