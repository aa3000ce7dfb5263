package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecspatterns"
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/Azsael/CdkDemo/internal/cdknet"
	"github.com/Azsael/CdkDemo/internal/config"
)

const patternPrefix = config.BuilderPattern

// buildPattern provisions the service through the managed
// ApplicationLoadBalancedFargateService construct.
func buildPattern(s *shared) awsecspatterns.ApplicationLoadBalancedFargateService {
	svc := s.settings.Service
	net := s.network

	cluster := awsecs.NewCluster(s.stack, jsii.String(PatternCluster), &awsecs.ClusterProps{
		Vpc:               s.vpc,
		ClusterName:       jsii.String(net.ResourceName(PatternCluster)),
		ContainerInsights: jsii.Bool(true),
	})

	securityGroup := s.serviceSecurityGroup(patternPrefix)

	service := awsecspatterns.NewApplicationLoadBalancedFargateService(s.stack, jsii.String(PatternService), &awsecspatterns.ApplicationLoadBalancedFargateServiceProps{
		Cluster:            cluster,
		AssignPublicIp:     jsii.Bool(false),
		PublicLoadBalancer: jsii.Bool(true),
		CircuitBreaker:     &awsecs.DeploymentCircuitBreaker{Rollback: jsii.Bool(true)},
		TaskSubnets:        cdknet.Selection(s.stack, patternPrefix+"-task-subnet", net.PrivateSubnets()),
		TaskImageOptions: &awsecspatterns.ApplicationLoadBalancedTaskImageOptions{
			Image:         s.image(patternPrefix),
			ContainerPort: jsii.Number(float64(svc.ContainerPort)),
			Environment:   s.environment(),
			Secrets:       s.secrets(patternPrefix),
			LogDriver:     s.logDriver(patternPrefix, PatternLogs),
		},
		ServiceName:            jsii.String(net.ResourceName(PatternService)),
		LoadBalancerName:       jsii.String(net.ResourceName(PatternALB)),
		SecurityGroups:         &[]awsec2.ISecurityGroup{securityGroup},
		DomainZone:             s.zone,
		DomainName:             jsii.String(s.domainFor(config.BuilderPattern)),
		Certificate:            s.cert,
		DesiredCount:           jsii.Number(float64(svc.DesiredCount)),
		Cpu:                    jsii.Number(float64(svc.CPU)),
		MemoryLimitMiB:         jsii.Number(float64(svc.MemoryMiB)),
		RedirectHTTP:           jsii.Bool(true),
		Protocol:               awselasticloadbalancingv2.ApplicationProtocol_HTTPS,
		HealthCheckGracePeriod: seconds(svc.HealthCheckGracePeriod),
		IdleTimeout:            seconds(svc.IdleTimeout),
		ProtocolVersion:        awselasticloadbalancingv2.ApplicationProtocolVersion_HTTP2,
	})

	service.TargetGroup().ConfigureHealthCheck(&awselasticloadbalancingv2.HealthCheck{
		Path: jsii.String(svc.HealthCheckPath),
	})

	s.grantParameters(service.TaskDefinition().TaskRole())
	s.alarm(patternPrefix, PatternCPUAlarm, service.Service())
	s.scaling(patternPrefix, service.Service())
	s.outputs(patternPrefix, service.LoadBalancer().LoadBalancerDnsName(), service.Service().ServiceName())

	zap.S().Debugw("built pattern service", "cluster", net.ResourceName(PatternCluster), "service", net.ResourceName(PatternService))
	return service
}
