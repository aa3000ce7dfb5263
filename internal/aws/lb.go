package aws

import (
	"context"
	"errors"
	"fmt"

	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbv2types "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"

	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

// GetLoadBalancerByName returns a load balancer by name. A load balancer
// that has not been deployed yet yields ErrNotFound.
func (c *Client) GetLoadBalancerByName(ctx context.Context, name string) (*pkgtypes.LoadBalancer, error) {
	output, err := c.ELBv2.DescribeLoadBalancers(ctx, &elbv2.DescribeLoadBalancersInput{
		Names: []string{name},
	})
	if err != nil {
		var notFound *elbv2types.LoadBalancerNotFoundException
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("load balancer %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to describe load balancer: %w", err)
	}

	if len(output.LoadBalancers) == 0 {
		return nil, fmt.Errorf("load balancer %s: %w", name, ErrNotFound)
	}

	lb := toLoadBalancer(output.LoadBalancers[0])
	return &lb, nil
}

// ListListeners returns all listeners for a load balancer
func (c *Client) ListListeners(ctx context.Context, lbARN string) ([]pkgtypes.Listener, error) {
	output, err := c.ELBv2.DescribeListeners(ctx, &elbv2.DescribeListenersInput{
		LoadBalancerArn: &lbARN,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe listeners: %w", err)
	}

	var listeners []pkgtypes.Listener
	for _, l := range output.Listeners {
		listeners = append(listeners, pkgtypes.Listener{
			ARN:      deref(l.ListenerArn),
			Port:     int(derefInt32(l.Port)),
			Protocol: string(l.Protocol),
			Certs:    len(l.Certificates),
		})
	}

	return listeners, nil
}

// ListTargetGroups returns the target groups attached to a load balancer
func (c *Client) ListTargetGroups(ctx context.Context, lbARN string) ([]pkgtypes.TargetGroup, error) {
	output, err := c.ELBv2.DescribeTargetGroups(ctx, &elbv2.DescribeTargetGroupsInput{
		LoadBalancerArn: &lbARN,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe target groups: %w", err)
	}

	var tgs []pkgtypes.TargetGroup
	for _, tg := range output.TargetGroups {
		tgs = append(tgs, pkgtypes.TargetGroup{
			Name:            deref(tg.TargetGroupName),
			ARN:             deref(tg.TargetGroupArn),
			Protocol:        string(tg.Protocol),
			Port:            int(derefInt32(tg.Port)),
			VPCID:           deref(tg.VpcId),
			Type:            string(tg.TargetType),
			HealthCheckPath: deref(tg.HealthCheckPath),
			LBARN:           lbARN,
		})
	}

	return tgs, nil
}

// ListTargets returns all targets in a target group with their health status
func (c *Client) ListTargets(ctx context.Context, tgARN string) ([]pkgtypes.Target, error) {
	output, err := c.ELBv2.DescribeTargetHealth(ctx, &elbv2.DescribeTargetHealthInput{
		TargetGroupArn: &tgARN,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe target health: %w", err)
	}

	var targets []pkgtypes.Target
	for _, thd := range output.TargetHealthDescriptions {
		targets = append(targets, toTarget(thd))
	}

	return targets, nil
}

// toLoadBalancer converts an ELBv2 LoadBalancer to our LoadBalancer type
func toLoadBalancer(lb elbv2types.LoadBalancer) pkgtypes.LoadBalancer {
	result := pkgtypes.LoadBalancer{
		Name:          deref(lb.LoadBalancerName),
		ARN:           deref(lb.LoadBalancerArn),
		DNSName:       deref(lb.DNSName),
		Type:          string(lb.Type),
		Scheme:        string(lb.Scheme),
		IPAddressType: string(lb.IpAddressType),
		VPCID:         deref(lb.VpcId),
	}

	if lb.State != nil {
		result.State = string(lb.State.Code)
	}

	if lb.CreatedTime != nil {
		result.CreatedAt = *lb.CreatedTime
	}

	for _, az := range lb.AvailabilityZones {
		if az.ZoneName != nil {
			result.AZs = append(result.AZs, *az.ZoneName)
		}
	}

	return result
}

// toTarget converts an ELBv2 TargetHealthDescription to our Target type
func toTarget(thd elbv2types.TargetHealthDescription) pkgtypes.Target {
	target := pkgtypes.Target{}

	if thd.Target != nil {
		target.ID = deref(thd.Target.Id)
		target.Port = int(derefInt32(thd.Target.Port))
		target.AZ = deref(thd.Target.AvailabilityZone)
	}

	if thd.TargetHealth != nil {
		target.Health = string(thd.TargetHealth.State)
		target.Reason = string(thd.TargetHealth.Reason)
	}

	return target
}
