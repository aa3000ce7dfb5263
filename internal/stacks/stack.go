// Package stacks defines the CDK stack that provisions the load-balanced
// Fargate service, once through the ECS pattern construct and once from
// primitives, with every physical name taken from a network.Context.
package stacks

import (
	"fmt"
	"sort"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"go.uber.org/zap"

	"github.com/Azsael/CdkDemo/internal/cdknet"
	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/network"
)

// NetworkResolver produces the network.Context for a stack. It runs inside
// the stack so CDK lookups are scoped to it.
type NetworkResolver func(scope constructs.Construct) (*network.Context, error)

// ServiceStackProps configures NewServiceStack
type ServiceStackProps struct {
	awscdk.StackProps

	Settings *config.Settings
	// Network defaults to LookupNetwork(Settings)
	Network NetworkResolver
}

// LookupNetwork resolves the configured VPC through the CDK context provider
func LookupNetwork(settings *config.Settings) NetworkResolver {
	return func(scope constructs.Construct) (*network.Context, error) {
		return cdknet.Lookup(scope, settings.Network, settings.Environment, settings.Tenant)
	}
}

// NewServiceStack validates the settings, resolves the network and runs each
// enabled builder inside a new stack.
func NewServiceStack(scope constructs.Construct, id string, props *ServiceStackProps) (awscdk.Stack, error) {
	if props == nil || props.Settings == nil {
		return nil, fmt.Errorf("stack %s: no settings", id)
	}
	settings := props.Settings
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	resolve := props.Network
	if resolve == nil {
		resolve = LookupNetwork(settings)
	}

	sprops := props.StackProps
	stack := awscdk.NewStack(scope, &id, &sprops)

	netctx, err := resolve(stack)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network: %w", err)
	}

	tags := netctx.Tags()
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		awscdk.Tags_Of(stack).Add(jsii.String(k), jsii.String(tags[k]), nil)
	}

	s, err := newShared(stack, settings, netctx)
	if err != nil {
		return nil, err
	}

	log := zap.S().With("stack", id, "environment", netctx.Environment(), "tenant", netctx.Tenant())
	for _, b := range settings.Service.Builders {
		switch b {
		case config.BuilderPattern:
			buildPattern(s)
		case config.BuilderRaw:
			buildRaw(s)
		}
		log.Infow("added builder", "builder", b)
	}

	return stack, nil
}
