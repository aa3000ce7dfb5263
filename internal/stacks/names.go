package stacks

import (
	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/network"
)

// Base names passed to network.Context.ResourceName
const (
	PatternCluster  = "pattern-cluster"
	PatternService  = "pattern-service"
	PatternALB      = "pattern-alb"
	PatternLogs     = "pattern-logs"
	PatternCPUAlarm = "pattern-cpu-alarm"

	RawCluster     = "raw-cluster"
	RawTask        = "raw-task"
	RawService     = "raw-service"
	RawALB         = "raw-alb"
	RawTargetGroup = "raw-tg"
	RawLogs        = "raw-logs"
	RawCPUAlarm    = "raw-cpu-alarm"
)

// NamedResource is one physical name a run assigns
type NamedResource struct {
	Builder string
	Kind    string
	Base    string
	Name    string
}

var namePlan = []struct {
	builder string
	kind    string
	base    string
}{
	{config.BuilderPattern, "ecs cluster", PatternCluster},
	{config.BuilderPattern, "ecs service", PatternService},
	{config.BuilderPattern, "load balancer", PatternALB},
	{config.BuilderPattern, "log group", PatternLogs},
	{config.BuilderPattern, "cpu alarm", PatternCPUAlarm},
	{config.BuilderRaw, "ecs cluster", RawCluster},
	{config.BuilderRaw, "task family", RawTask},
	{config.BuilderRaw, "ecs service", RawService},
	{config.BuilderRaw, "load balancer", RawALB},
	{config.BuilderRaw, "target group", RawTargetGroup},
	{config.BuilderRaw, "log group", RawLogs},
	{config.BuilderRaw, "cpu alarm", RawCPUAlarm},
}

// Names returns every name the builders assign under ctx, in build order
func Names(ctx *network.Context) []NamedResource {
	out := make([]NamedResource, 0, len(namePlan))
	for _, p := range namePlan {
		out = append(out, NamedResource{
			Builder: p.builder,
			Kind:    p.kind,
			Base:    p.base,
			Name:    ctx.ResourceName(p.base),
		})
	}
	return out
}

// NamesFor returns the subset of Names produced by the given builders
func NamesFor(ctx *network.Context, builders []string) []NamedResource {
	enabled := make(map[string]bool, len(builders))
	for _, b := range builders {
		enabled[b] = true
	}

	var out []NamedResource
	for _, n := range Names(ctx) {
		if enabled[n.Builder] {
			out = append(out, n)
		}
	}
	return out
}

