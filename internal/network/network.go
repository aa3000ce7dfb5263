// Package network holds the per-run network placement and naming contract
// shared by every stack builder.
package network

import "strings"

// Default identifiers used when a run does not name its own.
const (
	DefaultEnvironment = "dev"
	DefaultTenant      = "au"
)

// Delimiter joins the parts of a generated resource name.
const Delimiter = "-"

// Tier classifies a group of subnets by routing and exposure.
type Tier string

const (
	TierPublic   Tier = "public"
	TierPrivate  Tier = "private-with-egress"
	TierIsolated Tier = "isolated"
)

// Handle is a reference to a provider-side network object.
type Handle interface {
	// ID returns the identifier the provider knows the object by
	ID() string
}

// ID is a Handle backed by a plain identifier such as "vpc-0abc" or "subnet-0abc".
type ID string

// ID implements Handle
func (id ID) ID() string { return string(id) }

// SubnetSelection is a named, ordered group of subnets.
type SubnetSelection struct {
	Tier    Tier
	Subnets []Handle
}

// IDs returns the subnet identifiers in selection order
func (s *SubnetSelection) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.Subnets))
	for _, h := range s.Subnets {
		ids = append(ids, h.ID())
	}
	return ids
}

// Len returns the number of subnets in the selection
func (s *SubnetSelection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Subnets)
}

// Defaults supplies the identifiers used when none are given at construction.
type Defaults struct {
	Environment string
	Tenant      string
}

// StandardDefaults returns the built-in fallback identifiers.
func StandardDefaults() Defaults {
	return Defaults{Environment: DefaultEnvironment, Tenant: DefaultTenant}
}

// Context bundles the network a provisioning run deploys into with the
// environment and tenant its resources are named after. A Context is not
// modified after New returns and may be shared between goroutines.
type Context struct {
	vpc         Handle
	public      *SubnetSelection
	private     *SubnetSelection
	isolated    *SubnetSelection
	environment string
	tenant      string
}

// Option customizes a Context at construction.
type Option func(*options)

type options struct {
	defaults    Defaults
	public      *SubnetSelection
	private     *SubnetSelection
	isolated    *SubnetSelection
	environment *string
	tenant      *string
}

// WithPublicSubnets sets the public subnet selection
func WithPublicSubnets(sel *SubnetSelection) Option {
	return func(o *options) { o.public = sel }
}

// WithPrivateSubnets sets the private-with-egress subnet selection
func WithPrivateSubnets(sel *SubnetSelection) Option {
	return func(o *options) { o.private = sel }
}

// WithIsolatedSubnets sets the isolated subnet selection
func WithIsolatedSubnets(sel *SubnetSelection) Option {
	return func(o *options) { o.isolated = sel }
}

// WithEnvironment sets the environment identifier. An empty value falls back
// to the defaults.
func WithEnvironment(env string) Option {
	return func(o *options) {
		if env != "" {
			o.environment = &env
		}
	}
}

// WithTenant sets the tenant identifier. An empty value falls back to the
// defaults.
func WithTenant(tenant string) Option {
	return func(o *options) {
		if tenant != "" {
			o.tenant = &tenant
		}
	}
}

// WithDefaults replaces the fallback identifiers.
func WithDefaults(d Defaults) Option {
	return func(o *options) { o.defaults = d }
}

// New builds a Context around an already resolved VPC handle.
func New(vpc Handle, opts ...Option) *Context {
	o := options{defaults: StandardDefaults()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Context{
		vpc:         vpc,
		public:      copySelection(o.public),
		private:     copySelection(o.private),
		isolated:    copySelection(o.isolated),
		environment: o.defaults.Environment,
		tenant:      o.defaults.Tenant,
	}
	if o.environment != nil {
		c.environment = *o.environment
	}
	if o.tenant != nil {
		c.tenant = *o.tenant
	}
	return c
}

// copySelection detaches the selection from the caller's slice so later
// edits by the caller cannot reach the Context.
func copySelection(sel *SubnetSelection) *SubnetSelection {
	if sel == nil {
		return nil
	}
	subnets := make([]Handle, len(sel.Subnets))
	copy(subnets, sel.Subnets)
	return &SubnetSelection{Tier: sel.Tier, Subnets: subnets}
}

// ResourceName returns "{environment}-{tenant}-{base}". The base is used
// verbatim: no trimming, case folding or length limits are applied.
func (c *Context) ResourceName(base string) string {
	return strings.Join([]string{c.environment, c.tenant, base}, Delimiter)
}

// VPC returns the network handle
func (c *Context) VPC() Handle { return c.vpc }

// PublicSubnets returns the public selection, or nil if the run has none
func (c *Context) PublicSubnets() *SubnetSelection { return copySelection(c.public) }

// PrivateSubnets returns the private-with-egress selection, or nil
func (c *Context) PrivateSubnets() *SubnetSelection { return copySelection(c.private) }

// IsolatedSubnets returns the isolated selection, or nil
func (c *Context) IsolatedSubnets() *SubnetSelection { return copySelection(c.isolated) }

// Subnets returns the selection for the given tier, or nil
func (c *Context) Subnets(tier Tier) *SubnetSelection {
	switch tier {
	case TierPublic:
		return c.PublicSubnets()
	case TierPrivate:
		return c.PrivateSubnets()
	case TierIsolated:
		return c.IsolatedSubnets()
	}
	return nil
}

// Environment returns the environment identifier
func (c *Context) Environment() string { return c.environment }

// Tenant returns the tenant identifier
func (c *Context) Tenant() string { return c.tenant }

// Tags returns the identifiers as resource tags
func (c *Context) Tags() map[string]string {
	return map[string]string{
		"environment": c.environment,
		"tenant":      c.tenant,
	}
}

// ParameterPath returns the SSM parameter path owned by this run,
// "/{environment}/{tenant}/".
func (c *Context) ParameterPath() string {
	return "/" + c.environment + "/" + c.tenant + "/"
}
