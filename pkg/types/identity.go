package types

// CallerIdentity is the AWS principal a run executes as
type CallerIdentity struct {
	Account string
	Arn     string
	UserID  string
}

// ResolvedSecret is a secret or parameter found in the target account
type ResolvedSecret struct {
	Name    string
	ARN     string
	Version int64 // SSM parameters only
}

// AWSProfile is a named profile from the shared config or credentials file
type AWSProfile struct {
	Name   string
	Region string // region = ..., when the profile sets one
	Source string // credentials or config
}
