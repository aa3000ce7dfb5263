package types

import "time"

// Parameter is SSM Parameter Store metadata. Values are never read.
type Parameter struct {
	Name         string    `json:"name"`
	ARN          string    `json:"arn"`
	Type         string    `json:"type"` // String, StringList, SecureString
	Version      int64     `json:"version"`
	LastModified time.Time `json:"last_modified"`
}
