package aws

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"

	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

// ResolveSecret looks up a Secrets Manager secret by name or ARN and
// returns its full ARN. The secret value is never read.
func (c *Client) ResolveSecret(ctx context.Context, nameOrARN string) (*pkgtypes.ResolvedSecret, error) {
	output, err := c.SecretsManager.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: &nameOrARN,
	})
	if err != nil {
		var notFound *smtypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("secret %s: %w", nameOrARN, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to describe secret: %w", err)
	}

	return &pkgtypes.ResolvedSecret{
		Name: deref(output.Name),
		ARN:  deref(output.ARN),
	}, nil
}

// ResolveParameter looks up an SSM parameter and returns its ARN and
// version. SecureString values are not decrypted.
func (c *Client) ResolveParameter(ctx context.Context, name string) (*pkgtypes.ResolvedSecret, error) {
	output, err := c.SSM.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: boolPtr(false),
	})
	if err != nil {
		var notFound *ssmtypes.ParameterNotFound
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("parameter %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get SSM parameter: %w", err)
	}

	if output.Parameter == nil {
		return nil, fmt.Errorf("parameter %s: %w", name, ErrNotFound)
	}

	return &pkgtypes.ResolvedSecret{
		Name:    deref(output.Parameter.Name),
		ARN:     deref(output.Parameter.ARN),
		Version: output.Parameter.Version,
	}, nil
}

// ListParameters returns the metadata of every parameter below path,
// recursively, sorted by name
func (c *Client) ListParameters(ctx context.Context, path string) ([]pkgtypes.Parameter, error) {
	paginator := ssm.NewGetParametersByPathPaginator(c.SSM, &ssm.GetParametersByPathInput{
		Path:           &path,
		Recursive:      boolPtr(true),
		WithDecryption: boolPtr(false),
	})

	var params []pkgtypes.Parameter
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list SSM parameters: %w", err)
		}
		for _, p := range page.Parameters {
			param := pkgtypes.Parameter{
				Name:    deref(p.Name),
				ARN:     deref(p.ARN),
				Type:    string(p.Type),
				Version: p.Version,
			}
			if p.LastModifiedDate != nil {
				param.LastModified = *p.LastModifiedDate
			}
			params = append(params, param)
		}
	}

	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	return params, nil
}

func boolPtr(b bool) *bool { return &b }
