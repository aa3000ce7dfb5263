package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/stacks"
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Synthesize the CloudFormation template",
	Long: `Build the CDK app from the settings and write the cloud assembly.

The stack account comes from the settings, then CDK_DEFAULT_ACCOUNT, then the
caller identity. The region comes from the settings, then CDK_DEFAULT_REGION,
then the AWS profile. The CDK CLI runs this command through cdk.json, and
the environment and tenant context values ("cdk synth -c environment=prod")
take precedence over the config file and flags.

Examples:
  cdkdemo synth                         # Write ./cdk.out
  cdkdemo synth -e prod -t nz           # Name resources prod-nz-*
  cdkdemo synth --resolve-secrets       # Import secrets by their full ARN`,
	RunE: runSynth,
}

var (
	synthOut            string
	synthResolveSecrets bool
)

func init() {
	rootCmd.AddCommand(synthCmd)

	synthCmd.Flags().StringVarP(&synthOut, "out", "o", "", "Cloud assembly directory (default $CDK_OUTDIR or cdk.out)")
	synthCmd.Flags().BoolVar(&synthResolveSecrets, "resolve-secrets", false, "Look up each Secrets Manager secret's full ARN before synthesizing")
}

func runSynth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := resolveEnvironment(ctx, settings); err != nil {
		return err
	}

	outdir := synthOut
	if outdir == "" && os.Getenv("CDK_OUTDIR") == "" {
		outdir = "cdk.out"
	}

	defer jsii.Close()

	appProps := &awscdk.AppProps{}
	if outdir != "" {
		appProps.Outdir = jsii.String(outdir)
	}
	app := awscdk.NewApp(appProps)
	applyContext(app, settings)

	_, err = stacks.NewServiceStack(app, settings.StackName, &stacks.ServiceStackProps{
		StackProps: awscdk.StackProps{
			Env: &awscdk.Environment{
				Account: jsii.String(settings.Account),
				Region:  jsii.String(settings.Region),
			},
			Description: jsii.String(fmt.Sprintf("Fargate service for %s-%s", settings.Environment, settings.Tenant)),
		},
		Settings: settings,
	})
	if err != nil {
		return err
	}

	assembly := app.Synth(nil)
	fmt.Fprintf(cmd.OutOrStdout(), "Synthesized %s to %s\n", settings.StackName, *assembly.Directory())
	return nil
}

// applyContext lets "cdk deploy -c environment=prod -c tenant=nz" choose the
// names. Context values override the config file, variables and flags.
func applyContext(app awscdk.App, settings *config.Settings) {
	for key, field := range map[string]*string{
		"environment": &settings.Environment,
		"tenant":      &settings.Tenant,
	} {
		value, ok := app.Node().TryGetContext(jsii.String(key)).(string)
		if !ok || value == "" {
			continue
		}
		zap.S().Debugw("using context value", "key", key, "value", value)
		*field = value
	}
}

// resolveEnvironment fills in the account and region the stack deploys to,
// and the ARN of each Secrets Manager secret when requested. The AWS API is
// only called when something is still missing.
func resolveEnvironment(ctx context.Context, settings *config.Settings) error {
	if settings.Account == "" {
		settings.Account = os.Getenv("CDK_DEFAULT_ACCOUNT")
	}
	if settings.Region == "" {
		settings.Region = os.Getenv("CDK_DEFAULT_REGION")
	}
	if settings.Account != "" && settings.Region != "" && !synthResolveSecrets {
		return nil
	}

	client, err := newClient(ctx, settings)
	if err != nil {
		return err
	}
	if settings.Region == "" {
		settings.Region = client.Region()
	}
	if settings.Region == "" {
		return fmt.Errorf("no region: set region in %s, --region or CDK_DEFAULT_REGION", config.DefaultFileName)
	}
	if settings.Account == "" {
		identity, err := client.GetCallerIdentity(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve account: %w", err)
		}
		settings.Account = identity.Account
	}
	zap.S().Debugw("resolved stack environment", "account", settings.Account, "region", settings.Region)

	if !synthResolveSecrets {
		return nil
	}
	for i, ref := range settings.Service.Secrets {
		if ref.Source != config.SourceSecretsManager || ref.ARN != "" {
			continue
		}
		secret, err := client.ResolveSecret(ctx, ref.ID)
		if err != nil {
			return fmt.Errorf("failed to resolve secret %s: %w", ref.Name, err)
		}
		settings.Service.Secrets[i].ARN = secret.ARN
		zap.S().Debugw("resolved secret", "name", ref.Name, "arn", secret.ARN)
	}
	return nil
}
