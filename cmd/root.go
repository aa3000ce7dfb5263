package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Azsael/CdkDemo/internal/aws"
	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/logging"
)

var (
	// Global flags
	cfgFile string
	verbose  bool
	jsonLog  bool
	logColor string

	v *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "cdkdemo",
	Short: "CdkDemo - load-balanced Fargate service on AWS CDK",
	Long: `CdkDemo provisions a container service behind an HTTPS load balancer into an
existing VPC, once through the ECS pattern construct and once from individual
constructs. Every resource is named after the environment and tenant.

Commands:
  cdkdemo config init          # Write a cdkdemo.yaml template
  cdkdemo preflight            # Verify the VPC, subnets, database group and secrets
  cdkdemo network              # Show the VPC and the subnets used per tier
  cdkdemo names                # Show every resource name a deploy will use
  cdkdemo synth                # Synthesize the CloudFormation template
  cdkdemo status               # Show the deployed load balancers and target health
  cdkdemo params               # List the parameters the tasks may read

With the CDK CLI:
  cdk deploy -c environment=prod -c tenant=nz   # cdk.json runs "go run . synth"`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logOpts := logging.LogOpts{Verbose: verbose, Color: logColor}
		if jsonLog {
			logOpts.Encoding = "json"
		}
		zap.ReplaceGlobals(logOpts.NewLogger())

		v = config.NewViper(cfgFile)
		for _, name := range []string{"profile", "region", "environment", "tenant"} {
			if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		zap.L().Sync() //nolint:errcheck
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Config file (default ./"+config.DefaultFileName+")")
	flags.StringP("profile", "p", "", "AWS profile to use")
	flags.StringP("region", "r", "", "AWS region to use")
	flags.StringP("environment", "e", "", "Environment resources are named after (default dev)")
	flags.StringP("tenant", "t", "", "Tenant resources are named after (default au)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&jsonLog, "json-log", false, "Enable JSON logging")
	flags.StringVar(&logColor, "color", "auto", "Colorize log output: auto, always or never")
}

// loadSettings merges defaults, the config file, CDKDEMO_ variables and flags
func loadSettings() (*config.Settings, error) {
	if v == nil {
		v = config.NewViper(cfgFile)
	}
	settings, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if f := v.ConfigFileUsed(); f != "" {
		zap.S().Debugw("loaded config", "file", f)
	}
	return settings, nil
}

// newClient creates an AWS client for the profile and region in settings
var newClient = func(ctx context.Context, settings *config.Settings) (*aws.Client, error) {
	return aws.NewClient(ctx, aws.WithProfile(settings.Profile), aws.WithRegion(settings.Region))
}
