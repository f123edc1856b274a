package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

var newSSMClient = func(ctx context.Context) (ssm.GetParametersByPathAPIClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return ssm.NewFromConfig(cfg), nil
}

// LoadSSMParameters fills env with the parameters stored under the
// SSM_PARAMETER_PATH prefix, e.g. /portfolio/prod/SUPABASE_DB_KEY becomes
// SUPABASE_DB_KEY. Variables already set in the environment win. It is a no-op
// when SSM_PARAMETER_PATH is unset.
func LoadSSMParameters(ctx context.Context, env map[string]string) error {
	prefix := GetString(env, "SSM_PARAMETER_PATH", "")
	if prefix == "" {
		return nil
	}

	client, err := newSSMClient(ctx)
	if err != nil {
		return fmt.Errorf("creating ssm client: %w", err)
	}
	return overlaySSMParameters(ctx, client, prefix, env)
}

func overlaySSMParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, prefix string, env map[string]string) error {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("reading ssm parameters under %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			key := strings.ToUpper(path.Base(aws.ToString(p.Name)))
			if key == "" || key == "." || key == "/" {
				continue
			}
			if v, ok := env[key]; ok && v != "" {
				continue
			}
			env[key] = aws.ToString(p.Value)
			loaded++
		}
	}

	log.Info().Str("path", prefix).Int("loaded", loaded).Msg("Loaded SSM parameters")
	return nil
}
