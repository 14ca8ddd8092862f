// internal/common/aws/sns.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	apperrors "voice-demo-generator/internal/common/errors"
)

// SNSService is the subset of the SNS client the notifier uses.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func NewSNSClient(ctx context.Context, region string) (*sns.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return sns.NewFromConfig(cfg), nil
}

// SNSNotifier publishes run summaries to a topic.
type SNSNotifier struct {
	client   SNSService
	topicARN string
}

func NewSNSNotifier(client SNSService, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN}
}

func (n *SNSNotifier) Channel() string { return "sns" }

func (n *SNSNotifier) NotifyRunComplete(ctx context.Context, summary RunSummary) error {
	subject, body := FormatSummary(summary)
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(n.topicARN),
		Subject:  awssdk.String(truncate(subject, 100)),
		Message:  awssdk.String(body),
	})
	if err != nil {
		return apperrors.NewNotificationSendFailedError(n.Channel(), fmt.Errorf("publish to %s: %w", n.topicARN, err))
	}
	return nil
}

// SNS subjects are limited to 100 characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
