package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsRecorder publishes order placement metrics to CloudWatch.
// Emission is best-effort; callers log and move on when it fails.
type MetricsRecorder struct {
	CloudWatch CloudWatchAPI
	Namespace  string
}

// NewMetricsRecorder returns a recorder publishing under the given namespace.
func NewMetricsRecorder(client CloudWatchAPI, namespace string) *MetricsRecorder {
	return &MetricsRecorder{
		CloudWatch: client,
		Namespace:  namespace,
	}
}

// RecordOrderPlaced emits an OrdersPlaced count and an OrderValue datapoint.
func (m *MetricsRecorder) RecordOrderPlaced(ctx context.Context, totalAmount float64) error {
	now := time.Now().UTC()
	one := float64(1)

	input := &cloudwatch.PutMetricDataInput{
		Namespace: &m.Namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("OrdersPlaced"),
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitCount,
				Value:      &one,
			},
			{
				MetricName: awsString("OrderValue"),
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitNone,
				Value:      &totalAmount,
			},
		},
	}

	if _, err := m.CloudWatch.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
