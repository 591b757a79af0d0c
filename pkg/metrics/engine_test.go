package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestEngineMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewEngineMetrics(reg)
	metrics.IncTransition("approve", "ok")
	metrics.IncTransition("pay", "error")
	metrics.IncRuleFire("overdue_exposure")
	metrics.ObserveEvaluation(5 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "payment_transitions_total", "action", "approve"); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected transitions=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "insight_rule_fires_total", "rule", "overdue_exposure"); err != nil {
		t.Fatalf("fetch rule fires: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rule fires=1, got %f", got)
	}

	if mf := findMetricFamily(mfs, "insight_evaluation_duration_seconds"); mf == nil {
		t.Fatal("expected evaluation histogram to be registered")
	} else if mf.GetMetric()[0].GetHistogram().GetSampleCount() != 1 {
		t.Fatalf("expected one observation, got %d", mf.GetMetric()[0].GetHistogram().GetSampleCount())
	}
}

func TestEngineMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewEngineMetrics(nil)
	metrics.IncTransition("approve", "ok")
	metrics.IncRuleFire("overdue_exposure")
	metrics.ObserveEvaluation(time.Millisecond)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q with %s=%s not found", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
