package system

import (
	"errors"
	"fmt"
)

// ErrUnavailableMetric is matched by every failure to read an OS counter.
var ErrUnavailableMetric = errors.New("metric unavailable")

type UnavailableMetricError struct {
	Metric string
	Err    error
}

func (e *UnavailableMetricError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Metric, e.Err)
}

func (e *UnavailableMetricError) Unwrap() error {
	return e.Err
}

func (e *UnavailableMetricError) Is(target error) bool {
	return target == ErrUnavailableMetric
}

func unavailable(metric string, err error) error {
	return &UnavailableMetricError{Metric: metric, Err: err}
}
