package metrics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Folds every matching sample in the window into one metric using aggType (sum, min, max, avg)
func (registry *Registry) Aggregate(aggType string, name string, namespace []string, start, end time.Time) (result Metric, err error) {
	samples := registry.Search(name, namespace, start, end)
	if len(samples) == 0 {
		err = fmt.Errorf("no metrics named '%s' under '%s' in requested window", name, strings.Join(namespace, "/"))
		return
	}

	var total, lowest, highest float64
	for i, sample := range samples {
		var value float64
		value, err = toFloat(sample.Value.Raw)
		if err != nil {
			err = fmt.Errorf("metric '%s' is not numeric: %w", name, err)
			return
		}
		if i == 0 || value < lowest {
			lowest = value
		}
		if i == 0 || value > highest {
			highest = value
		}
		total += value
	}

	var value float64
	switch strings.ToLower(aggType) {
	case AggSum:
		value = total
	case AggMin:
		value = lowest
	case AggMax:
		value = highest
	case AggAvg:
		value = total / float64(len(samples))
	default:
		err = fmt.Errorf("unsupported aggregation type '%s'", aggType)
		return
	}

	last := samples[len(samples)-1]
	result = Metric{
		Name:        last.Name,
		Description: fmt.Sprintf("%s of %d samples: %s", strings.ToLower(aggType), len(samples), last.Description),
		Namespace:   namespace,
		Type:        Summary,
		Timestamp:   last.Timestamp,
		Value: MetricValue{
			Raw:      value,
			Unit:     last.Value.Unit,
			Interval: end.Sub(start),
		},
	}
	return
}

func toFloat(raw any) (value float64, err error) {
	switch v := raw.(type) {
	case uint64:
		value = float64(v)
	case int64:
		value = float64(v)
	case int:
		value = float64(v)
	case float64:
		value = v
	case string:
		value, err = strconv.ParseFloat(v, 64)
	default:
		err = fmt.Errorf("unsupported value type %T", raw)
	}
	return
}
