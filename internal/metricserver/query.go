package metricserver

import (
	"context"
	"csvcot/internal/metrics"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Namespace from the wildcard part of the request path, nil when absent
func requestNamespace(clientRequest *http.Request) (namespace []string) {
	raw := strings.Trim(chi.URLParam(clientRequest, "*"), "/")
	if raw == "" {
		return
	}
	namespace = strings.Split(raw, "/")
	return
}

// Reads starttime/endtime query values.
// Start accepts RFC3339 or a past relative duration ("-5m"), defaulting to one minute ago.
// End accepts RFC3339 or "now", defaulting to now.
func requestWindow(clientRequest *http.Request, now time.Time) (start, end time.Time, err error) {
	start = now.Add(-1 * time.Minute)
	end = now

	rawStartTime := clientRequest.FormValue("starttime")
	switch {
	case rawStartTime == "":
	case rawStartTime[0] == '-' || rawStartTime[0] == '+':
		offset, parseErr := time.ParseDuration(rawStartTime)
		if parseErr != nil {
			// Unparsable offsets fall back to the default window
			break
		}
		if offset > 0 {
			err = fmt.Errorf("start time cannot be in the future")
			return
		}
		start = now.Add(offset)
	default:
		start, err = time.Parse(time.RFC3339Nano, rawStartTime)
		if err != nil {
			err = fmt.Errorf("invalid start time: %w", err)
			return
		}
	}

	rawEndTime := clientRequest.FormValue("endtime")
	if rawEndTime != "" && rawEndTime != "now" {
		end, err = time.Parse(time.RFC3339Nano, rawEndTime)
		if err != nil {
			err = fmt.Errorf("invalid end time: %w", err)
			return
		}
	}
	return
}

// Optional "type" query value. Empty matches every type.
func requestMetricType(clientRequest *http.Request) (metricType metrics.MetricType, err error) {
	raw := clientRequest.FormValue("type")
	if raw == "" {
		return
	}

	metricType = metrics.MetricType(strings.ToLower(raw))
	switch metricType {
	case metrics.Counter, metrics.Gauge, metrics.Summary:
	default:
		err = fmt.Errorf("unknown metric type '%s'", raw)
		metricType = ""
	}
	return
}

// Sends metrics as a JSON list, or a JSON error when there are none
func respondMetrics(ctx context.Context, serverResponder http.ResponseWriter, rawResults []metrics.Metric) {
	if len(rawResults) == 0 {
		jResp(ctx, serverResponder, Jerror{Msg: "Search returned no results"})
		return
	}

	results := make([]metrics.JMetric, 0, len(rawResults))
	for _, rawResult := range rawResults {
		results = append(results, rawResult.Convert())
	}
	jResp(ctx, serverResponder, results)
}
