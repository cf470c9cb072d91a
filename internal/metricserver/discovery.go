package metricserver

import (
	"context"
	"net/http"
)

// Lists one value-less sample per distinct metric. Time filters do not apply.
func handleDiscovery(baseCtx context.Context, discover Discoverer, serverResponder http.ResponseWriter, clientRequest *http.Request) {
	metricType, err := requestMetricType(clientRequest)
	if err != nil {
		serverResponder.WriteHeader(http.StatusBadRequest)
		return
	}

	respondMetrics(baseCtx, serverResponder, discover(
		clientRequest.FormValue("name"),
		clientRequest.FormValue("description"),
		requestNamespace(clientRequest),
		clientRequest.FormValue("unit"),
		metricType,
	))
}
