package metricserver

import (
	"context"
	"net/http"
	"time"
)

// Handles metric search requests based on time for data
func handleData(baseCtx context.Context, search DataSearcher, serverResponder http.ResponseWriter, clientRequest *http.Request) {
	reqStartTime, reqEndTime, err := requestWindow(clientRequest, time.Now())
	if err != nil {
		serverResponder.WriteHeader(http.StatusBadRequest)
		return
	}

	rawResults := search(clientRequest.FormValue("name"), requestNamespace(clientRequest), reqStartTime, reqEndTime)
	respondMetrics(baseCtx, serverResponder, rawResults)
}
