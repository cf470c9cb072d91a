package metricserver

import (
	"context"
	"net/http"
	"time"
)

// Handles metric search requests based on time and aggregation type
func handleAggregation(baseCtx context.Context, search AggSearcher, serverResponder http.ResponseWriter, clientRequest *http.Request) {
	reqNamespace := requestNamespace(clientRequest)
	reqName := clientRequest.FormValue("name")
	aggType := clientRequest.FormValue("aggregation")

	reqStartTime, reqEndTime, err := requestWindow(clientRequest, time.Now())
	if err != nil {
		serverResponder.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := search(aggType, reqName, reqNamespace, reqStartTime, reqEndTime)
	if err != nil {
		jResp(baseCtx, serverResponder, Jerror{Msg: err.Error()})
		return
	}
	jResp(baseCtx, serverResponder, result.Convert())
}
