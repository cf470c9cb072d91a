// Local HTTP server for discovery and querying of playback metrics
package metricserver

import (
	"bytes"
	"context"
	"csvcot/internal/global"
	"csvcot/internal/logctx"
	"csvcot/internal/network"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed static-files/metric-help.html
var webFiles embed.FS

// Builds the HTTP server for metric queries. Nothing is bound until Start.
func SetupListener(ctx context.Context, port int, search DataSearcher, discover Discoverer, aggregation AggSearcher) (server *http.Server, err error) {
	helpPage, err := webFiles.ReadFile("static-files/metric-help.html")
	if err != nil {
		err = fmt.Errorf("failed reading metric help html page from internal fs: %w", err)
		return
	}

	helpPage = bytes.ReplaceAll(helpPage, []byte("@@LISTEN_ADDR@@"), []byte(global.HTTPListenAddr))
	helpPage = bytes.ReplaceAll(helpPage, []byte("@@LISTEN_PORT@@"), []byte(strconv.Itoa(port)))
	helpPage = bytes.ReplaceAll(helpPage, []byte("@@DATA_PATH@@"), []byte(global.DataPath))
	helpPage = bytes.ReplaceAll(helpPage, []byte("@@DISCOVER_PATH@@"), []byte(global.DiscoveryPath))
	helpPage = bytes.ReplaceAll(helpPage, []byte("@@AGGREGATION_PATH@@"), []byte(global.AggregationPath))

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	// Root help page
	router.Get("/", func(serverResponder http.ResponseWriter, clientRequest *http.Request) {
		serverResponder.Header().Set("Content-Type", "text/html; charset=utf-8")
		serverResponder.WriteHeader(http.StatusOK)
		serverResponder.Write(helpPage)
	})

	discoveryRoot := strings.TrimSuffix(global.DiscoveryPath, "/")
	router.Get(discoveryRoot, func(serverResponder http.ResponseWriter, clientRequest *http.Request) {
		handleDiscovery(ctx, discover, serverResponder, clientRequest)
	})
	router.Get(global.DiscoveryPath+"*", func(serverResponder http.ResponseWriter, clientRequest *http.Request) {
		handleDiscovery(ctx, discover, serverResponder, clientRequest)
	})
	router.Get(global.DataPath+"*", func(serverResponder http.ResponseWriter, clientRequest *http.Request) {
		handleData(ctx, search, serverResponder, clientRequest)
	})
	router.Get(global.AggregationPath+"*", func(serverResponder http.ResponseWriter, clientRequest *http.Request) {
		handleAggregation(ctx, aggregation, serverResponder, clientRequest)
	})

	server = &http.Server{
		Addr:         net.JoinHostPort(global.HTTPListenAddr, strconv.Itoa(port)),
		Handler:      router,
		ReadTimeout:  global.HTTPReadTimeout,
		WriteTimeout: global.HTTPWriteTimeout,
		IdleTimeout:  global.HTTPIdleTimeout,
		ErrorLog:     log.New(httpLogWriter{ctx: ctx}, "", 0),
	}
	return
}

// Binds the server address and serves until the server is shut down
func Start(ctx context.Context, server *http.Server) {
	listener, err := network.ReuseTCPPort(server.Addr)
	if err != nil {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"Metric query server failed to start: %v\n", err)
		return
	}

	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Metric query server starting on %s (http://%s/)\n", server.Addr, server.Addr)

	err = server.Serve(listener)
	if err != nil && err != http.ErrServerClosed {
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"Metric query server stopped: %v\n", err)
	}
}

// Encodes JSON and sends as response body
func jResp(ctx context.Context, serverResponder http.ResponseWriter, content any) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(content); err != nil {
		serverResponder.WriteHeader(http.StatusInternalServerError)
		logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog,
			"Failed marshaling metric results: %v\n", err)
		return
	}
	serverResponder.Header().Set("Content-Type", "application/json")
	serverResponder.WriteHeader(http.StatusOK)
	serverResponder.Write(buf.Bytes())
}

// Routes net/http server errors into the program log
func (logWriter httpLogWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	if n == 0 {
		return
	}
	logctx.LogEvent(logWriter.ctx, global.VerbosityStandard, global.ErrorLog,
		"%s\n", strings.TrimSpace(string(p)))
	return
}
