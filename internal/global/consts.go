package global

import "time"

const (
	// Descriptive Names for available verbosity levels
	VerbosityNone int = iota
	VerbosityStandard
	VerbosityProgress
	VerbosityData
	VerbosityFullData
	VerbosityDebug

	// Descriptive names for available severity levels
	ErrorLog string = "Error"
	WarnLog  string = "Warn"
	InfoLog  string = "Info"
)

const (
	ProgVersion  string = "v1.2.0"
	ProgBaseName string = "csvcot"

	// Context keys
	LoggerKey  CtxKey = "logger"  // Event queue (mostly for variable log verbosity handling)
	LogTagsKey CtxKey = "logtags" // List of tags in order of broad->specific appended/popped at various parts of the program

	// Destination defaults
	DefaultTargetAddress string = "127.0.0.1"
	DefaultTargetPort    int    = 4242
	DefaultMulticastTTL  int    = 1

	// Playback defaults
	DefaultPollingInterval time.Duration = 5 * time.Second
	DefaultRemovalGap      time.Duration = 1 * time.Second
	DefaultStaleWindow     time.Duration = 300 * time.Second
	RemovalStaleWindow     time.Duration = 1 * time.Second
	DefaultCallsignBase    string        = "TMIT"
	DefaultPositionType    string        = "a-h-G-i-I"
	DefaultRemovalType     string        = "t-x-c-c"

	// Upper bound for automatic per-file read limit
	MaxAutoFileBytes int64 = 1 << 30

	// CoT constants
	KnotsToMetersPerSecond float64 = 0.514444
	PositionUncertainty    float64 = 10.0
	UnknownUncertainty     float64 = 9999999.0
	CotTimeFormat          string  = "2006-01-02T15:04:05.000000Z"

	// Timeout values
	ShutdownTimeout time.Duration = 5 * time.Second

	// Metric HTTP server
	HTTPListenPort   int           = 10000 + DefaultTargetPort // Default listen port
	HTTPListenAddr   string        = "localhost"               // Metric queries only exposed to local machine
	HTTPReadTimeout  time.Duration = 30 * time.Second
	HTTPWriteTimeout time.Duration = 10 * time.Second
	HTTPIdleTimeout  time.Duration = 180 * time.Second
	DataPath         string        = "/data/"
	DiscoveryPath    string        = "/discover/"
	AggregationPath  string        = "/aggregate/"

	DefaultMetricInterval  time.Duration = 15 * time.Second
	DefaultMetricRetention time.Duration = 1 * time.Hour

	// Namespacing Name Components
	NSMetric    string = "Metrics"
	NSMetricSrv string = "Server"
	NSTest      string = "Test"
	NSCLI       string = "CLI"
	NSPlayback  string = "Playback"
	NSTailer    string = "Tailer"
	NSConsole   string = "Console"
	NSTransport string = "Transport"
	NSLifecycle string = "Lifecycle"

	// systemd integration
	ReadyMessage string = "READY=1"
)
