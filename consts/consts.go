package consts

import "time"

// Server configuration
const (
	DefaultServerPort    = "3300"
	DefaultDashboardPort = "8080"
	ReadHeaderTimeout    = 3 * time.Second
	ShutdownTimeout      = 10 * time.Second
	HealthTimeout        = 5 * time.Second
	RateLimitRequests    = 60
	RateLimitWindow      = time.Minute
)

// Record source
const (
	RecordsPath        = "/getorders"
	DefaultSourceURL   = "http://localhost:3300" + RecordsPath
	FetchTimeout       = 30 * time.Second
	MaxResponseBytes   = 64 << 20
	DefaultDatabase    = "vizboard.db"
	DefaultDatasetFile = "jsondata.json"
)

// Cron schedules
const (
	CronSyncDataset = "*/15 * * * *" // Every 15 minutes
	CronCleanup     = "0 3 * * *"    // Daily at 03:00 UTC
	ImportRetention = 60 * 24 * time.Hour
)

// File permissions
const (
	DirPermissions  = 0750
	FilePermissions = 0600
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
)

// Chart configuration
const (
	ChartWidth     = "1200px"
	ChartHeight    = "450px"
	TopN           = 5
	BorderWidth    = 1
	DoughnutInner  = "40%"
	PageTitle      = "Data Visualization Dashboard"
	ChartsJSONFile = "charts.json"
	ChartsHTMLFile = "charts.html"
)

// Chart colors and styling
const (
	ChartBackgroundColor = "#ffffff"
	ChartTextColor       = "#000000"
)

// Palette used by every chart view, assigned by index and repeated past six groups.
var (
	FillColors = []string{
		"rgba(255, 99, 132, 0.6)",
		"rgba(54, 162, 235, 0.6)",
		"rgba(255, 206, 86, 0.6)",
		"rgba(75, 192, 192, 0.6)",
		"rgba(153, 102, 255, 0.6)",
		"rgba(255, 159, 64, 0.6)",
	}
	BorderColors = []string{
		"rgba(220, 20, 60, 0.6)",
		"rgba(30, 144, 255, 0.6)",
		"rgba(255, 193, 7, 0.6)",
		"rgba(0, 128, 128, 0.6)",
		"rgba(128, 0, 128, 0.6)",
		"rgba(255, 69, 0, 0.6)",
	}
)
