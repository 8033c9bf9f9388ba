package http

// RootResponse is the JSON shape returned by GET /.
type RootResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Uptime    int64             `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Endpoints EndpointsResponse `json:"endpoints"`
}

type EndpointsResponse struct {
	Status string `json:"status"`
	Health string `json:"health"`
	Ping   string `json:"ping"`
}

type StatusResponse struct {
	Status        string `json:"status"`
	BotRunning    bool   `json:"bot_running"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
