package models

import "time"

// SystemStats is a point-in-time snapshot of host resource usage, sampled by
// the background stat updater and served on the monitoring endpoint.
type SystemStats struct {
	CPUPercent     float64   `json:"cpuPercent"`
	MemUsedPercent float64   `json:"memUsedPercent"`
	MemTotalBytes  uint64    `json:"memTotalBytes"`
	UptimeSeconds  uint64    `json:"uptimeSeconds"`
	Load1          float64   `json:"load1"`
	SampledAt      time.Time `json:"sampledAt"`
}
