package monitoring

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/alumninet/alumninet-be/internal/models"
	"github.com/alumninet/alumninet-be/internal/services"
	"github.com/alumninet/alumninet-be/internal/websocket"
)

// StatUpdater periodically samples host resource usage, keeps the latest
// snapshot for the monitoring endpoint and pushes it onto the activity feed.
type StatUpdater struct {
	eventSvc services.EventServiceProvider
	hub      *websocket.Hub
	ticker   *time.Ticker
	done     chan bool

	mu           sync.RWMutex
	latest       models.SystemStats
	sampled      bool
	lastCPUAlert time.Time
}

// NewStatUpdater creates a new StatUpdater.
func NewStatUpdater(eventSvc services.EventServiceProvider, hub *websocket.Hub) *StatUpdater {
	return &StatUpdater{
		eventSvc: eventSvc,
		hub:      hub,
		done:     make(chan bool),
	}
}

// Run starts the periodic sampling.
func (su *StatUpdater) Run() {
	log.Info().Msg("Starting background stat updater...")
	su.ticker = time.NewTicker(15 * time.Second)
	defer su.ticker.Stop()

	// Sample once immediately on start
	su.sample()

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping background stat updater.")
			return
		case <-su.ticker.C:
			su.sample()
		}
	}
}

// Stop halts the periodic sampling.
func (su *StatUpdater) Stop() {
	su.done <- true
}

// Snapshot returns the most recent sample. The bool reports whether a sample
// has been taken yet.
func (su *StatUpdater) Snapshot() (models.SystemStats, bool) {
	su.mu.RLock()
	defer su.mu.RUnlock()
	return su.latest, su.sampled
}

func (su *StatUpdater) sample() {
	stats := models.SystemStats{SampledAt: time.Now().UTC()}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	} else if err != nil {
		log.Warn().Err(err).Msg("StatUpdater: Failed to sample CPU")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemUsedPercent = vm.UsedPercent
		stats.MemTotalBytes = vm.Total
	} else {
		log.Warn().Err(err).Msg("StatUpdater: Failed to sample memory")
	}

	if uptime, err := host.Uptime(); err == nil {
		stats.UptimeSeconds = uptime
	}

	if avg, err := load.Avg(); err == nil {
		stats.Load1 = avg.Load1
	}

	su.mu.Lock()
	su.latest = stats
	su.sampled = true
	su.mu.Unlock()

	if su.hub != nil {
		if err := su.hub.Publish("system.stats", stats); err != nil {
			log.Debug().Err(err).Msg("StatUpdater: Stats broadcast dropped")
		}
	}

	su.checkAndAlertForHighCPU(stats)
}

func (su *StatUpdater) checkAndAlertForHighCPU(stats models.SystemStats) {
	const highCPUThreshold = 90.0
	const alertCooldown = 15 * time.Minute

	if stats.CPUPercent <= highCPUThreshold || su.eventSvc == nil {
		return
	}
	if time.Since(su.lastCPUAlert) < alertCooldown {
		return
	}

	msg := fmt.Sprintf("High CPU usage (%.1f%%) detected on the API host.", stats.CPUPercent)
	su.eventSvc.CreateEvent("system.alert.cpu", "warn", msg, nil)
	su.lastCPUAlert = time.Now()
}
