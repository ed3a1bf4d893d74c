package background

import (
	"context"
	"log"
	"sync"
	"time"

	"pettouch/internal/caching"
	"pettouch/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages recurring background jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	adminSvc  services.AdminService
	cacheSvc  caching.CacheService
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(adminSvc services.AdminService, cacheSvc caching.CacheService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		adminSvc:  adminSvc,
		cacheSvc:  cacheSvc,
		jobs:      make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// Dashboard stats refresh - every 5 minutes
	statsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshDashboardStats),
		gocron.WithName("dashboard-stats-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stats refresh job: %v", err)
	} else {
		js.setJob("stats", statsJob)
	}

	// Cache health check - every 15 minutes
	cacheJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.checkCache),
		gocron.WithName("cache-health-check"),
	)
	if err != nil {
		log.Printf("Failed to create cache health job: %v", err)
	} else {
		js.setJob("cache", cacheJob)
	}
}

func (js *JobScheduler) setJob(name string, job gocron.Job) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.jobs[name] = job
}

// refreshDashboardStats recomputes the aggregate counters so the admin
// dashboard rarely pays for a full scan on request.
func (js *JobScheduler) refreshDashboardStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stats, err := js.adminSvc.RefreshStats(ctx)
	if err != nil {
		log.Printf("WARN: dashboard stats refresh failed: %v", err)
		return
	}
	log.Printf("DEBUG: dashboard stats refreshed: users=%d pets=%d scans=%d", stats.TotalUsers, stats.TotalPets, stats.TotalScans)
}

// checkCache pings Redis so a broken cache shows up in the logs before
// it shows up as slow requests.
func (js *JobScheduler) checkCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := js.cacheSvc.Ping(ctx); err != nil {
		log.Printf("WARN: cache health check failed: %v", err)
	}
}
