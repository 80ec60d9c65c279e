package worker

import (
	"context"
	"log"
	"time"

	"github.com/trade-journal/internal/service"
)

// ImportWorker drains queued CSV imports in the background so large
// uploads never block the request that submitted them
type ImportWorker struct {
	importService *service.ImportService
	interval      time.Duration
	stopChan      chan struct{}
}

// NewImportWorker creates a new import worker
func NewImportWorker(importService *service.ImportService, interval time.Duration) *ImportWorker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &ImportWorker{
		importService: importService,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the processing loop
func (w *ImportWorker) Start() {
	log.Printf("Import worker started with interval: %v", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.importService.ProcessPending(context.Background())
		case <-w.stopChan:
			log.Println("Import worker stopped")
			return
		}
	}
}

// Stop stops the processing loop
func (w *ImportWorker) Stop() {
	close(w.stopChan)
}
