package utils

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"lsf/config"
	"lsf/database"
	"lsf/models"

	"github.com/robfig/cron/v3"
)

// logScan logs orphan scan events with timestamp
func logScan(message string) {
	log.Printf("[ORPHAN-SCAN %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartOrphanScan schedules the reconciliation report when
// ORPHAN_SCAN_CRON is set (e.g. "@hourly"). The scan only reports; file
// deletion is never automatic.
func StartOrphanScan() *cron.Cron {
	spec := config.AppConfig.OrphanScanCron
	if spec == "" {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, RunOrphanScan); err != nil {
		log.Printf("Invalid ORPHAN_SCAN_CRON %q: %v", spec, err)
		return nil
	}
	c.Start()

	logScan("Scheduled with spec " + spec)
	return c
}

// RunOrphanScan compares files rows against the disk and logs both
// directions of drift: rows whose payload is gone, and payloads under the
// files root with no row. Background images are skipped on the disk side
// because they are stored without rows.
func RunOrphanScan() {
	var files []models.StoredFile
	if err := database.Database.Db.Find(&files).Error; err != nil {
		logScan("Error fetching file rows: " + err.Error())
		return
	}

	known := make(map[string]bool, len(files))
	missing := 0
	for _, f := range files {
		known[filepath.Clean(f.FilePath)] = true
		if _, err := os.Stat(f.FilePath); os.IsNotExist(err) {
			logScan("Row " + f.Filename + " has no payload at " + f.FilePath)
			missing++
		}
	}

	orphans := 0
	filesRoot := StorageDir(models.CategoryResources)
	entries, err := os.ReadDir(filesRoot)
	if err != nil {
		if !os.IsNotExist(err) {
			logScan("Error reading files root: " + err.Error())
		}
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Clean(filepath.Join(filesRoot, entry.Name()))
		if !known[path] {
			logScan("Payload " + entry.Name() + " has no row")
			orphans++
		}
	}

	if missing == 0 && orphans == 0 {
		logScan("Clean: rows and payloads match")
	}
}
