package main

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"linkedin-scraper/internal/config"
	"linkedin-scraper/internal/orchestrator"
	"linkedin-scraper/internal/utils"
)

func main() {
	fmt.Println("🚀 LinkedIn Profile Scraper")
	fmt.Println(strings.Repeat("=", 60))

	// Load configuration
	cfg := config.DefaultConfig()

	// Credentials come from the environment only and fail fast, before
	// any browser session is started.
	creds, err := config.LoadCredentials()
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	scraper, err := orchestrator.New(cfg, creds)
	if err != nil {
		log.Fatalf("❌ Failed to initialize scraper: %v", err)
	}

	// Start scraping
	startTime := time.Now()
	if err := scraper.Run(); err != nil {
		log.Fatalf("❌ Run failed: %v", err)
	}
	duration := time.Since(startTime)

	fmt.Printf("🎉 Finished in %s\n", utils.FormatDuration(duration))

	// Memory stats for long list sanity checks
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("💾 Memory: Alloc=%d KB, TotalAlloc=%d KB, Sys=%d KB, NumGC=%d\n",
		m.Alloc/1024, m.TotalAlloc/1024, m.Sys/1024, m.NumGC)

	fmt.Println(strings.Repeat("=", 60))
}
