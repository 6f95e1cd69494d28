package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Small probe for the running service: checks /health and reports the
// dataset size from /api/stats.

func main() {
	base := flag.String("addr", "http://localhost:8080", "base URL of the service")
	flag.Parse()

	fmt.Println("Wilderness Death Map Health Check")
	fmt.Println("---------------------------------")

	client := &http.Client{Timeout: 5 * time.Second}

	if err := checkHealth(client, *base+"/health"); err != nil {
		log.Fatalf("Health check failed: %v", err)
	}
	fmt.Println("Service is healthy!")

	total, err := fetchTotalDeaths(client, *base+"/api/stats")
	if err != nil {
		log.Fatalf("Stats check failed: %v", err)
	}
	fmt.Printf("Current dataset holds %d deaths\n", total)
}

func checkHealth(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if body["status"] != "ok" {
		return fmt.Errorf("unexpected status body %q", body["status"])
	}
	return nil
}

func fetchTotalDeaths(client *http.Client, url string) (int, error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var stats struct {
		TotalDeaths int `json:"total_deaths"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return 0, err
	}
	return stats.TotalDeaths, nil
}
