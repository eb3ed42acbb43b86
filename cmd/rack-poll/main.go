package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultBaseURL    = "http://127.0.0.1:5001"
	defaultInterval   = 5 * time.Second
	defaultIterations = 1
	defaultRetryMax   = 3

	retryWaitMin   = 500 * time.Millisecond
	retryWaitMax   = 5 * time.Second
	requestTimeout = 30 * time.Second
)

// pollClient wraps a retrying HTTP client around the monitoring API.
type pollClient struct {
	baseURL string
	client  *retryablehttp.Client
}

func newPollClient(baseURL string, retryMax int) *pollClient {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.HTTPClient.Timeout = requestTimeout
	client.Logger = nil // Disable retryablehttp logging

	return &pollClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (p *pollClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.Unmarshal(body, out)
}

type rackList struct {
	TotalRacks int  `json:"total_racks"`
	SampleData bool `json:"sample_data"`
	Racks      []struct {
		RackID      int     `json:"rack_id"`
		Status      string  `json:"status"`
		Temperature float64 `json:"temperature"`
		PowerKW     float64 `json:"power_kw"`
	} `json:"racks"`
}

type datacenterStatus struct {
	Status         string  `json:"status"`
	TotalRacks     int     `json:"total_racks"`
	CriticalRacks  int     `json:"critical_racks"`
	WarningRacks   int     `json:"warning_racks"`
	AvgTemperature float64 `json:"avg_temperature"`
	TotalPowerKW   float64 `json:"total_power_kw"`
}

type networkSummary struct {
	Datacenter struct {
		TotalThroughput float64 `json:"total_throughput"`
		InterfaceCount  int     `json:"interface_count"`
		Status          string  `json:"status"`
	} `json:"datacenter"`
}

// poll runs one pass over the read endpoints and prints a status line
// per rack plus the datacenter rollup.
func (p *pollClient) poll(ctx context.Context) error {
	var racks rackList
	if err := p.getJSON(ctx, "/api/racks", &racks); err != nil {
		return fmt.Errorf("rack list: %w", err)
	}

	var dc datacenterStatus
	if err := p.getJSON(ctx, "/api/datacenter/status", &dc); err != nil {
		return fmt.Errorf("datacenter status: %w", err)
	}

	var network networkSummary
	if err := p.getJSON(ctx, "/api/network/summary", &network); err != nil {
		return fmt.Errorf("network summary: %w", err)
	}

	source := "files"
	if racks.SampleData {
		source = "sample"
	}
	fmt.Printf("%s  datacenter=%s racks=%d critical=%d warning=%d avg_temp=%.1fC power=%.2fkW net=%s (%d ifaces, %.1f Mbps) source=%s\n",
		time.Now().Format("15:04:05"),
		dc.Status, dc.TotalRacks, dc.CriticalRacks, dc.WarningRacks,
		dc.AvgTemperature, dc.TotalPowerKW,
		network.Datacenter.Status, network.Datacenter.InterfaceCount, network.Datacenter.TotalThroughput,
		source)

	for _, r := range racks.Racks {
		fmt.Printf("  rack %-3d %-8s temp=%.1fC power=%.2fkW\n", r.RackID, r.Status, r.Temperature, r.PowerKW)
	}

	return nil
}

func main() {
	baseURL := flag.String("url", defaultBaseURL, "Monitor API base URL")
	interval := flag.Duration("interval", defaultInterval, "Delay between polls")
	iterations := flag.Int("count", defaultIterations, "Number of polls (0 polls forever)")
	retryMax := flag.Int("retries", defaultRetryMax, "HTTP retry attempts per request")
	flag.Parse()

	client := newPollClient(*baseURL, *retryMax)
	ctx := context.Background()

	failures := 0
	for i := 0; *iterations == 0 || i < *iterations; i++ {
		if i > 0 {
			time.Sleep(*interval)
		}
		if err := client.poll(ctx); err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "poll failed: %v\n", err)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}
