// Command reservecheck fires concurrent reservations at a running server and
// verifies that the spot never issues more tickets than it had capacity for.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"spotly/internal/reservations"
	"spotly/internal/spots"

	"golang.org/x/sync/errgroup"
)

type envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
	Errors struct {
		Code string `json:"code"`
	} `json:"errors"`
}

type checker struct {
	client  *http.Client
	baseURL string
	spot    string
}

func main() {
	baseURL := flag.String("base", "http://localhost:8080/api/v1", "API base URL")
	spotName := flag.String("spot", "Summer Fair", "spot to reserve from")
	requests := flag.Int("n", 500, "number of reservations to attempt")
	concurrency := flag.Int("c", 50, "concurrent requests")
	flag.Parse()

	c := &checker{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: *baseURL,
		spot:    *spotName,
	}
	ctx := context.Background()

	fmt.Println("🧪 Reservation oversell check")
	fmt.Println("=============================")

	before, err := c.remaining(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to read spot: %v", err)
	}
	fmt.Printf("Spot %q has %d tickets left, sending %d reservations (%d at a time)\n",
		c.spot, before, *requests, *concurrency)

	var issued, soldOut, failed atomic.Int64
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)
	for i := 0; i < *requests; i++ {
		g.Go(func() error {
			code, err := c.reserve(gctx)
			switch {
			case err != nil:
				failed.Add(1)
				log.Printf("reserve failed: %v", err)
			case code == "":
				issued.Add(1)
			case code == "sold_out":
				soldOut.Add(1)
			default:
				failed.Add(1)
				log.Printf("reserve rejected: %s", code)
			}
			return nil
		})
	}
	_ = g.Wait()
	elapsed := time.Since(start)

	after, err := c.remaining(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to read spot: %v", err)
	}

	fmt.Printf("\nissued=%d sold_out=%d failed=%d in %v\n", issued.Load(), soldOut.Load(), failed.Load(), elapsed)
	fmt.Printf("remaining before=%d after=%d\n", before, after)

	expected := int64(min(before, *requests))
	ok := issued.Load() == int64(before-after) && issued.Load() <= int64(before)
	if failed.Load() == 0 {
		ok = ok && issued.Load() == expected
	}
	if !ok {
		fmt.Println("❌ Capacity accounting mismatch")
		os.Exit(1)
	}
	fmt.Println("✅ No oversell")
}

func (c *checker) spotURL() string {
	return c.baseURL + "/spots/" + url.PathEscape(c.spot)
}

func (c *checker) remaining(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.spotURL(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var body envelope[spots.SpotResponse]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode spot: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("get spot: %s (%d)", body.Errors.Code, resp.StatusCode)
	}

	total := 0
	for _, slot := range body.Data.Slots {
		total += slot.CapacityRemaining
	}
	return total, nil
}

// reserve returns the error code of a rejected reservation, or "" on success
func (c *checker) reserve(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.spotURL()+"/reserve", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body envelope[reservations.TicketResponse]
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode reservation: %w", err)
	}
	if resp.StatusCode == http.StatusCreated {
		return "", nil
	}
	return body.Errors.Code, nil
}
