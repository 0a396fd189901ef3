// Fires a burst of concurrent transition requests at one order and reports
// how they resolved. With the guard in place exactly one request should
// win; the rest get 409.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "server base URL")
		orderID  = flag.Int64("order", 1, "order id to transition")
		action   = flag.String("action", "confirm", "confirm or cancel")
		requests = flag.Int("n", 50, "number of concurrent requests")
	)
	flag.Parse()

	if *action != "confirm" && *action != "cancel" {
		log.Fatalf("invalid action %q", *action)
	}

	url := fmt.Sprintf("%s/api/orders/%d/%s", *baseURL, *orderID, *action)
	client := &http.Client{Timeout: 10 * time.Second}

	var okCount, rejectedCount, failCount atomic.Int32
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < *requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, err := client.Post(url, "application/json", nil)
			if err != nil {
				failCount.Add(1)
				return
			}
			resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusOK:
				okCount.Add(1)
			case http.StatusConflict:
				rejectedCount.Add(1)
			default:
				failCount.Add(1)
			}
		}()
	}
	wg.Wait()

	fmt.Printf("finished %d requests in %v\n", *requests, time.Since(start))
	fmt.Printf("  succeeded: %d\n", okCount.Load())
	fmt.Printf("  rejected (guard/terminal): %d\n", rejectedCount.Load())
	fmt.Printf("  failed: %d\n", failCount.Load())

	if okCount.Load() > 1 {
		fmt.Println("WARNING: more than one transition succeeded for the same order")
	}
}
