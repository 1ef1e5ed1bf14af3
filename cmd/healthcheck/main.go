// Command healthcheck probes the API's /healthz endpoint and exits non-zero
// on failure. Intended as a container HEALTHCHECK with no shell or curl in
// the image.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

func main() {
	target := strings.TrimSpace(os.Getenv("HEALTHCHECK_URL"))
	if target == "" {
		addr := strings.TrimSpace(os.Getenv("APP_HTTP_ADDR"))
		if addr == "" {
			addr = ":8080"
		}
		if strings.HasPrefix(addr, ":") {
			addr = "localhost" + addr
		}
		target = "http://" + addr + "/healthz"
	}

	client := &fasthttp.Client{
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := client.DoTimeout(req, resp, 5*time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck request failed: %v\n", err)
		os.Exit(1)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		fmt.Fprintf(os.Stderr, "healthcheck returned status %d\n", resp.StatusCode())
		os.Exit(1)
	}
}
