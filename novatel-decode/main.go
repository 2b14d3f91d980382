// Command novatel-decode reads NovAtel log bodies from stdin, one per line, and prints each as
// a JSON record.  Framing and CRC checks are assumed to have happened already; lines look like
// "BESTPOSA,SOL_COMPUTED,NARROW_INT,..." for ASCII logs and "BESTPOSB <base64 body>" for
// binary logs.  Which fields each log has comes from the -layout file.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	layoutFile = flag.String("layout", "layouts.yaml", "yaml file describing the fields of each log")
	bind       = flag.String("bind", "", "address to bind for debug/metrics server; empty to disable")
)

func main() {
	flag.Parse()

	layout, err := LoadLayout(*layoutFile)
	if err != nil {
		log.Fatalf("load layout %q: %v", *layoutFile, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var httpServer *http.Server
	httpDoneCh := make(chan error)
	if *bind != "" {
		// /debug/requests and /debug/events are registered by x/net/trace.
		http.Handle("/metrics", promhttp.Handler())
		httpServer = &http.Server{Addr: *bind}
		go func() {
			log.Printf("http server listening on %s", httpServer.Addr)
			err := httpServer.ListenAndServe()
			select {
			case httpDoneCh <- err:
			case <-ctx.Done():
			}
			close(httpDoneCh)
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	loopDoneCh := make(chan error)
	go func() {
		err := run(layout, os.Stdin, os.Stdout)
		select {
		case loopDoneCh <- err:
		case <-ctx.Done():
		}
		close(loopDoneCh)
	}()

	exit := 0
	select {
	case err := <-httpDoneCh:
		log.Printf("http server died: %v", err)
		httpServer = nil
		exit = 1
	case err := <-loopDoneCh:
		if err != nil {
			log.Printf("decode loop died: %v", err)
			exit = 1
		}
	case <-sigCh:
		log.Printf("interrupt")
		exit = 1
	}
	signal.Stop(sigCh)
	cancel()
	if httpServer != nil {
		tctx, c := context.WithTimeout(context.Background(), time.Second)
		httpServer.Shutdown(tctx)
		c()
	}
	os.Exit(exit)
}

// run decodes every line of r and writes one JSON record per line to w.  Lines that do not name
// a known log are logged and skipped.
func run(layout *Layout, r io.Reader, w io.Writer) error {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	enc := json.NewEncoder(w)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		rec, err := decodeLine(layout, line)
		if err != nil {
			linesSkipped.Inc()
			log.Printf("skipping line: %v", err)
			continue
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
