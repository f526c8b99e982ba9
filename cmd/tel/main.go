// Package main is the tel command line client for the mount daemon.
//
// Exit status is zero only when the daemon reports success; every other
// outcome prints the matching status message to stderr.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rockit-astro/lmountd/internal/daemon"
	"github.com/rockit-astro/lmountd/pkg/lmount"
)

// commandResponse mirrors the daemon's command envelope.
type commandResponse struct {
	Status int `json:"status"`
}

func main() {
	addr := flag.String("addr", "http://localhost:9003", "Daemon API address")
	formatted := flag.Bool("f", false, "Format output for the terminal")
	timeout := flag.Duration("timeout", 5*time.Second, "Request timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	status := run(ctx, *addr, *formatted, *timeout, flag.Args())
	if status != lmount.Succeeded {
		fmt.Fprintln(os.Stderr, status.Message())
		os.Exit(1)
	}
}

func run(ctx context.Context, addr string, formatted bool, timeout time.Duration, args []string) lmount.CommandStatus {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tel [flags] status|park <position>|init")
		return lmount.CommandUnavailable
	}

	client := &http.Client{Timeout: timeout}

	switch args[0] {
	case "status":
		return showStatus(ctx, client, addr, formatted)
	case "park":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: tel park <position>")
			return lmount.Failed
		}
		return command(ctx, client, addr, "/command/park", map[string]string{"position": args[1]})
	case "init":
		return command(ctx, client, addr, "/command/initialize", map[string]string{})
	default:
		return lmount.CommandUnavailable
	}
}

func showStatus(ctx context.Context, client *http.Client, addr string, formatted bool) lmount.CommandStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+"/status", nil)
	if err != nil {
		return lmount.Failed
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return lmount.TerminatedByUser
		}
		return lmount.DaemonCommunicationFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return lmount.Failed
	}

	var report daemon.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return lmount.DaemonCommunicationFailed
	}

	fmt.Println(lmount.MountState(report.State).Label(formatted))
	return lmount.Succeeded
}

func command(ctx context.Context, client *http.Client, addr, path string, body map[string]string) lmount.CommandStatus {
	payload, err := json.Marshal(body)
	if err != nil {
		return lmount.Failed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr+path, bytes.NewReader(payload))
	if err != nil {
		return lmount.Failed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return lmount.TerminatedByUser
		}
		return lmount.DaemonCommunicationFailed
	}
	defer resp.Body.Close()

	var result commandResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return lmount.DaemonCommunicationFailed
	}

	return lmount.CommandStatus(result.Status)
}
