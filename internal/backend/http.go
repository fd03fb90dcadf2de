// Package backend contains the HTTP binding to a remote circuit-execution
// service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/qdaylab/qecdlp/pkg/qecdlp"
)

// Config addresses one remote backend. Host and port are explicit
// per-client configuration, never package state.
type Config struct {
	Host string
	Port int

	// TopK asks the service to return only the most frequent outcomes;
	// 0 requests the full histogram.
	TopK int

	// Timeout bounds each submission round trip (default 5 minutes;
	// large-shot runs are slow on the remote side).
	Timeout time.Duration
}

// Client submits circuits to the remote service over HTTP. It implements
// qecdlp.Executor; connectivity failures surface as
// *qecdlp.TransportError.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a client for the given backend address.
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) addr() string {
	return fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)
}

type executeRequest struct {
	Circuit []byte `json:"circuit"`
	Qubits  int    `json:"qubits"`
	Shots   uint64 `json:"repetitions"`
	TopK    int    `json:"topK,omitempty"`
}

type executeResponse struct {
	Error  string            `json:"error,omitempty"`
	Counts map[string]uint64 `json:"measurements"`
}

// Execute posts the circuit and shot budget to the service and converts
// the returned counts into a histogram.
func (c *Client) Execute(ctx context.Context, circuit *qecdlp.CircuitHandle, shots uint64) (qecdlp.Histogram, error) {
	body, err := json.Marshal(executeRequest{
		Circuit: circuit.Payload,
		Qubits:  circuit.Qubits,
		Shots:   shots,
		TopK:    c.config.TopK,
	})
	if err != nil {
		return nil, err
	}

	endpoint := url.URL{Scheme: "http", Host: c.addr(), Path: "/api/run"}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &qecdlp.TransportError{Addr: c.addr(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &qecdlp.TransportError{Addr: c.addr(), Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var parsed executeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &qecdlp.TransportError{Addr: c.addr(), Err: fmt.Errorf("malformed response: %w", err)}
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("backend rejected circuit: %s", parsed.Error)
	}

	hist := make(qecdlp.Histogram, len(parsed.Counts))
	for bits, count := range parsed.Counts {
		hist[bits] = count
	}
	return hist, nil
}
