package qecdlp

import (
	"context"
	"fmt"
)

// Executor submits a synthesized circuit to an execution backend and
// returns the measured histogram. Implementations own all transport
// concerns; failures to reach the backend must surface as
// *TransportError so callers can apply their own retry policy.
type Executor interface {
	Execute(ctx context.Context, circuit *CircuitHandle, shots uint64) (Histogram, error)
}

// Client wires the full pipeline: ancilla search, backend execution and
// histogram decoding. Every collaborator is explicit configuration; the
// client holds no global state.
type Client struct {
	synth   Synthesizer
	exec    Executor
	parser  CurveParser
	search  SearchConfig
	decoder DecoderConfig
}

// NewClient creates a client with default search and decoder settings. A
// synthesizer and an executor must be supplied before running.
func NewClient() *Client {
	return &Client{
		parser:  &JSONParser{},
		search:  DefaultSearchConfig(),
		decoder: DefaultDecoderConfig(),
	}
}

// WithSynthesizer sets the circuit synthesizer.
func (c *Client) WithSynthesizer(synth Synthesizer) *Client {
	c.synth = synth
	return c
}

// WithExecutor sets the execution backend.
func (c *Client) WithExecutor(exec Executor) *Client {
	c.exec = exec
	return c
}

// WithParser sets a custom curve dataset parser.
func (c *Client) WithParser(parser CurveParser) *Client {
	c.parser = parser
	return c
}

// WithSearchConfig sets the ancilla search bounds.
func (c *Client) WithSearchConfig(config SearchConfig) *Client {
	c.search = config
	return c
}

// WithDecoderConfig sets the decoding bounds.
func (c *Client) WithDecoderConfig(config DecoderConfig) *Client {
	c.decoder = config
	return c
}

// Run executes one full recovery for the given curve: probe ancilla
// counts until synthesis succeeds, submit the circuit for the requested
// shots, then decode and verify the returned histogram.
//
// Args:
//   - ctx: Context for cancellation.
//   - params: Curve parameters including the target public point.
//   - shots: Shot budget for the backend execution.
//
// Returns:
//   - RecoveryResult with the verified key, or one of the typed failures
//     (SearchExhaustedError, TransportError, RecoveryFailedError).
func (c *Client) Run(ctx context.Context, params *CurveParams, shots uint64) (*RecoveryResult, error) {
	if c.synth == nil {
		return nil, fmt.Errorf("client needs a synthesizer")
	}
	if c.exec == nil {
		return nil, fmt.Errorf("client needs an executor")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid curve parameters: %w", err)
	}

	searched, err := NewAncillaSearcher(c.synth).WithConfig(c.search).Search(ctx, params)
	if err != nil {
		return nil, err
	}

	hist, err := c.exec.Execute(ctx, searched.Circuit, shots)
	if err != nil {
		return nil, err
	}

	layout := LayoutForCurve(params)
	decoder := NewDecoder().WithConfig(c.decoder)
	decoded, err := decoder.Decode(hist, params, layout)
	if err != nil {
		return nil, err
	}
	correct, wrong := decoder.Tally(hist, params, layout, decoded.Key)

	return &RecoveryResult{
		PrivateKey:   decoded.Key,
		Ancilla:      searched.Ancilla,
		Probes:       searched.Probes,
		Outcome:      decoded.Outcome.Bits,
		CorrectShots: correct,
		WrongShots:   wrong,
		Verified:     true,
	}, nil
}

// RunCurveFile loads a curve dataset, picks the curve with the given bit
// size and runs the recovery against it.
func (c *Client) RunCurveFile(ctx context.Context, source string, bits int, shots uint64) (*RecoveryResult, error) {
	records, err := c.parser.ParseCurves(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse curve dataset: %w", err)
	}
	record, err := FindByBits(records, bits)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, record.Params, shots)
}
