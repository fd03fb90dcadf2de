// Package qecdlp drives quantum-assisted recovery of elliptic-curve
// discrete logarithms on small challenge curves: it searches for the
// ancilla budget a circuit synthesizer needs, submits the synthesized
// circuit to an execution backend, and decodes the returned measurement
// histogram into a verified private key via continued-fraction phase
// recovery.
//
// Circuit synthesis and execution are external collaborators behind the
// Synthesizer and Executor interfaces; this package owns the classical
// control loop and post-processing only.
//
// # Quick Start
//
//	import "github.com/qdaylab/qecdlp/pkg/qecdlp"
//
//	client := qecdlp.NewClient().
//	    WithSynthesizer(synth).
//	    WithExecutor(exec)
//
//	result, err := client.Run(ctx, qecdlp.QDay7Bit(), 100000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Recovered key: %s\n", result.PrivateKey)
//
// # Customization
//
// The search and decoding bounds are plain config structs:
//
//	client := qecdlp.NewClient().
//	    WithSynthesizer(synth).
//	    WithExecutor(exec).
//	    WithSearchConfig(qecdlp.SearchConfig{
//	        StartGuess: 24, // known-good guess: first probe succeeds
//	        MaxProbes:  300,
//	        Step:       1,
//	    }).
//	    WithDecoderConfig(qecdlp.DecoderConfig{
//	        TopK:          100,
//	        MaxCandidates: 4096,
//	    })
//
// # Pieces
//
// The pipeline stages are usable on their own: AncillaSearcher probes a
// Synthesizer directly, and Decoder turns any Histogram into a key. A
// histogram for a known key can be produced with IdealHistogram, which is
// how the round-trip tests and the offline simulator work.
package qecdlp
