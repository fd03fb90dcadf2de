package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/qdaylab/qecdlp/internal/backend"
	"github.com/qdaylab/qecdlp/internal/simulator"
	"github.com/qdaylab/qecdlp/pkg/qecdlp"
)

func main() {
	var (
		curvesFile   = flag.String("curves", "fixtures/curves.json", "Path to curve dataset (JSON)")
		bits         = flag.Int("bits", 7, "Bit size of the curve to pick from the dataset")
		curveName    = flag.String("curve", "", "Built-in curve instead of the dataset (qday7 or secp256k1)")
		publicKey    = flag.String("public-key", "", "Public key in hex (SEC encoding) for built-in curves")
		remote       = flag.Bool("remote", false, "Execute on a remote backend instead of the local simulator")
		host         = flag.String("host", "localhost", "Remote backend host")
		port         = flag.Int("port", 8080, "Remote backend port")
		shots        = flag.Uint64("shots", 100000, "Shot budget per execution")
		topK         = flag.Int("top-k", 100, "Histogram outcomes to consider while decoding")
		ancillaGuess = flag.Int("ancilla-guess", 1, "Starting guess for the ancilla search")
		maxProbes    = flag.Int("max-probes", 300, "Maximum synthesis attempts before giving up")
		noise        = flag.Int("noise", 0, "Simulator noise percentage (0-100)")
	)
	flag.Parse()

	params, err := selectCurve(*curveName, *publicKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sim := simulator.New()
	sim.NoisePercent = *noise

	var executor qecdlp.Executor = sim
	if *remote {
		executor = backend.NewClient(backend.Config{
			Host: *host,
			Port: *port,
			TopK: *topK,
		})
		fmt.Printf("Using remote backend at %s:%d\n", *host, *port)
	}

	client := qecdlp.NewClient().
		WithSynthesizer(sim).
		WithExecutor(executor).
		WithSearchConfig(qecdlp.SearchConfig{
			StartGuess: *ancillaGuess,
			MaxProbes:  *maxProbes,
			Step:       1,
		}).
		WithDecoderConfig(qecdlp.DecoderConfig{
			TopK:          *topK,
			MaxCandidates: 4096,
		})

	ctx := context.Background()

	var result *qecdlp.RecoveryResult
	if params != nil {
		fmt.Printf("Recovering key on built-in curve %s (%d bits, %s shots)\n",
			*curveName, params.NumBits(), formatShots(*shots))
		result, err = client.Run(ctx, params, *shots)
	} else {
		fmt.Printf("Recovering key for the %d-bit curve in %s (%s shots)\n",
			*bits, *curvesFile, formatShots(*shots))
		result, err = client.RunCurveFile(ctx, *curvesFile, *bits, *shots)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n[+] Recovered private key!\n")
	fmt.Printf("    Private key:  %s\n", result.PrivateKey.String())
	fmt.Printf("    Ancilla:      %d (found after %d probes)\n", result.Ancilla, result.Probes)
	fmt.Printf("    From outcome: %s\n", result.Outcome)
	fmt.Printf("    Shot tally:   %d correct / %d wrong\n", result.CorrectShots, result.WrongShots)
	if result.Verified {
		fmt.Println("    ✓ Verified against public point!")
	}
}

// selectCurve resolves the -curve flag; nil means use the dataset.
func selectCurve(name, publicKeyHex string) (*qecdlp.CurveParams, error) {
	switch name {
	case "":
		return nil, nil
	case "qday7":
		return qecdlp.QDay7Bit(), nil
	case "secp256k1":
		if publicKeyHex == "" {
			return nil, fmt.Errorf("-curve secp256k1 requires -public-key")
		}
		raw, err := hex.DecodeString(publicKeyHex)
		if err != nil {
			return nil, fmt.Errorf("invalid public key hex: %w", err)
		}
		point, err := qecdlp.ParsePublicPoint(raw)
		if err != nil {
			return nil, err
		}
		params := qecdlp.Secp256k1()
		params.PublicPoint = point
		return params, nil
	default:
		return nil, fmt.Errorf("unknown curve %q (want qday7 or secp256k1)", name)
	}
}

func formatShots(shots uint64) string {
	if shots >= 1000 && shots%1000 == 0 {
		return fmt.Sprintf("%dk", shots/1000)
	}
	return fmt.Sprintf("%d", shots)
}
