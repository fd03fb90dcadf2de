package qecdlp

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
)

// CurveRecord pairs one dataset curve with its metadata. KnownKey is only
// present in benchmark datasets that ship the expected discrete log; the
// recovery pipeline itself never reads it.
type CurveRecord struct {
	Bits     int
	Params   *CurveParams
	Cofactor *big.Int
	KnownKey *big.Int
}

// CurveParser loads curve datasets from external sources.
type CurveParser interface {
	// ParseCurves parses a curve dataset and returns its records.
	ParseCurves(source string) ([]*CurveRecord, error)
}

// JSONParser reads the curve dataset emitted by the parameter-generation
// tooling: a JSON array of objects carrying the prime, the subgroup
// order, and the generator and public points. Field names are
// configurable; zero values select the dataset defaults.
type JSONParser struct {
	PrimeField     string // default "prime"
	OrderField     string // default "subgroup_order"
	GeneratorField string // default "generator_point"
	PublicField    string // default "public_key"
	BitsField      string // default "bit_length"
	CofactorField  string // default "cofactor"
	KeyField       string // default "private_key"

	// A and B override the curve coefficients. The dataset's fixed curve
	// family is y² = x³ + 7, so they default to 0 and 7.
	A *big.Int
	B *big.Int
}

func fieldOr(field, fallback string) string {
	if field == "" {
		return fallback
	}
	return field
}

// ParseCurves parses curve records from a JSON file.
//
// Expected format:
//
//	[
//	  {"bit_length": 7, "prime": 67, "subgroup_order": 79, "cofactor": 1,
//	   "generator_point": [48, 60], "private_key": 56, "public_key": [52, 7]}
//	]
func (p *JSONParser) ParseCurves(jsonFile string) ([]*CurveRecord, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // keep large primes exact instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	a := p.A
	if a == nil {
		a = big.NewInt(0)
	}
	b := p.B
	if b == nil {
		b = big.NewInt(7)
	}

	records := make([]*CurveRecord, 0, len(items))
	for i, item := range items {
		prime, err := requireBigInt(item, fieldOr(p.PrimeField, "prime"))
		if err != nil {
			return nil, fmt.Errorf("curve %d: %w", i, err)
		}
		order, err := requireBigInt(item, fieldOr(p.OrderField, "subgroup_order"))
		if err != nil {
			return nil, fmt.Errorf("curve %d: %w", i, err)
		}
		generator, err := requirePoint(item, fieldOr(p.GeneratorField, "generator_point"))
		if err != nil {
			return nil, fmt.Errorf("curve %d: %w", i, err)
		}
		public, err := requirePoint(item, fieldOr(p.PublicField, "public_key"))
		if err != nil {
			return nil, fmt.Errorf("curve %d: %w", i, err)
		}

		record := &CurveRecord{
			Params: &CurveParams{
				P:           prime,
				A:           new(big.Int).Set(a),
				B:           new(big.Int).Set(b),
				Order:       order,
				Generator:   generator,
				PublicPoint: public,
			},
		}

		if bits, err := requireBigInt(item, fieldOr(p.BitsField, "bit_length")); err == nil {
			record.Bits = int(bits.Int64())
		} else {
			record.Bits = prime.BitLen()
		}
		if cofactor, err := requireBigInt(item, fieldOr(p.CofactorField, "cofactor")); err == nil {
			record.Cofactor = cofactor
		}
		if key, err := requireBigInt(item, fieldOr(p.KeyField, "private_key")); err == nil {
			record.KnownKey = key
		}

		if err := record.Params.Validate(); err != nil {
			return nil, fmt.Errorf("curve %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// FindByBits returns the first record with the given bit size.
func FindByBits(records []*CurveRecord, bits int) (*CurveRecord, error) {
	for _, record := range records {
		if record.Bits == bits {
			return record, nil
		}
	}
	return nil, fmt.Errorf("no %d-bit curve in dataset", bits)
}

func requireBigInt(item map[string]interface{}, field string) (*big.Int, error) {
	val, ok := item[field]
	if !ok {
		return nil, fmt.Errorf("missing %s field", field)
	}
	z, err := parseBigInt(val)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return z, nil
}

func requirePoint(item map[string]interface{}, field string) (Point, error) {
	val, ok := item[field]
	if !ok {
		return Point{}, fmt.Errorf("missing %s field", field)
	}
	coords, ok := val.([]interface{})
	if !ok {
		return Point{}, fmt.Errorf("%s must be an [x, y] array", field)
	}
	if len(coords) == 0 {
		return Infinity(), nil
	}
	if len(coords) != 2 {
		return Point{}, fmt.Errorf("%s must have exactly two coordinates", field)
	}
	x, err := parseBigInt(coords[0])
	if err != nil {
		return Point{}, fmt.Errorf("failed to parse %s x: %w", field, err)
	}
	y, err := parseBigInt(coords[1])
	if err != nil {
		return Point{}, fmt.Errorf("failed to parse %s y: %w", field, err)
	}
	return Point{X: x, Y: y}, nil
}

// parseBigInt parses a big integer from the formats the dataset uses:
// decimal or 0x-hex strings, JSON numbers.
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			base = 16
		}
		z, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, fmt.Errorf("invalid number format: %q", v)
		}
		return z, nil

	case json.Number:
		z, ok := new(big.Int).SetString(string(v), 10)
		if !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case float64:
		z, ok := new(big.Int).SetString(fmt.Sprintf("%.0f", v), 10)
		if !ok {
			return nil, fmt.Errorf("invalid number format: %v", v)
		}
		return z, nil

	case int64:
		return big.NewInt(v), nil

	case int:
		return big.NewInt(int64(v)), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}
