package qecdlp

import (
	"math/big"
)

// curvesFixture is the benchmark dataset path relative to this package.
const curvesFixture = "../../fixtures/curves.json"

// sevenBitKey is the known discrete log of QDay7Bit's public point.
var sevenBitKey = big.NewInt(56)

// loadFixtureCurves parses the benchmark dataset with default settings.
func loadFixtureCurves() ([]*CurveRecord, error) {
	parser := &JSONParser{}
	return parser.ParseCurves(curvesFixture)
}
