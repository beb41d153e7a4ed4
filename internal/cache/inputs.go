package cache

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/logger"
)

// Benchmark inputs are expensive to regenerate at large exponents, so they
// are persisted under <dir>/data once drawn.

type scalarRecord struct {
	Exp     int      `json:"exp"`
	N       int      `json:"n"`
	Scalars []string `json:"scalars_hex"` // hex (no 0x prefix)
}

type pointRecord struct {
	Exp    int      `json:"exp"`
	N      int      `json:"n"`
	Points []string `json:"points_b64"` // base64(G1Affine.Marshal())
}

// ScalarPath returns the scalar cache file for exponent exp under dir,
// creating directories as needed.
func ScalarPath(dir string, exp int) (string, error) {
	d := filepath.Join(dir, "data", "scalars")
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", fmt.Errorf("make scalars dir: %w", err)
	}
	return filepath.Join(d, fmt.Sprintf("exp_%d_scalar.json", exp)), nil
}

// PointPath is ScalarPath for points.
func PointPath(dir string, exp int) (string, error) {
	d := filepath.Join(dir, "data", "points")
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", fmt.Errorf("make points dir: %w", err)
	}
	return filepath.Join(d, fmt.Sprintf("exp_%d_point.json", exp)), nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func SaveScalars(path string, exp int, scalars []fr.Element) error {
	rec := scalarRecord{
		Exp:     exp,
		N:       len(scalars),
		Scalars: make([]string, len(scalars)),
	}
	for i := range scalars {
		rec.Scalars[i] = scalars[i].BigInt(new(big.Int)).Text(16)
	}
	return writeJSON(path, &rec)
}

func LoadScalars(path string) ([]fr.Element, int, error) {
	var rec scalarRecord
	if err := readJSON(path, &rec); err != nil {
		return nil, 0, err
	}
	if rec.N != len(rec.Scalars) {
		return nil, rec.Exp, fmt.Errorf("scalar cache malformed: n=%d, got %d scalars", rec.N, len(rec.Scalars))
	}
	out := make([]fr.Element, rec.N)
	for i := range out {
		b, ok := new(big.Int).SetString(rec.Scalars[i], 16)
		if !ok {
			return nil, rec.Exp, fmt.Errorf("invalid scalar hex at %d", i)
		}
		out[i].SetBigInt(b)
	}
	return out, rec.Exp, nil
}

func SavePoints(path string, exp int, points []bn254.G1Affine) error {
	rec := pointRecord{
		Exp:    exp,
		N:      len(points),
		Points: make([]string, len(points)),
	}
	for i := range points {
		rec.Points[i] = base64.StdEncoding.EncodeToString(points[i].Marshal())
	}
	return writeJSON(path, &rec)
}

func LoadPoints(path string) ([]bn254.G1Affine, int, error) {
	var rec pointRecord
	if err := readJSON(path, &rec); err != nil {
		return nil, 0, err
	}
	if rec.N != len(rec.Points) {
		return nil, rec.Exp, fmt.Errorf("point cache malformed: n=%d, got %d points", rec.N, len(rec.Points))
	}
	out := make([]bn254.G1Affine, rec.N)
	for i := range out {
		raw, err := base64.StdEncoding.DecodeString(rec.Points[i])
		if err != nil {
			return nil, rec.Exp, fmt.Errorf("invalid point b64 at %d: %w", i, err)
		}
		if err := out[i].Unmarshal(raw); err != nil {
			return nil, rec.Exp, fmt.Errorf("unmarshal point %d: %w", i, err)
		}
	}
	return out, rec.Exp, nil
}

// LoadOrCreateScalars loads 2^exp cached scalars from dir, regenerating and
// saving them when the cache is missing or stale. The bool reports a cache
// hit.
func LoadOrCreateScalars(dir string, exp, n int, genScalars func(int) ([]fr.Element, error)) ([]fr.Element, bool, error) {
	log := logger.Logger()

	spath, err := ScalarPath(dir, exp)
	if err != nil {
		return nil, false, err
	}

	if fi, err := os.Stat(spath); err == nil && !fi.IsDir() {
		sc, fileExp, err := LoadScalars(spath)
		if err == nil && len(sc) == n && fileExp == exp {
			log.Debug().Int("exp", exp).Msg("scalar cache hit")
			return sc, true, nil
		}
		log.Debug().Int("exp", exp).Msg("scalar cache stale; regenerating")
	}

	scalars, err := genScalars(n)
	if err != nil {
		return nil, false, err
	}
	if err := SaveScalars(spath, exp, scalars); err != nil {
		return nil, false, err
	}
	log.Debug().Str("path", spath).Msg("scalars saved")
	return scalars, false, nil
}

// LoadOrCreatePoints is LoadOrCreateScalars for points.
func LoadOrCreatePoints(dir string, exp, n int, genPoints func(int) ([]bn254.G1Affine, error)) ([]bn254.G1Affine, bool, error) {
	log := logger.Logger()

	ppath, err := PointPath(dir, exp)
	if err != nil {
		return nil, false, err
	}

	if fi, err := os.Stat(ppath); err == nil && !fi.IsDir() {
		pt, fileExp, err := LoadPoints(ppath)
		if err == nil && len(pt) == n && fileExp == exp {
			log.Debug().Int("exp", exp).Msg("point cache hit")
			return pt, true, nil
		}
		log.Debug().Int("exp", exp).Msg("point cache stale; regenerating")
	}

	points, err := genPoints(n)
	if err != nil {
		return nil, false, err
	}
	if err := SavePoints(ppath, exp, points); err != nil {
		return nil, false, err
	}
	log.Debug().Str("path", ppath).Msg("points saved")
	return points, false, nil
}

// LoadOrCreateInputs resolves scalars and points together; the bool reports
// whether both came from cache.
func LoadOrCreateInputs(dir string, exp, n int,
	genScalars func(int) ([]fr.Element, error),
	genPoints func(int) ([]bn254.G1Affine, error),
) ([]fr.Element, []bn254.G1Affine, bool, error) {

	sc, sHit, err := LoadOrCreateScalars(dir, exp, n, genScalars)
	if err != nil {
		return nil, nil, false, err
	}
	pt, pHit, err := LoadOrCreatePoints(dir, exp, n, genPoints)
	if err != nil {
		return nil, nil, false, err
	}
	return sc, pt, sHit && pHit, nil
}
