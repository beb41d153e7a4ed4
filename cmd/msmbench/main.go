// go run ./cmd/msmbench <exp> [iters] [maxWorkers] [mode]
//   exp        : n = 2^exp
//   iters      : number of iterations (default 5)
//   maxWorkers : worker cap for the engine (default -1: pool width)
//   mode       : "rand" (default) or "const"
//
// Benchmarks the windowed engine against gnark-crypto MultiExp on the same
// inputs. Random inputs and built tables are cached between runs.

package main

import (
	"fmt"
	"math/big"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/Han-16/msmist/internal/cache"
	"github.com/Han-16/msmist/internal/randutil"
	"github.com/Han-16/msmist/internal/reference"
	"github.com/Han-16/msmist/msm"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

func main() {
	logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger().Level(zerolog.DebugLevel))

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/msmbench <exp> [iters] [maxWorkers] [mode]")
		return
	}
	exp, err := strconv.Atoi(os.Args[1])
	must(err)
	if exp < 0 {
		panic("exp must be non-negative")
	}
	n := 1 << exp

	iters := 5
	if len(os.Args) >= 3 {
		iters, err = strconv.Atoi(os.Args[2])
		must(err)
		if iters <= 0 {
			iters = 1
		}
	}

	maxWorkers := -1
	if len(os.Args) >= 4 {
		maxWorkers, err = strconv.Atoi(os.Args[3])
		must(err)
	}

	mode := "rand"
	if len(os.Args) >= 5 {
		mode = strings.ToLower(os.Args[4])
	}
	if mode != "const" && mode != "rand" {
		panic(`mode must be "const" or "rand"`)
	}

	// ---- prepare scalars & points ----
	var scalars []fr.Element
	var points []bn254.G1Affine
	var expected bn254.G1Jac
	haveExpected := false

	switch mode {
	case "const":
		var s fr.Element
		s.SetRandom()
		scalars = make([]fr.Element, n)
		for i := 0; i < n; i++ {
			scalars[i] = s
		}

		_, _, g, _ := bn254.Generators()
		points = make([]bn254.G1Affine, n)
		for i := 0; i < n; i++ {
			points[i] = g
		}

		var ns fr.Element
		ns.SetUint64(uint64(n))
		ns.Mul(&ns, &s)
		nsBytes := ns.Bytes()
		nsBig := new(big.Int).SetBytes(nsBytes[:])

		expected.FromAffine(&g)
		expected.ScalarMultiplication(&expected, nsBig)
		haveExpected = true

	case "rand":
		// Large draws are slow; reuse them across runs via the disk cache.
		scalars, points, _, err = cache.LoadOrCreateInputs(".", exp, n,
			func(n int) ([]fr.Element, error) { return randutil.RandomScalarsPar(n, 0) },
			func(n int) ([]bn254.G1Affine, error) { return randutil.RandomPointsG1Par(n, 0) },
		)
		must(err)
	}

	// ---- table: cold build, then cache hit ----
	tables, err := cache.NewTableCache(2)
	must(err)

	coldStart := time.Now()
	table := tables.GetOrBuild(points, msm.DefaultWindowSize)
	cold := time.Since(coldStart)

	hitStart := time.Now()
	table = tables.GetOrBuild(points, msm.DefaultWindowSize)
	hit := time.Since(hitStart)

	inputs := msm.SliceInputs(msm.ScalarsFromFr(scalars))

	// ---- engine ----
	var engBest, engTotal time.Duration
	var engRes bn254.G1Jac
	for it := 0; it < iters; it++ {
		start := time.Now()
		must(msm.MultiscalarPar(&engRes, maxWorkers, inputs, table, n, msm.ScalarBits))
		elapsed := time.Since(start)

		if haveExpected && !engRes.Equal(&expected) {
			panic(fmt.Sprintf("iter %d: multiscalar result mismatch with (n*s)*g", it))
		}
		runtime.KeepAlive(engRes)

		if it == 0 || elapsed < engBest {
			engBest = elapsed
		}
		engTotal += elapsed
	}
	engAvg := time.Duration(int64(engTotal) / int64(iters))

	// ---- gnark-crypto baseline ----
	var refBest, refTotal time.Duration
	var refRes bn254.G1Affine
	for it := 0; it < iters; it++ {
		start := time.Now()
		refRes, err = reference.MultiExpMSM(points, scalars)
		must(err)
		elapsed := time.Since(start)
		runtime.KeepAlive(refRes)

		if it == 0 || elapsed < refBest {
			refBest = elapsed
		}
		refTotal += elapsed
	}
	refAvg := time.Duration(int64(refTotal) / int64(iters))

	// Both paths must agree on the sum.
	var engAff bn254.G1Affine
	engAff.FromJacobian(&engRes)
	if !engAff.Equal(&refRes) {
		panic("engine and MultiExp disagree")
	}

	// ---- summary ----
	workers := maxWorkers
	if workers <= 0 {
		workers = msm.DefaultPool().Workers()
	}
	filename := fmt.Sprintf("msmbench_%s_workers%d.txt", mode, workers)
	out, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	must(err)
	defer out.Close()

	if fi, err := out.Stat(); err == nil && fi.Size() == 0 {
		fmt.Fprintf(out, "# Windowed MSM vs gnark-crypto MultiExp (mode=%s, workers=%d)\n", mode, workers)
		fmt.Fprintln(out, "# exp | n | iters | TableCold | TableHit | EngBest | EngAvg | RefBest | RefAvg")
	}
	fmt.Fprintf(out, "%d | %d | %d | %s | %s | %s | %s | %s | %s\n",
		exp, n, iters, cold, hit, engBest, engAvg, refBest, refAvg)

	fmt.Printf("Appended: mode=%s, workers=%d, exp=%d, iters=%d\n", mode, workers, exp, iters)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
