// go run ./cmd/msmtest <exp> [iters] [maxWorkers] [mode]
//   exp        : n = 2^exp
//   iters      : number of iterations (default 5)
//   maxWorkers : worker cap for the engine (default -1: pool width)
//   mode       : "const" (default) or "rand"

package main

import (
	"fmt"
	"math/big"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/Han-16/msmist/internal/randutil"
	"github.com/Han-16/msmist/internal/reference"
	"github.com/Han-16/msmist/msm"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

func main() {
	logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger())

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/msmtest <exp> [iters] [maxWorkers] [mode]")
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

	mode := "const"
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

	switch mode {
	case "const":
		// scalars = [s, ..., s], points = [g, ..., g], expected = (n*s)*g
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

	case "rand":
		scalars, err = randutil.RandomScalarsPar(n, 0)
		must(err)
		points, err = randutil.RandomPointsG1Par(n, 0)
		must(err)

		// Cross-check target: gnark-crypto's own MSM.
		var ref bn254.G1Affine
		ref, err = reference.MultiExpMSM(points, scalars)
		must(err)
		expected.FromAffine(&ref)
	}

	// ---- precompute tables ----
	buildStart := time.Now()
	table := msm.Precompute[bn254.G1Affine, bn254.G1Jac](points, msm.DefaultWindowSize)
	buildTook := time.Since(buildStart)

	inputs := msm.SliceInputs(msm.ScalarsFromFr(scalars))

	// ---- verify across iterations ----
	var best, total time.Duration
	for it := 0; it < iters; it++ {
		start := time.Now()
		var res bn254.G1Jac
		must(msm.MultiscalarPar(&res, maxWorkers, inputs, table, n, msm.ScalarBits))
		elapsed := time.Since(start)

		if !res.Equal(&expected) {
			panic(fmt.Sprintf("iter %d: multiscalar result mismatch", it))
		}
		runtime.KeepAlive(res)

		if it == 0 || elapsed < best {
			best = elapsed
		}
		total += elapsed
	}
	avg := time.Duration(int64(total) / int64(iters))

	// ---- summary ----
	workers := maxWorkers
	if workers <= 0 {
		workers = msm.DefaultPool().Workers()
	}
	filename := fmt.Sprintf("%s_workers%d.txt", mode, workers)
	out, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	must(err)
	defer out.Close()

	if fi, err := out.Stat(); err == nil && fi.Size() == 0 {
		fmt.Fprintf(out, "# Windowed MSM Results (mode=%s, workers=%d)\n", mode, workers)
		fmt.Fprintln(out, "# exp | n | iters | Precompute | Best | Avg")
	}
	fmt.Fprintf(out, "%d | %d | %d | %s | %s | %s\n", exp, n, iters, buildTook, best, avg)

	fmt.Printf("OK: mode=%s, workers=%d, exp=%d, iters=%d\n", mode, workers, exp, iters)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
