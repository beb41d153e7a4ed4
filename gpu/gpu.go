package gpu

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark/logger"
)

// Environment switches:
//
//	MSMIST_NO_GPU                     disable accelerator use entirely
//	MSMIST_GPUS=0,5                   only use devices on these PCI bus IDs
//	MSMIST_CUSTOM_GPU=A100:6912,...   extend the core-count registry
const (
	EnvNoGPU     = "MSMIST_NO_GPU"
	EnvGPUs      = "MSMIST_GPUS"
	EnvCustomGPU = "MSMIST_CUSTOM_GPU"
)

var (
	ErrDisabled      = errors.New("gpu accelerator is disabled")
	ErrUnknownDevice = errors.New("device unknown")
)

// Device is the handle an accelerator backend hands the resolver: identity,
// bus position and global memory. The multiscalar engine never touches this
// package; backends consult it when deciding where to place work.
type Device interface {
	Name() string
	BusID() (uint32, error)
	GlobalMemory() (uint64, error)
}

// StaticDevice is a Device with fixed attributes, for static configs and
// tests.
type StaticDevice struct {
	DeviceName string
	Bus        uint32
	MemBytes   uint64
}

func (d StaticDevice) Name() string                  { return d.DeviceName }
func (d StaticDevice) BusID() (uint32, error)        { return d.Bus, nil }
func (d StaticDevice) GlobalMemory() (uint64, error) { return d.MemBytes, nil }

// Shipping NVIDIA models and their CUDA core counts; device queries do not
// expose the number directly.
var coreCounts = map[string]int{
	"TITAN RTX": 4608,

	"Tesla V100": 5120,
	"Tesla P100": 3584,
	"Tesla T4":   2560,

	"GeForce RTX 2080 Ti":    4352,
	"GeForce RTX 2080 SUPER": 3072,
	"GeForce RTX 2080":       2944,
	"GeForce RTX 2070 SUPER": 2560,

	"GeForce GTX 1080 Ti":    3584,
	"GeForce GTX 1080":       2560,
	"GeForce GTX 2060":       1920,
	"GeForce GTX 1660 Ti":    1536,
	"GeForce GTX 1060":       1280,
	"GeForce GTX 1650 SUPER": 1280,
	"GeForce GTX 1650":       896,
}

// Disabled reports the MSMIST_NO_GPU kill switch.
func Disabled() bool {
	_, ok := os.LookupEnv(EnvNoGPU)
	return ok
}

// Usable applies the kill switch and the bus-ID filter to a backend's device
// list.
func Usable(devs []Device) ([]Device, error) {
	if Disabled() {
		return nil, ErrDisabled
	}
	return Filter(devs)
}

// Filter keeps the devices allowed by MSMIST_GPUS. With the variable unset,
// every device passes.
func Filter(devs []Device) ([]Device, error) {
	allowed, err := busAllowSet()
	if err != nil {
		return nil, err
	}
	if allowed == nil {
		return devs, nil
	}
	out := make([]Device, 0, len(devs))
	for _, d := range devs {
		bus, err := d.BusID()
		if err != nil {
			return nil, err
		}
		if allowed.Test(uint(bus)) {
			out = append(out, d)
		}
	}
	return out, nil
}

// PCI bus IDs live in a small range; 16 bits keeps the allow-set tiny.
const maxBusID = 1 << 16

func busAllowSet() (*bitset.BitSet, error) {
	v, ok := os.LookupEnv(EnvGPUs)
	if !ok || v == "" {
		return nil, nil
	}
	set := bitset.New(64)
	for _, s := range strings.Split(v, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid %s bus id %q: %w", EnvGPUs, s, err)
		}
		if id >= maxBusID {
			return nil, fmt.Errorf("%s bus id %d out of range", EnvGPUs, id)
		}
		set.Set(uint(id))
	}
	return set, nil
}

// CoreCount resolves the compute-unit count for a device, consulting
// MSMIST_CUSTOM_GPU overrides before the built-in registry.
func CoreCount(d Device) (int, error) {
	custom, err := customCoreCounts()
	if err != nil {
		return 0, err
	}
	if cores, ok := custom[d.Name()]; ok {
		return cores, nil
	}
	if cores, ok := coreCounts[d.Name()]; ok {
		return cores, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownDevice, d.Name())
}

var customLogOnce sync.Once

// customCoreCounts parses MSMIST_CUSTOM_GPU ("name:cores,name:cores").
func customCoreCounts() (map[string]int, error) {
	v, ok := os.LookupEnv(EnvCustomGPU)
	if !ok || v == "" {
		return nil, nil
	}
	out := make(map[string]int)
	for _, card := range strings.Split(v, ",") {
		name, cores, ok := strings.Cut(card, ":")
		if !ok {
			return nil, fmt.Errorf("invalid %s entry %q", EnvCustomGPU, card)
		}
		name = strings.TrimSpace(name)
		n, err := strconv.Atoi(strings.TrimSpace(cores))
		if err != nil {
			return nil, fmt.Errorf("invalid %s cores for %q: %w", EnvCustomGPU, name, err)
		}
		out[name] = n
	}
	customLogOnce.Do(func() {
		log := logger.Logger()
		for name, n := range out {
			log.Info().Str("device", name).Int("cores", n).Msg("adding custom GPU to core registry")
		}
	})
	return out, nil
}
