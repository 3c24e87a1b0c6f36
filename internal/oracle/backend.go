package oracle

import (
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/agbru/bigcheck/internal/model"
)

// Backend evaluates one operation on canonical decimal operands. Callers
// guarantee that b is non-zero for division and remainder.
type Backend interface {
	Name() string
	Compute(a string, op model.Operator, b string) (string, error)
}

// BigBackend is the default backend, built on math/big.
type BigBackend struct{}

// Name returns the registry key of the backend.
func (BigBackend) Name() string { return "big" }

// Compute implements Backend.
func (BigBackend) Compute(a string, op model.Operator, b string) (string, error) {
	x, ok := new(big.Int).SetString(a, 10)
	if !ok {
		return "", fmt.Errorf("invalid operand %q", a)
	}
	y, ok := new(big.Int).SetString(b, 10)
	if !ok {
		return "", fmt.Errorf("invalid operand %q", b)
	}

	switch op {
	case model.OpAdd:
		return new(big.Int).Add(x, y).String(), nil
	case model.OpSub:
		return new(big.Int).Sub(x, y).String(), nil
	case model.OpMul:
		return new(big.Int).Mul(x, y).String(), nil
	case model.OpDiv, model.OpMod:
		q, r, err := TruncatingDivMod(x, y)
		if err != nil {
			return "", err
		}
		if op == model.OpDiv {
			return q.String(), nil
		}
		return r.String(), nil
	}
	return "", fmt.Errorf("unsupported operator %q", op)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Backend{"big": BigBackend{}}
)

// Register makes a backend available by name. Optional backends call it from
// an init function guarded by a build tag.
func Register(b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[b.Name()] = b
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown oracle backend %q (available: %v)", name, listLocked())
	}
	return b, nil
}

// List returns the sorted names of the registered backends.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return listLocked()
}

func listLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
