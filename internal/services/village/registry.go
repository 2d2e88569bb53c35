package village

import (
	"bufio"
	"os"
	"strings"
)

// defaultNames is the built-in list of villages taking part in the cup
var defaultNames = []string{
	"Badan",
	"Al-Hamra",
	"Al-Khadra",
	"Al-Rawda",
	"Al-Mansoura",
	"Al-Sharqiya",
	"Al-Gharbiya",
	"Wadi Al-Nakhil",
}

// Registry is the fixed, ordered list of villages players can register for.
// It is immutable once built.
type Registry struct {
	names []string
	index map[string]struct{}
}

// Default returns the built-in registry
func Default() *Registry {
	return New(nil)
}

// New builds a registry from names, keeping the first occurrence of each
// trimmed, non-empty name. An empty list yields the built-in registry.
func New(names []string) *Registry {
	r := &Registry{index: make(map[string]struct{})}
	for _, name := range names {
		r.add(name)
	}
	if len(r.names) == 0 {
		for _, name := range defaultNames {
			r.add(name)
		}
	}
	return r
}

// LoadFromFile builds a registry from a file with one village per line.
// Blank lines and lines starting with '#' are skipped.
func LoadFromFile(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return New(names), nil
}

func (r *Registry) add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, ok := r.index[name]; ok {
		return
	}
	r.index[name] = struct{}{}
	r.names = append(r.names, name)
}

// Names returns the villages in registry order
func (r *Registry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// Contains reports whether name is exactly a registered village
func (r *Registry) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Len returns the number of villages
func (r *Registry) Len() int {
	return len(r.names)
}
