package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ilyanormand/fwn-renta/internal/common"
)

// validateAgainstSchema validates raw profile JSON against the embedded schema.
func validateAgainstSchema(raw []byte) error {
	b, err := json.Marshal(BuildProfileJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("profile.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("profile.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("profile does not match schema: %w", err)
	}
	return nil
}

// Parse decodes, schema-validates, and compiles a profile from JSON bytes.
func Parse(raw []byte) (*Profile, error) {
	if err := validateAgainstSchema(raw); err != nil {
		return nil, common.ConfigError("invalid profile", err)
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, common.ConfigError("decode profile", err)
	}
	if p.Vendor.Currency == "" {
		p.Vendor.Currency = "EUR"
	}
	if p.Vendor.Language == "" {
		p.Vendor.Language = "fr"
	}
	if err := p.Compile(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads and parses one profile file.
func LoadFile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	p, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Store loads profiles from a directory of JSON files, keyed by file stem.
type Store struct {
	dir      string
	logger   *slog.Logger
	profiles map[string]*Profile
}

func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger, profiles: make(map[string]*Profile)}
}

// LoadAll eagerly parses every *.json profile in the store directory.
// Parsing failures are fatal: a broken profile must not wait for its first
// document to surface.
func (s *Store) LoadAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read profile dir %s: %w", s.dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		p, err := LoadFile(path)
		if err != nil {
			return err
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		s.profiles[id] = p
		s.logger.Info("profile loaded", "id", id, "vendor", p.Vendor.Name, "strategy", p.Table.Strategy)
	}
	return nil
}

// Get returns the profile with the given id.
func (s *Store) Get(id string) (*Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", id, common.ErrNotFound)
	}
	return p, nil
}

// IDs lists the loaded profile ids.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	return ids
}
