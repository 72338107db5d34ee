package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ytget/md-wr/internal/model"
)

// SchemaFileSuffix follows the schema id in installed schema file names
const SchemaFileSuffix = ".schema.yaml"

//go:embed schemas/*.schema.yaml
var bundledSchemas embed.FS

// Range bounds an integer key, inclusive on both ends
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// SchemaKey declares one key of a settings schema
type SchemaKey struct {
	Name    string    `yaml:"name"`
	Type    ValueType `yaml:"type"`
	Default string    `yaml:"default"`
	Range   *Range    `yaml:"range,omitempty"`
	Summary string    `yaml:"summary,omitempty"`
}

// Schema is the set of keys a structured backend accepts
type Schema struct {
	ID   string      `yaml:"id"`
	Keys []SchemaKey `yaml:"keys"`

	index map[string]SchemaKey
}

// ParseSchema decodes and validates a YAML schema document
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	if s.ID == "" {
		return nil, errors.New("schema has no id")
	}

	s.index = make(map[string]SchemaKey, len(s.Keys))
	for _, k := range s.Keys {
		if k.Name == "" {
			return nil, fmt.Errorf("schema %s: key without name", s.ID)
		}
		if _, dup := s.index[k.Name]; dup {
			return nil, fmt.Errorf("schema %s: duplicate key %q", s.ID, k.Name)
		}
		if !k.Type.Valid() {
			return nil, fmt.Errorf("schema %s: key %q has unknown type %q", s.ID, k.Name, k.Type)
		}
		if k.Range != nil {
			if k.Type != TypeInt {
				return nil, fmt.Errorf("schema %s: range on non-integer key %q", s.ID, k.Name)
			}
			if k.Range.Min > k.Range.Max {
				return nil, fmt.Errorf("schema %s: key %q has empty range", s.ID, k.Name)
			}
		}
		if err := k.checkDefault(); err != nil {
			return nil, fmt.Errorf("schema %s: %w", s.ID, err)
		}
		s.index[k.Name] = k
	}

	return &s, nil
}

// Key looks up a declared key
func (s *Schema) Key(name string) (SchemaKey, bool) {
	k, ok := s.index[name]
	return k, ok
}

// Check returns the declared key if it exists with type t
func (s *Schema) Check(name string, t ValueType) (SchemaKey, error) {
	k, ok := s.index[name]
	if !ok {
		return SchemaKey{}, fmt.Errorf("%w: key %q is not in schema %s", ErrOperationRejected, name, s.ID)
	}
	if k.Type != t {
		return SchemaKey{}, fmt.Errorf("%w: key %q is %s, not %s", ErrOperationRejected, name, k.Type, t)
	}
	return k, nil
}

// BoolDefault returns the declared default as a boolean
func (k SchemaKey) BoolDefault() bool {
	v, _ := model.ParseBool(k.Default)
	return v
}

// IntDefault returns the declared default as an integer
func (k SchemaKey) IntDefault() int {
	v, _ := strconv.Atoi(k.Default)
	return v
}

// CheckInt rejects values outside the declared range
func (k SchemaKey) CheckInt(v int) error {
	if k.Range == nil {
		return nil
	}
	if v < k.Range.Min || v > k.Range.Max {
		return fmt.Errorf("%w: %d is outside [%d, %d] for key %q", ErrOperationRejected, v, k.Range.Min, k.Range.Max, k.Name)
	}
	return nil
}

func (k SchemaKey) checkDefault() error {
	switch k.Type {
	case TypeBool:
		if k.Default == "" {
			return nil
		}
		if _, err := model.ParseBool(k.Default); err != nil {
			return fmt.Errorf("key %q: bad default %q", k.Name, k.Default)
		}
	case TypeInt:
		if k.Default == "" {
			return nil
		}
		v, err := strconv.Atoi(k.Default)
		if err != nil {
			return fmt.Errorf("key %q: bad default %q", k.Name, k.Default)
		}
		if k.CheckInt(v) != nil {
			return fmt.Errorf("key %q: default %d out of range", k.Name, v)
		}
	}
	return nil
}

// BundledSchema returns the schema shipped inside the binary for id
func BundledSchema(id string) (*Schema, error) {
	data, err := bundledSchemas.ReadFile("schemas/" + id + SchemaFileSuffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s is not bundled", ErrSchemaNotFound, id)
		}
		return nil, err
	}
	return ParseSchema(data)
}

// LookupSchema loads {dir}/{id}.schema.yaml from the first directory that has it
func LookupSchema(dirs []string, id string) (*Schema, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, id+SchemaFileSuffix))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read schema %s: %w", id, err)
		}

		s, err := ParseSchema(data)
		if err != nil {
			return nil, err
		}
		if s.ID != id {
			return nil, fmt.Errorf("schema file for %s declares id %s", id, s.ID)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, id)
}

// LoadSchema searches installed schema directories first, then the bundled copy when allowed
func LoadSchema(id string, dirs []string, allowBundled bool) (*Schema, error) {
	s, err := LookupSchema(dirs, id)
	if err == nil || !errors.Is(err, ErrSchemaNotFound) {
		return s, err
	}
	if !allowBundled {
		return nil, err
	}
	return BundledSchema(id)
}
