// Package file reads and writes automata as YAML definition files.
//
// A file holds one automaton or a stream of them separated by "---".
// Transitions are either mappings or the compact "from -> to: label" form:
//
//	name: even-as
//	kind: fsa
//	states: [{id: 0, label: even}, {id: 1, label: odd}]
//	initial: 0
//	finals: [0]
//	transitions:
//	  - "0 -> 1: a"
//	  - {from: 1, to: 0, symbol: a}
package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/internal/dto"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Definition is a named automaton read from a definition file.
type Definition struct {
	Name      string
	Automaton *domain.Automaton
}

// DecodeOption configures decoding.
type DecodeOption func(*decoder)

// WithLambda sets the symbol that spells epsilon in labels (default "λ").
func WithLambda(symbol string) DecodeOption {
	return func(d *decoder) {
		d.lambda = symbol
	}
}

// WithDefaultName names documents that carry no name of their own.
// Further unnamed documents of the same stream get a "-N" suffix.
func WithDefaultName(name string) DecodeOption {
	return func(d *decoder) {
		d.defaultName = name
	}
}

type decoder struct {
	lambda      string
	defaultName string
}

// Decode reads every automaton of a YAML stream.
func Decode(r io.Reader, opts ...DecodeOption) ([]Definition, error) {
	d := &decoder{lambda: domain.DefaultLambda, defaultName: "automaton"}
	for _, opt := range opts {
		opt(d)
	}

	var defs []Definition
	dec := yaml.NewDecoder(r)
	for i := 0; ; i++ {
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if raw == nil {
			continue
		}

		doc, err := d.document(raw)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if doc.Name == "" {
			doc.Name = d.defaultName
			if len(defs) > 0 {
				doc.Name = fmt.Sprintf("%s-%d", d.defaultName, i)
			}
		}
		a, err := doc.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		defs = append(defs, Definition{Name: doc.Name, Automaton: a})
	}
	return defs, nil
}

// document expands compact transitions and decodes raw into a Document.
func (d *decoder) document(raw map[string]any) (dto.Document, error) {
	kind, _ := raw["kind"].(string)
	kind = strings.ToLower(kind)

	if items, ok := raw["transitions"].([]any); ok {
		expanded := make([]any, len(items))
		for i, item := range items {
			switch v := item.(type) {
			case string:
				t, err := dto.ParseTransition(domain.Kind(kind), v)
				if err != nil {
					return dto.Document{}, err
				}
				expanded[i] = t
			case map[string]any:
				expanded[i] = v
			default:
				return dto.Document{}, fmt.Errorf("invalid transition definition type: %T", v)
			}
		}
		raw["transitions"] = expanded
	}

	var doc dto.Document
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return dto.Document{}, fmt.Errorf("failed to decode automaton: %w", err)
	}
	doc.StripLambda(d.lambda)
	return doc, nil
}

// ReadFile decodes a definition file. Unnamed documents are named after the
// file without its extension.
func ReadFile(path string, opts ...DecodeOption) ([]Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition file: %w", err)
	}
	defer f.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	opts = append([]DecodeOption{WithDefaultName(base)}, opts...)
	defs, err := Decode(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// ReadOne decodes a definition file and returns the automaton named name, or
// the first one when name is empty.
func ReadOne(path, name string, opts ...DecodeOption) (Definition, error) {
	defs, err := ReadFile(path, opts...)
	if err != nil {
		return Definition{}, err
	}
	for _, def := range defs {
		if name == "" || def.Name == name {
			return def, nil
		}
	}
	if name == "" {
		return Definition{}, fmt.Errorf("%s: no automaton defined: %w", path, domain.ErrAutomatonNotFound)
	}
	return Definition{}, fmt.Errorf("%s: automaton %q: %w", path, name, domain.ErrAutomatonNotFound)
}

// Encode writes a as a single YAML document.
func Encode(w io.Writer, name string, a *domain.Automaton) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dto.FromDomain(name, a)); err != nil {
		return fmt.Errorf("failed to encode automaton: %w", err)
	}
	return enc.Close()
}
