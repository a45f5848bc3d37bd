// Package manifest loads reference-stream manifests: HCL files naming an
// engine configuration and the draws it is expected to produce. The verify
// tool uses them to pin the engine against sequences recorded from the
// reference environment.
package manifest

import (
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/kristoforusbryant/dbarts/rng"
)

// defaultTolerance is the per-value bound applied when a stream does not set
// its own. Reference values are usually recorded with seven significant
// digits.
const defaultTolerance = 1e-7

// Manifest is a collection of reference streams
type Manifest struct {
	Streams []Stream `hcl:"stream,block"`
}

// Stream pins one engine configuration to recorded draws
type Stream struct {
	Name      string    `hcl:"name,label"`
	Algorithm string    `hcl:"algorithm"`
	Normal    string    `hcl:"normal,optional"`
	Seed      int64     `hcl:"seed"`
	Skip      int       `hcl:"skip,optional"`
	Uniforms  []float64 `hcl:"uniforms,optional"`
	Normals   []float64 `hcl:"normals,optional"`
	Tolerance float64   `hcl:"tolerance,optional"`
}

// Load parses a manifest from an HCL file
func Load(filename string) (*Manifest, error) {
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", filename, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var m Manifest
	diags = gohcl.DecodeBody(file.Body, nil, &m)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest: %s", diags.Error())
	}

	for i := range m.Streams {
		if err := m.Streams[i].validate(); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func (s *Stream) validate() error {
	if _, err := rng.ParseAlgorithm(s.Algorithm); err != nil {
		return fmt.Errorf("stream %q: %w", s.Name, err)
	}
	if s.Normal != "" {
		if _, err := rng.ParseNormalMethod(s.Normal); err != nil {
			return fmt.Errorf("stream %q: %w", s.Name, err)
		}
	}
	if len(s.Uniforms) == 0 && len(s.Normals) == 0 {
		return fmt.Errorf("stream %q: no expected values", s.Name)
	}
	if s.Tolerance < 0 {
		return fmt.Errorf("stream %q: negative tolerance", s.Name)
	}
	return nil
}

// Verify replays the stream's configuration and compares the engine's output
// against the recorded values. It returns the first mismatch found.
func (s *Stream) Verify() error {
	alg, err := rng.ParseAlgorithm(s.Algorithm)
	if err != nil {
		return fmt.Errorf("stream %q: %w", s.Name, err)
	}
	method := rng.Inversion
	if s.Normal != "" {
		method, err = rng.ParseNormalMethod(s.Normal)
		if err != nil {
			return fmt.Errorf("stream %q: %w", s.Name, err)
		}
	}

	tol := s.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}

	eng, err := rng.New(alg, method, uint32(s.Seed))
	if err != nil {
		return fmt.Errorf("stream %q: %w", s.Name, err)
	}
	for i := 0; i < s.Skip; i++ {
		if _, err := eng.Uniform(); err != nil {
			return fmt.Errorf("stream %q: %w", s.Name, err)
		}
	}

	for i, want := range s.Uniforms {
		got, err := eng.Uniform()
		if err != nil {
			return fmt.Errorf("stream %q: %w", s.Name, err)
		}
		if math.Abs(got-want) > tol {
			return fmt.Errorf("stream %q: uniform[%d] = %.17g, want %.17g (tolerance %g)",
				s.Name, i, got, want, tol)
		}
	}
	for i, want := range s.Normals {
		got, err := eng.Normal()
		if err != nil {
			return fmt.Errorf("stream %q: %w", s.Name, err)
		}
		if math.Abs(got-want) > tol {
			return fmt.Errorf("stream %q: normal[%d] = %.17g, want %.17g (tolerance %g)",
				s.Name, i, got, want, tol)
		}
	}
	return nil
}
