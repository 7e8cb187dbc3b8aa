package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/proofscope/proofscope/pkg/depgraph"
)

// Marshal converts a graph to indented JSON bytes with nodes sorted by
// ID, so equal graphs always marshal to equal bytes.
func Marshal(g *depgraph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(g *depgraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(g, f)
}

// Write writes a graph as JSON to an io.Writer.
func Write(g *depgraph.Graph, w io.Writer) error {
	return writeTo(g, w)
}

// ReadFile reads a JSON file and returns the decoded graph.
func ReadFile(path string) (*depgraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := readFrom(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Read decodes a JSON graph from an io.Reader.
func Read(r io.Reader) (*depgraph.Graph, error) {
	return readFrom(r)
}

func writeTo(g *depgraph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*depgraph.Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(doc)
}
