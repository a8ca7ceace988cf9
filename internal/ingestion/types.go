// Package ingestion defines the corpus file format read by the CLI and the
// report produced after loading it into a server.
package ingestion

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one document in a corpus file. An empty Status means ACTUAL.
type Entry struct {
	ID      int    `yaml:"id"`
	Text    string `yaml:"text"`
	Status  string `yaml:"status,omitempty"`
	Ratings []int  `yaml:"ratings,omitempty"`
}

// Corpus is the top-level YAML document:
//
//	documents:
//	  - id: 1
//	    text: funny pet and nasty rat
//	    ratings: [7, 2, 7]
type Corpus struct {
	Documents []Entry `yaml:"documents"`
}

// Rejection records why an entry was not indexed.
type Rejection struct {
	ID     int    `yaml:"id"`
	Reason string `yaml:"reason"`
}

// Report is returned after a corpus has been ingested.
type Report struct {
	Indexed  int         `yaml:"indexed"`
	Rejected []Rejection `yaml:"rejected,omitempty"`
}

// Load reads a corpus file from path.
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus %s: %w", path, err)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return c, nil
}

// Decode parses a corpus, rejecting unknown fields. An empty input yields
// an empty corpus.
func Decode(r io.Reader) (*Corpus, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Corpus
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding corpus: %w", err)
	}
	return &c, nil
}
