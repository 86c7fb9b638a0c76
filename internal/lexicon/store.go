// Package lexicon loads and saves the extra legal vocabulary fed to the
// quality scorer.
package lexicon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/pdftext/internal/fileutils"
	"fjacquet/pdftext/internal/logging"
	"fjacquet/pdftext/internal/models"
	"fjacquet/pdftext/internal/textutils"
)

// DefaultFile is the lexicon file looked up when none is configured.
const DefaultFile = "lexicon.yaml"

// Lexicon is the on-disk vocabulary. Groups let a file organize terms by
// topic; every group contributes to the same flat term list.
type Lexicon struct {
	Terms  []string            `yaml:"terms,omitempty"`
	Groups map[string][]string `yaml:"groups,omitempty"`
}

// AllTerms returns the lower-cased, de-duplicated terms of the lexicon:
// Terms first, then groups in name order.
func (l Lexicon) AllTerms() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(terms []string) {
		for _, t := range terms {
			t = strings.ToLower(strings.Join(strings.Fields(t), " "))
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}

	add(l.Terms)
	names := make([]string, 0, len(l.Groups))
	for name := range l.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		add(l.Groups[name])
	}
	return out
}

// Source is anything that can provide a Lexicon.
type Source interface {
	Load() (Lexicon, error)
}

// Store reads and writes a lexicon YAML file.
type Store struct {
	File   string
	logger logging.Logger
}

// NewStore creates a store for file. An empty file means DefaultFile.
func NewStore(file string, logger logging.Logger) *Store {
	return &Store{
		File:   file,
		logger: logging.OrDefault(logger),
	}
}

func (s *Store) filename() string {
	if s.File == "" {
		return DefaultFile
	}
	return s.File
}

// FindFile looks for filename as given, under ./config and under
// $HOME/.pdftext, in that order.
func (s *Store) FindFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if !fileutils.FileExists(filename) {
			return "", os.ErrNotExist
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".pdftext", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load reads the lexicon. A missing file yields an empty lexicon, not an error.
//
// Three layouts are accepted: a document with "terms" and "groups" keys, a
// bare list of terms, or a bare map of group name to terms.
func (s *Store) Load() (Lexicon, error) {
	filename := s.filename()
	path, err := s.FindFile(filename)
	if err != nil {
		s.logger.Debug("Lexicon file not found, using built-in vocabulary",
			logging.Field{Key: logging.FieldFile, Value: filename})
		return Lexicon{}, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return Lexicon{}, fmt.Errorf("error reading lexicon file: %w", err)
	}

	lex, err := parse(data)
	if err != nil {
		return Lexicon{}, fmt.Errorf("error parsing lexicon file %s: %w", path, err)
	}

	s.logger.Debug("Loaded lexicon",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(lex.AllTerms())})
	return lex, nil
}

func parse(data []byte) (Lexicon, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Lexicon{}, err
	}
	if len(root.Content) == 0 {
		return Lexicon{}, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var terms []string
		if err := doc.Decode(&terms); err != nil {
			return Lexicon{}, err
		}
		return Lexicon{Terms: terms}, nil
	case yaml.MappingNode:
		if hasKey(doc, "terms") || hasKey(doc, "groups") {
			var lex Lexicon
			if err := doc.Decode(&lex); err != nil {
				return Lexicon{}, err
			}
			return lex, nil
		}
		var groups map[string][]string
		if err := doc.Decode(&groups); err != nil {
			return Lexicon{}, err
		}
		return Lexicon{Groups: groups}, nil
	default:
		return Lexicon{}, errors.New("expected a list or a mapping of terms")
	}
}

func hasKey(mapping *yaml.Node, key string) bool {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Save writes lex to the store file, creating parent directories.
func (s *Store) Save(lex Lexicon) error {
	path := s.filename()
	if found, err := s.FindFile(path); err == nil {
		path = found
	}

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(lex)
	if err != nil {
		return fmt.Errorf("error marshaling lexicon: %w", err)
	}

	if err := os.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing lexicon: %w", err)
	}

	s.logger.Debug("Saved lexicon",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(lex.AllTerms())})
	return nil
}

// NewScorer builds a quality scorer over the built-in vocabulary plus the
// terms of src.
func NewScorer(src Source) (*textutils.Scorer, error) {
	if src == nil {
		return textutils.DefaultScorer(), nil
	}
	lex, err := src.Load()
	if err != nil {
		return nil, err
	}
	terms := lex.AllTerms()
	if len(terms) == 0 {
		return textutils.DefaultScorer(), nil
	}
	return textutils.NewScorer(terms...), nil
}
