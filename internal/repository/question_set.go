package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aliskhannn/ysquiz/internal/domain/entities"
)

var (
	ErrQuestionSetNotFound = errors.New("question set not found")
	ErrNoQuestionSets      = errors.New("no question sets found")
)

// QuestionSetRepository serves question sets loaded from JSON or YAML files.
type QuestionSetRepository struct {
	sets map[string]*entities.QuestionSet
}

// NewQuestionSetRepository loads a single question set file, or every
// .json/.yaml/.yml file of a directory.
func NewQuestionSetRepository(path string) (*QuestionSetRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat question sets: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = questionSetFiles(path)
		if err != nil {
			return nil, err
		}
	}

	sets := make(map[string]*entities.QuestionSet, len(files))
	for _, file := range files {
		set, err := LoadQuestionSet(file)
		if err != nil {
			return nil, err
		}
		sets[set.Name] = set
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoQuestionSets, path)
	}

	return &QuestionSetRepository{sets: sets}, nil
}

// GetByName returns the question set with the given name.
func (r *QuestionSetRepository) GetByName(_ context.Context, name string) (*entities.QuestionSet, error) {
	set, ok := r.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuestionSetNotFound, name)
	}
	return set, nil
}

// List returns the names of all question sets in alphabetical order.
func (r *QuestionSetRepository) List(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// LoadQuestionSet reads and parses one question set file.
// The set is named after the file without its extension.
func LoadQuestionSet(path string) (*entities.QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question set: %w", err)
	}

	set, err := ParseQuestionSet(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Base(path)
	set.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return set, nil
}

// ParseQuestionSet decodes JSON for .json paths and YAML otherwise.
func ParseQuestionSet(data []byte, path string) (*entities.QuestionSet, error) {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return parseJSONSet(data)
	}
	return parseYAMLSet(data)
}

func parseJSONSet(data []byte) (*entities.QuestionSet, error) {
	var set entities.QuestionSet
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&set); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return &set, nil
}

func parseYAMLSet(data []byte) (*entities.QuestionSet, error) {
	var set entities.QuestionSet
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&set); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &set, nil
}

func questionSetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read question sets: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
