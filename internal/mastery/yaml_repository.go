package mastery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// YAMLStore stores one YAML file per learner in a directory
type YAMLStore struct {
	directory string
}

func NewYAMLStore(directory string) *YAMLStore {
	return &YAMLStore{directory: directory}
}

func (s *YAMLStore) path(learnerID string) string {
	return filepath.Join(s.directory, learnerID+".yml")
}

func (s *YAMLStore) Get(_ context.Context, learnerID string) (*Record, error) {
	record, err := readYamlFile[Record](s.path(learnerID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", learnerID, ErrLearnerNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("readYamlFile(%s) > %w", learnerID, err)
	}
	if record.Facts == nil {
		record.Facts = make(map[string]FactMastery)
	}
	return &record, nil
}

func (s *YAMLStore) Put(_ context.Context, learnerID string, record *Record) error {
	if err := os.MkdirAll(s.directory, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", s.directory, err)
	}
	if err := writeYamlFile(s.path(learnerID), record); err != nil {
		return fmt.Errorf("writeYamlFile(%s) > %w", learnerID, err)
	}
	return nil
}

// List returns every stored learner sorted by name
func (s *YAMLStore) List(_ context.Context) ([]Record, error) {
	var records []Record
	err := filepath.Walk(s.directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}
		record, err := readYamlFile[Record](path)
		if err != nil {
			return fmt.Errorf("readYamlFile(%s) > %w", path, err)
		}
		records = append(records, record)
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filepath.Walk(%s) > %w", s.directory, err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}

func readYamlFile[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil {
		return result, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return result, nil
}

func writeYamlFile[T any](path string, data T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("yaml.Encoder.Encode() > %w", err)
	}
	return encoder.Close()
}
