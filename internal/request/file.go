package request

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/camsynth/internal/pipeline"
)

// ReadDocument reads a request document from a YAML file.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &doc, nil
}

// Read reads a request from a YAML file.
func Read(path string) (pipeline.Request, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return pipeline.Request{}, err
	}
	req, err := doc.Request()
	if err != nil {
		return req, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// Write writes a request to a YAML file.
func Write(path string, req pipeline.Request) error {
	return writeYAML(path, FromRequest(req))
}

// WriteResult writes a result document to a YAML file.
func WriteResult(path string, doc ResultDocument) error {
	return writeYAML(path, doc)
}

// ReadResult reads a result document from a YAML file.
func ReadResult(path string) (*ResultDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc ResultDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &doc, nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
