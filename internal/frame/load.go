package frame

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"marcframeview/internal/config"
	"marcframeview/internal/errors"
)

// Load reads and decodes the frame document at filePath.
// The whole file is read up front and the handle released before decoding.
// Missing or unreadable files yield file errors; documents that do not decode
// to a single object yield parsing errors. Nothing is recovered.
func Load(filePath string, format config.FrameFormat) (Frame, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.WrapFileError(filePath, err)
	}

	content, err := io.ReadAll(file)
	_ = file.Close()
	if err != nil {
		return nil, errors.NewFileNotReadableError(filePath, err)
	}

	switch format {
	case config.FrameFormatJSON, config.FrameFormatAuto:
		return parseJSONFrame(content, filePath)
	case config.FrameFormatYAML:
		return parseYAMLFrame(content, filePath)
	default:
		return nil, errors.NewParsingError(filePath, fmt.Sprintf("unsupported format: %s", format), nil)
	}
}

func parseJSONFrame(content []byte, filePath string) (Frame, error) {
	var frame Frame

	decoder := json.NewDecoder(bytes.NewReader(content))
	if err := decoder.Decode(&frame); err != nil {
		return nil, errors.NewParsingError(filePath, "failed to parse JSON", err)
	}

	// A second value, or garbage, after the document is malformed input.
	var trailing json.RawMessage
	if err := decoder.Decode(&trailing); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level value")
		}
		return nil, errors.NewParsingError(filePath, "failed to parse JSON", err)
	}

	if frame == nil {
		return nil, errors.NewParsingError(filePath, "frame document must be an object", nil)
	}

	return frame, nil
}

func parseYAMLFrame(content []byte, filePath string) (Frame, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, errors.NewParsingError(filePath, "failed to parse YAML", err)
	}

	value, err := yamlValue(&root)
	if err != nil {
		return nil, errors.NewParsingError(filePath, "failed to parse YAML", err)
	}

	doc, ok := value.(map[string]any)
	if !ok {
		return nil, errors.NewParsingError(filePath, "frame document must be an object", nil)
	}

	return Frame(doc), nil
}

// yamlValue converts a YAML node into the shapes encoding/json produces.
// Mapping keys keep their literal text, so 001: stays "001" instead of being
// read as an octal number.
func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return yamlValue(node.Content[0])
	case yaml.MappingNode:
		out := make(map[string]any, len(node.Content)/2)
		if err := yamlMapping(node, out); err != nil {
			return nil, err
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, len(node.Content))
		for i, item := range node.Content {
			value, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = value
		}
		return out, nil
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	default:
		return nil, nil
	}
}

func yamlMapping(node *yaml.Node, out map[string]any) error {
	var merges []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, item := node.Content[i], node.Content[i+1]
		if key.Kind == yaml.AliasNode {
			key = key.Alias
		}
		if key.ShortTag() == "!!merge" {
			merges = append(merges, item)
			continue
		}
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping key must be a scalar", key.Line)
		}
		value, err := yamlValue(item)
		if err != nil {
			return err
		}
		out[key.Value] = value
	}

	// Explicit keys win over merged ones.
	for _, merge := range merges {
		if err := yamlMerge(merge, out); err != nil {
			return err
		}
	}
	return nil
}

func yamlMerge(node *yaml.Node, out map[string]any) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		merged := make(map[string]any, len(node.Content)/2)
		if err := yamlMapping(node, merged); err != nil {
			return err
		}
		for key, value := range merged {
			if _, ok := out[key]; !ok {
				out[key] = value
			}
		}
		return nil
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if err := yamlMerge(item, out); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", node.Line)
	}
}
