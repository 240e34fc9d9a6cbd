package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/h2non/filetype"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"
)

// ParseDocuments returns the JSON documents held by data. Valid JSON is a
// single document; anything else is read as a stream of YAML documents, each
// converted to JSON. Empty YAML documents are skipped.
func ParseDocuments(data []byte) ([][]byte, error) {
	if gjson.ValidBytes(data) {
		return [][]byte{bytes.TrimSpace(data)}, nil
	}
	return ParseMultiYAML(data)
}

// ParseMultiYAML converts every document of a multi-document YAML stream to JSON.
func ParseMultiYAML(data []byte) ([][]byte, error) {
	// If data is empty or contains only whitespace or only --- separators, return empty slice
	content := strings.TrimSpace(string(data))
	if len(content) == 0 || strings.Trim(content, "- \n\t") == "" {
		return [][]byte{}, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var docs [][]byte
	for {
		var node yaml.Node
		if err := decoder.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, ErrParseYAML.Err(err)
		}
		if isEmptyDocument(&node) {
			continue
		}
		y, err := yaml.Marshal(&node)
		if err != nil {
			return nil, ErrParseYAML.Err(err)
		}
		j, err := k8syaml.YAMLToJSON(y)
		if err != nil {
			return nil, ErrParseYAML.Err(err)
		}
		docs = append(docs, j)
	}
	return docs, nil
}

func isEmptyDocument(n *yaml.Node) bool {
	if n.Kind == 0 {
		return true
	}
	if n.Kind != yaml.DocumentNode {
		return false
	}
	if len(n.Content) == 0 {
		return true
	}
	c := n.Content[0]
	return len(n.Content) == 1 && c.Kind == yaml.ScalarNode && c.Tag == "!!null" && c.Value == ""
}

// readInput reads path, or standard input for "-", expanding environment
// placeholders when asked to.
func readInput(cmd *cobra.Command, path string, expandEnv bool) ([]byte, error) {
	if path == "" {
		return nil, ErrMissingInput
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, ErrReadInput.At(path).Err(err)
	}
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		return nil, ErrReadInput.At(path).Msg("binary input of type " + kind.MIME.Value)
	}
	if expandEnv {
		return Preprocess(data)
	}
	return data, nil
}

// readDocuments reads every document of path.
func readDocuments(cmd *cobra.Command, path string, expandEnv bool) ([][]byte, error) {
	data, err := readInput(cmd, path, expandEnv)
	if err != nil {
		return nil, err
	}
	return ParseDocuments(data)
}

// readDocument reads path, which must hold exactly one document.
func readDocument(cmd *cobra.Command, path string, expandEnv bool) ([]byte, error) {
	docs, err := readDocuments(cmd, path, expandEnv)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, ErrSingleDocument.At(path)
	}
	return docs[0], nil
}
