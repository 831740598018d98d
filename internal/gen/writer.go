package gen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ArtifactFilename is the name of the serialized task graph.
const ArtifactFilename = "integration.json"

// GeneratedFile is one file of a rendered artifact.
type GeneratedFile struct {
	// Filename is relative to the output directory ("snippets/cpf_1.js").
	Filename string
	Content  []byte
}

// Files renders the artifact as the task graph document plus one script
// file per snippet.
func (a *Artifact) Files() ([]GeneratedFile, error) {
	doc, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding artifact: %w", err)
	}

	files := []GeneratedFile{{Filename: ArtifactFilename, Content: append(doc, '\n')}}
	for _, s := range a.Snippets {
		files = append(files, GeneratedFile{
			Filename: filepath.Join("snippets", s.Variable+".js"),
			Content:  []byte(s.Code),
		})
	}

	return files, nil
}

// WriteFiles writes files under outputDir, creating directories as needed.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.MkdirAll(filepath.Dir(outputPath), dirPerm)
		if err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Filename, err)
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
