package advisor

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lawyers.yaml
var builtinDirectory []byte

// Lawyer is one entry of the counsel directory.
type Lawyer struct {
	Name      string   `yaml:"name"`
	Specialty string   `yaml:"specialty"`
	Contact   string   `yaml:"contact"`
	Keywords  []string `yaml:"keywords"`
}

// Directory is the list of counsel that can be recommended.
type Directory struct {
	Default string   `yaml:"default"`
	Lawyers []Lawyer `yaml:"lawyers"`
}

var ErrEmptyDirectory = errors.New("lawyer directory is empty")

// LoadDirectory reads a directory from path, or the built-in one when path
// is empty.
func LoadDirectory(path string) (*Directory, error) {
	data := builtinDirectory
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read lawyer directory: %w", err)
		}
	}
	return ParseDirectory(data)
}

// ParseDirectory decodes a YAML directory.
func ParseDirectory(data []byte) (*Directory, error) {
	var d Directory
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse lawyer directory: %w", err)
	}
	if len(d.Lawyers) == 0 {
		return nil, ErrEmptyDirectory
	}
	return &d, nil
}

// Recommend picks the lawyer whose keywords occur most often in text. Ties
// go to the default entry, then to file order.
func (d *Directory) Recommend(text string) Lawyer {
	text = strings.ToLower(text)
	best, bestScore := d.fallback(), 0
	for i, l := range d.Lawyers {
		score := 0
		for _, kw := range l.Keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				score++
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && l.Name == d.Default) {
			best, bestScore = i, score
		}
	}
	return d.Lawyers[best]
}

func (d *Directory) fallback() int {
	for i, l := range d.Lawyers {
		if l.Name == d.Default {
			return i
		}
	}
	return 0
}
