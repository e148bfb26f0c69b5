package loader

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/types"
)

// AlbumFile represents an album definition loaded from a YAML file
type AlbumFile struct {
	// Kind must be "Album"
	Kind string `yaml:"kind"`
	// Spec contains the album fields
	Spec AlbumSpec `yaml:"spec"`
}

// AlbumSpec defines the album fields accepted from a file
type AlbumSpec struct {
	Title  string  `yaml:"title"`
	Artist string  `yaml:"artist"`
	Price  float64 `yaml:"price"`
}

// LoadFromFile loads an album definition from a YAML file.
func LoadFromFile(filepath string) (*AlbumFile, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var album AlbumFile
	if err := yaml.Unmarshal(data, &album); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if album.Kind == "" {
		return nil, fmt.Errorf("'kind' field is required")
	}
	if album.Kind != "Album" {
		return nil, fmt.Errorf("invalid kind '%s', must be 'Album'", album.Kind)
	}

	return &album, nil
}

// ToCreateInput converts an AlbumFile to a CreateAlbumInput, validating the
// same constraints the interactive form enforces.
func (a *AlbumFile) ToCreateInput() (*types.CreateAlbumInput, error) {
	if a.Spec.Title == "" {
		return nil, fmt.Errorf("spec.title is required")
	}
	if a.Spec.Artist == "" {
		return nil, fmt.Errorf("spec.artist is required")
	}
	if a.Spec.Price < 0 {
		return nil, fmt.Errorf("spec.price must not be negative")
	}

	return &types.CreateAlbumInput{
		Title:  a.Spec.Title,
		Artist: a.Spec.Artist,
		Price:  a.Spec.Price,
	}, nil
}
