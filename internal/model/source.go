// Package model defines the data structures shared by the strokefix layers.
package model

import "os"

// Path represents a file system path.
type Path string

// Source represents a candidate component file found under a project root.
type Source struct {
	Origin Path        `yaml:"origin"`
	Root   Path        `yaml:"root"`
	Mode   os.FileMode `yaml:"-"`
	// Hash fingerprints the content as it was read, before any rewrite.
	Hash string `yaml:"hash,omitempty"`
}
