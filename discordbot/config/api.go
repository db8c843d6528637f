// Package config with configuration models and utilities
package config

import (
	"io"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Read decodes configuration
func Read(reader io.Reader) (root *Root, err error) {
	root = &Root{}
	err = yaml.NewDecoder(reader).Decode(root)

	return
}

// Load reads configuration from a file, creating it when missing; a freshly
// created empty file yields an empty root
func Load(path string) (root *Root, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		return nil, err
	}

	root, err = Read(f)
	if err == io.EOF {
		root, err = &Root{}, nil
	}

	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		return nil, err
	}

	return root, nil
}
