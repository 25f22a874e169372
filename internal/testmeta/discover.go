package testmeta

import (
	"fmt"
	"os"
	"strings"

	"github.com/harrison/dsckit/internal/fileutil"
)

// Discover parses every script matching pattern below root, in enumeration order.
// Scripts without decorations contribute nothing.
func Discover(root, pattern string) ([]Descriptor, error) {
	full := strings.TrimRight(root, `/\`) + "/" + pattern

	var descriptors []Descriptor
	err := fileutil.WalkPattern(full, func(path string) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		found, err := Parse(path, content)
		if err != nil {
			return err
		}
		descriptors = append(descriptors, found...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return descriptors, nil
}
