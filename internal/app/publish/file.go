package publish

import (
	"fmt"
	"os"
	"strings"
)

// prependSection writes the rendered section at the top of the changelog file,
// separated from the existing content by a blank line. The file is created if
// absent; an existing file missing its trailing newline is repaired first.
func prependSection(path string, section string) error {
	body, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("can't read the changelog file %s: %w", path, err)
		}
		body = nil
	}
	content := string(body)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if content != "" {
		content = section + "\n" + content
	} else {
		content = section
	}
	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		return fmt.Errorf("can't write the changelog file %s: %w", path, err)
	}
	return nil
}
