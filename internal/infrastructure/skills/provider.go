package skills

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tsuyoshi-dev/scriptsage/internal/pkg/filesystem"
	"github.com/tsuyoshi-dev/scriptsage/internal/ports"
)

// FileProvider reads markdown skill files from a directory, one file per
// automation target. Examples are the fenced code blocks in the file.
type FileProvider struct {
	dir string
}

// NewFileProvider builds a provider over dir, defaulting to
// ~/.scriptsage/skills.
func NewFileProvider(dir string) *FileProvider {
	if dir == "" {
		dir = filepath.Join(filesystem.UserHomeDir(), ".scriptsage", "skills")
	}
	return &FileProvider{dir: dir}
}

// ExamplesFor implements ports.SkillProvider. Best-effort: missing files
// yield no examples.
func (p *FileProvider) ExamplesFor(target, intent string) []string {
	name := strings.ToLower(strings.ReplaceAll(target, " ", "-")) + ".md"
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		return nil
	}
	examples := codeBlocks(string(data))
	if intent == "" {
		return examples
	}
	// Prefer blocks whose surrounding text shares words with the intent,
	// but never return nothing when blocks exist.
	var preferred []string
	lowerIntent := strings.ToLower(intent)
	for _, block := range examples {
		for _, word := range strings.Fields(lowerIntent) {
			if len(word) > 2 && strings.Contains(strings.ToLower(block), word) {
				preferred = append(preferred, block)
				break
			}
		}
	}
	if len(preferred) > 0 {
		return preferred
	}
	return examples
}

func codeBlocks(markdown string) []string {
	var blocks []string
	parts := strings.Split(markdown, "```")
	for i := 1; i < len(parts); i += 2 {
		block := parts[i]
		if idx := strings.Index(block, "\n"); idx >= 0 {
			block = block[idx+1:]
		}
		block = strings.TrimSpace(block)
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

var _ ports.SkillProvider = (*FileProvider)(nil)
