package markdown

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// MapBlock represents a map code block found in markdown
type MapBlock struct {
	Lang        string // text-mapper or textmapper
	Content     string // The map document, YAML or JSON
	StartLine   int    // Line number where block starts (0-based)
	EndLine     int    // Line number where block ends
	Indent      string // Indentation before the code fence
	ContentHash string // SHA256 hash of the content
}

// ID returns a short id derived from the block content, so that a block
// keeps its id namespace across renders for as long as it is unchanged.
func (b MapBlock) ID() string {
	return b.ContentHash[:12]
}

// Scanner finds and extracts map blocks from markdown content
type Scanner struct {
	lines []string
}

// NewScanner creates a new markdown scanner
func NewScanner(content string) *Scanner {
	return &Scanner{lines: strings.Split(content, "\n")}
}

// FindMapBlocks finds all map code blocks in the markdown. An unclosed
// block at the end of the file is ignored.
func (s *Scanner) FindMapBlocks() []MapBlock {
	var blocks []MapBlock
	var current *MapBlock
	var content []string

	for i, line := range s.lines {
		trimmed := strings.TrimLeft(line, " \t")
		if current == nil {
			if !strings.HasPrefix(trimmed, "```") {
				continue
			}
			lang := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			if isMapLanguage(lang) {
				current = &MapBlock{
					Lang:      lang,
					StartLine: i,
					Indent:    line[:len(line)-len(trimmed)],
				}
				content = content[:0]
			}
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			current.EndLine = i
			current.Content = strings.Join(content, "\n")
			hash := sha256.Sum256([]byte(current.Content))
			current.ContentHash = hex.EncodeToString(hash[:])
			blocks = append(blocks, *current)
			current = nil
			continue
		}
		content = append(content, strings.TrimPrefix(line, current.Indent))
	}

	return blocks
}

// isMapLanguage checks if a fence language names a map block
func isMapLanguage(lang string) bool {
	switch strings.ToLower(lang) {
	case "text-mapper", "textmapper":
		return true
	default:
		return false
	}
}

// FormatBlockInfo returns a human-readable description of a block
func FormatBlockInfo(block MapBlock, index int) string {
	// First meaningful line of content for preview
	preview := ""
	for _, line := range strings.Split(block.Content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			preview = trimmed
			if len(preview) > 50 {
				preview = preview[:47] + "..."
			}
			break
		}
	}

	return fmt.Sprintf("%d. %s (line %d): %s", index+1, block.Lang, block.StartLine+1, preview)
}
