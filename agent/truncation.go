package agent

import (
	"fmt"
	"strings"
)

// TruncationMode specifies how oversized tool output is trimmed.
type TruncationMode string

const (
	TruncateHeadTail TruncationMode = "head_tail"
	TruncateTail     TruncationMode = "tail"
)

// DefaultToolOutputLimit is the fallback character cap for tool output fed
// back into the conversation.
const DefaultToolOutputLimit = 30000

// TruncateOutput applies character-based truncation to output.
func TruncateOutput(output string, maxChars int, mode TruncationMode) string {
	if len(output) <= maxChars {
		return output
	}

	removed := len(output) - maxChars
	switch mode {
	case TruncateTail:
		return fmt.Sprintf("[WARNING: Tool output was truncated. First %d characters were removed.]\n\n", removed) +
			output[len(output)-maxChars:]
	default:
		half := maxChars / 2
		return output[:half] +
			fmt.Sprintf("\n\n[WARNING: Tool output was truncated. %d characters were removed from the middle. "+
				"Re-run the tool with more targeted arguments if you need specific parts.]\n\n", removed) +
			output[len(output)-half:]
	}
}

// TruncateLines applies line-based truncation using a head/tail split.
func TruncateLines(output string, maxLines int) string {
	lines := strings.Split(output, "\n")
	if len(lines) <= maxLines {
		return output
	}

	headCount := maxLines / 2
	tailCount := maxLines - headCount
	omitted := len(lines) - headCount - tailCount

	return strings.Join(lines[:headCount], "\n") +
		fmt.Sprintf("\n[... %d lines omitted ...]\n", omitted) +
		strings.Join(lines[len(lines)-tailCount:], "\n")
}

// truncateToolOutput applies the per-tool truncation pipeline: characters
// first, lines second. charLimits and lineLimits may be nil.
func truncateToolOutput(output, toolName string, charLimits, lineLimits map[string]int) string {
	maxChars := DefaultToolOutputLimit
	if charLimits != nil {
		if mc, ok := charLimits[toolName]; ok && mc > 0 {
			maxChars = mc
		}
	}
	result := TruncateOutput(output, maxChars, TruncateHeadTail)

	if lineLimits != nil {
		if ml, ok := lineLimits[toolName]; ok && ml > 0 {
			result = TruncateLines(result, ml)
		}
	}
	return result
}
