package view

import (
	"fmt"
	"strings"
)

// NumberedList renders items as "[n] item" lines, numbering from startAt. Bullets
// are right-aligned to a common width. reversed flips the line order but keeps
// each item's number.
func NumberedList[T any](items []T, startAt int, reversed bool) string {
	width := len(fmt.Sprint(len(items)+startAt)) + 2
	lines := make([]string, 0, len(items))
	for i, item := range items {
		bullet := fmt.Sprintf("[%d]", i+startAt)
		lines = append(lines, fmt.Sprintf("%*s %v", width, bullet, item))
	}
	if reversed {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
