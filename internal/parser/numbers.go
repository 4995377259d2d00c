package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// digitRunPattern matches the first contiguous run of digits with optional
// thousands separators, e.g. "2,500" inside "₹ 2,500 per qtl".
var digitRunPattern = regexp.MustCompile(`[\d][\d,]*`)

// CleanPrice converts a plain numeric cell to an integer. Thousands
// separators and surrounding whitespace are stripped. Any parse failure
// (empty cell, placeholder text) yields 0, the "absent" sentinel.
func CleanPrice(text string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")

	val, err := strconv.Atoi(cleaned)
	if err != nil || val < 0 {
		return 0
	}

	return val
}

// ExtractListedPrice pulls the first digit run out of free text that may
// carry currency symbols or trailing words. No digit run yields 0.
func ExtractListedPrice(text string) int {
	match := digitRunPattern.FindString(text)
	if match == "" {
		return 0
	}

	val, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return 0
	}

	return val
}
