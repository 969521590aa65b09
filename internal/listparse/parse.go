// Package listparse turns pasted or transcribed shopping lists into entries.
package listparse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Entry struct {
	Name     string
	Amount   string
	Category string
}

// Parse reads one entry per line. A line is either "name | amount | category"
// (trailing fields optional) or free text such as "2 pounds chicken breast",
// where a leading number and the word after it become the amount. Blank lines,
// "#" comments and list bullets are skipped.
func Parse(raw string) []Entry {
	entries := make([]Entry, 0)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "-*•"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var e Entry
		if strings.Contains(line, "|") {
			e = parseFields(line)
		} else {
			e = parseFreeText(line)
		}
		if e.Name != "" {
			entries = append(entries, e)
		}
	}

	return entries
}

func parseFields(line string) Entry {
	parts := strings.Split(line, "|")
	e := Entry{Name: strings.TrimSpace(parts[0])}
	if len(parts) >= 2 {
		e.Amount = strings.TrimSpace(parts[1])
	}
	if len(parts) >= 3 {
		e.Category = strings.TrimSpace(parts[2])
	}
	return e
}

func parseFreeText(line string) Entry {
	words := strings.Fields(line)
	if len(words) >= 3 && startsWithDigit(words[0]) {
		return Entry{
			Name:   strings.Join(words[2:], " "),
			Amount: words[0] + " " + words[1],
		}
	}
	return Entry{Name: strings.Join(words, " ")}
}

func startsWithDigit(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r)
}
