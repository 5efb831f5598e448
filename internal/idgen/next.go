package idgen

import (
	"strconv"
	"strings"
)

// NextChildID computes the next available child ID under parent, given the
// full set of existing artifact IDs. It scans every ID with the parent
// prefix, parses the immediate next numeric segment, and allocates max+1
// (1 when the parent has no children yet).
//
// This is the convenience fallback; a pre-allocated ID from the authoritative
// allocator always takes precedence at the call site.
func NextChildID(parent string, existing []string) string {
	prefix := parent + "."
	max := 0
	for _, id := range existing {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		segment := id[len(prefix):]
		if idx := strings.Index(segment, "."); idx >= 0 {
			segment = segment[:idx]
		}
		n, err := strconv.Atoi(segment)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return prefix + strconv.Itoa(max+1)
}

// NextRootID computes the next available root initiative letter code given
// the full set of existing artifact IDs. Root codes order by length first,
// then lexicographically, and increment base-26: A..Z, AA..AZ, BA..
func NextRootID(existing []string) string {
	max := ""
	for _, id := range existing {
		if strings.Contains(id, ".") {
			continue
		}
		if !isLetterCode(id) {
			continue
		}
		if rootLess(max, id) {
			max = id
		}
	}
	if max == "" {
		return "A"
	}
	return incrementLetters(max)
}

func isLetterCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// rootLess orders root codes by length, then lexicographically, so that
// "Z" < "AA" and "AZ" < "BA".
func rootLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// incrementLetters advances a letter code by one, carrying Z to the next
// position: "A"->"B", "Z"->"AA", "AZ"->"BA".
func incrementLetters(code string) string {
	letters := []byte(code)
	for i := len(letters) - 1; i >= 0; i-- {
		if letters[i] < 'Z' {
			letters[i]++
			return string(letters)
		}
		letters[i] = 'A'
	}
	return "A" + string(letters)
}
