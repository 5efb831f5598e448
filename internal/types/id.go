package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Artifact IDs are dot-separated paths: "A" (initiative), "A.1" (milestone),
// "A.1.2" (issue). The root segment is one or more uppercase letters; every
// segment below it is a positive number.
var idPattern = regexp.MustCompile(`^[A-Z]+(\.[0-9]+){0,2}$`)

// IsArtifactID reports whether s looks like an artifact ID.
func IsArtifactID(s string) bool {
	return idPattern.MatchString(s)
}

// Depth returns the number of dot segments in id (1 for initiatives,
// 2 for milestones, 3 for issues).
func Depth(id string) int {
	if id == "" {
		return 0
	}
	return strings.Count(id, ".") + 1
}

// TypeForID derives the artifact type from an ID's depth.
func TypeForID(id string) (ArtifactType, error) {
	switch Depth(id) {
	case 1:
		return TypeInitiative, nil
	case 2:
		return TypeMilestone, nil
	case 3:
		return TypeIssue, nil
	}
	return "", fmt.Errorf("malformed artifact id %q", id)
}

// ParentID strips the last dot segment from id. Calling it on a depth-1
// (initiative) ID is a programmer error and fails loudly.
func ParentID(id string) (string, error) {
	idx := strings.LastIndex(id, ".")
	if idx < 0 {
		return "", fmt.Errorf("artifact %q is a root initiative and has no parent", id)
	}
	return id[:idx], nil
}

// ChildNumber returns the final numeric segment of id, or an error for
// root initiative IDs whose segment is a letter code.
func ChildNumber(id string) (int, error) {
	idx := strings.LastIndex(id, ".")
	if idx < 0 {
		return 0, fmt.Errorf("artifact %q has no numeric segment", id)
	}
	n, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("artifact %q has a non-numeric final segment: %w", id, err)
	}
	return n, nil
}

// RootID returns the initiative segment of any artifact ID.
func RootID(id string) string {
	if idx := strings.Index(id, "."); idx >= 0 {
		return id[:idx]
	}
	return id
}
