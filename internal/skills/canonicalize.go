// Package skills normalizes skill tokens and expands them through a synonym table.
package skills

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DotNetKey is the canonical key every .NET-family spelling folds to.
const DotNetKey = ".net"

// Canonicalize lowercases and trims token and folds .NET variants to DotNetKey.
// It is total and idempotent.
func Canonicalize(token string) string {
	s := norm.NFC.String(strings.ToLower(strings.TrimSpace(token)))
	if strings.HasPrefix(s, DotNetKey) || s == "dotnet" || s == "dot net" {
		return DotNetKey
	}
	return s
}
