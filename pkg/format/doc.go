// Package format provides the string patterns used to check manifest fields.
//
// The patterns are intentionally permissive. They recognize the general shape
// of a value (a package name, a loose semantic version, an http URL, an email
// address) rather than enforcing a full grammar:
//
//	format.Package.MatchString("@scope/pkg")  // true
//	format.Version.MatchString("1.2.3-rc.1")  // true
//	format.URL.MatchString("https://x.org")   // true
//	format.Email.MatchString("a@b")           // true
//
// [IsValidVersionRange] accepts the dependency specifiers understood by npm
// and pnpm: comparator ranges (^1.0.0, ~1.2, >=1.2.3, 1.2.x), URLs, "*", the
// empty string, "latest", git references, workspace: and catalog: protocols,
// and npm: aliases.
package format
