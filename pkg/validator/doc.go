// Package validator checks package manifests against the npm and CommonJS
// package conventions.
//
// # Overview
//
// A specification is an ordered list of [Rule] values. Each rule names a
// field, the JSON kinds it may hold, what happens when it is missing, and
// optionally a string [format.Pattern] and a composite validator [Func].
// Three specifications are built in:
//
//   - npm (the default)
//   - commonjs_1.0
//   - commonjs_1.1
//
// # Usage
//
//	res := validator.Validate(data, validator.NPM, validator.Options{})
//	if res.Critical != nil {
//	    // the input was not a JSON object, or the spec name is unknown
//	}
//	for _, e := range res.Errors {
//	    fmt.Println(e)
//	}
//
// Missing required fields are errors. Missing warning-tier fields are
// reported under Warnings and missing recommended fields under
// Recommendations; neither affects Result.Valid. A manifest with
// "private": true does not need name or version under npm.
//
// Messages are reported in rule order, and within a field in the order the
// composite validator finds them. Dependency entries are reported in the
// order they appear in the document.
package validator
