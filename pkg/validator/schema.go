package validator

import "github.com/matzehuels/pjv/pkg/format"

// SpecName identifies one of the supported manifest conventions.
type SpecName string

// Supported specifications.
const (
	NPM        SpecName = "npm"          // https://docs.npmjs.com/cli/v9/configuring-npm/package-json
	CommonJS10 SpecName = "commonjs_1.0" // http://wiki.commonjs.org/wiki/Packages/1.0
	CommonJS11 SpecName = "commonjs_1.1" // http://wiki.commonjs.org/wiki/Packages/1.1
)

// SpecNames returns the supported specification names.
func SpecNames() []SpecName {
	return []SpecName{NPM, CommonJS10, CommonJS11}
}

// Known reports whether name is a supported specification.
func (n SpecName) Known() bool {
	_, ok := SpecFor(n, false)
	return ok
}

// Schema is an ordered list of field rules.
type Schema struct {
	Name  SpecName
	Rules []Rule
}

// Rule returns the rule for a field, if the schema declares one.
func (s Schema) Rule(field string) (Rule, bool) {
	for _, r := range s.Rules {
		if r.Name == field {
			return r, true
		}
	}
	return Rule{}, false
}

// SpecFor returns the schema for name. private relaxes the npm requirement
// for name and version. The second result is false for unknown names.
func SpecFor(name SpecName, private bool) (Schema, bool) {
	switch name {
	case NPM:
		return Schema{Name: name, Rules: npmRules(private)}, true
	case CommonJS10:
		return Schema{Name: name, Rules: commonJS10Rules()}, true
	case CommonJS11:
		return Schema{Name: name, Rules: commonJS11Rules()}, true
	}
	return Schema{}, false
}

func types(k ...Kind) []Kind { return k }

func npmRules(private bool) []Rule {
	identity := Required
	if private {
		identity = Optional
	}
	return []Rule{
		{Name: "name", Types: types(String), Priority: identity, Format: format.Package},
		{Name: "version", Types: types(String), Priority: identity, Format: format.Version},
		{Name: "description", Types: types(String), Priority: Warning},
		{Name: "keywords", Types: types(Array), Priority: Warning},
		{Name: "homepage", Types: types(String), Priority: Recommended, Format: format.URL},
		{Name: "bugs", Priority: Warning, Validate: ValidateURLOrMailto},
		{Name: "licenses", Types: types(Array), Priority: Warning, Validate: ValidateURLTypes, Or: "license"},
		{Name: "license", Types: types(String)},
		{Name: "author", Priority: Warning, Validate: ValidatePeople},
		{Name: "contributors", Priority: Warning, Validate: ValidatePeople},
		{Name: "files", Types: types(Array)},
		{Name: "main", Types: types(String)},
		{Name: "bin", Types: types(String, Object)},
		{Name: "man", Types: types(String, Array)},
		{Name: "directories", Types: types(Object)},
		{Name: "repository", Types: types(String, Object), Priority: Warning, Validate: ValidateURLTypes, Or: "repositories"},
		{Name: "scripts", Types: types(Object)},
		{Name: "config", Types: types(Object)},
		{Name: "dependencies", Types: types(Object), Priority: Recommended, Validate: ValidateDependencies},
		{Name: "devDependencies", Types: types(Object), Validate: ValidateDependencies},
		{Name: "peerDependencies", Types: types(Object), Validate: ValidateDependencies},
		{Name: "bundledDependencies", Types: types(Array)},
		{Name: "bundleDependencies", Types: types(Array)},
		{Name: "optionalDependencies", Types: types(Object), Validate: ValidateDependencies},
		{Name: "engines", Types: types(Object), Priority: Recommended},
		{Name: "engineStrict", Types: types(Boolean)},
		{Name: "os", Types: types(Array)},
		{Name: "cpu", Types: types(Array)},
		{Name: "preferGlobal", Types: types(Boolean)},
		{Name: "private", Types: types(Boolean)},
		{Name: "publishConfig", Types: types(Object)},
	}
}

func commonJS10Rules() []Rule {
	return []Rule{
		{Name: "name", Types: types(String), Priority: Required, Format: format.Package},
		{Name: "description", Types: types(String), Priority: Required},
		{Name: "version", Types: types(String), Priority: Required, Format: format.Version},
		{Name: "keywords", Types: types(Array), Priority: Required},
		{Name: "maintainers", Types: types(Array), Priority: Required, Validate: ValidatePeople},
		{Name: "contributors", Types: types(Array), Priority: Required, Validate: ValidatePeople},
		{Name: "bugs", Types: types(String), Priority: Required, Validate: ValidateURLOrMailto},
		{Name: "licenses", Types: types(Array), Priority: Required, Validate: ValidateURLTypes},
		{Name: "repositories", Types: types(Object), Priority: Required, Validate: ValidateURLTypes},
		{Name: "dependencies", Types: types(Object), Priority: Required, Validate: ValidateDependencies},

		{Name: "homepage", Types: types(String), Format: format.URL},
		{Name: "os", Types: types(Array)},
		{Name: "cpu", Types: types(Array)},
		{Name: "engine", Types: types(Array)},
		{Name: "builtin", Types: types(Boolean)},
		{Name: "directories", Types: types(Object)},
		{Name: "implements", Types: types(Array)},
		{Name: "scripts", Types: types(Object)},
		{Name: "checksums", Types: types(Object)},
	}
}

func commonJS11Rules() []Rule {
	return []Rule{
		{Name: "name", Types: types(String), Priority: Required, Format: format.Package},
		{Name: "version", Types: types(String), Priority: Required, Format: format.Version},
		{Name: "main", Types: types(String), Priority: Required},
		{Name: "directories", Types: types(Object), Priority: Required},

		{Name: "maintainers", Types: types(Array), Priority: Warning, Validate: ValidatePeople},
		{Name: "description", Types: types(String), Priority: Warning},
		{Name: "licenses", Types: types(Array), Priority: Warning, Validate: ValidateURLTypes},
		{Name: "bugs", Types: types(String), Priority: Warning, Validate: ValidateURLOrMailto},
		{Name: "keywords", Types: types(Array)},
		{Name: "repositories", Types: types(Array), Validate: ValidateURLTypes},
		{Name: "contributors", Types: types(Array), Validate: ValidatePeople},
		{Name: "dependencies", Types: types(Object), Validate: ValidateDependencies},
		{Name: "homepage", Types: types(String), Priority: Warning, Format: format.URL},
		{Name: "os", Types: types(Array)},
		{Name: "cpu", Types: types(Array)},
		{Name: "engine", Types: types(Array)},
		{Name: "builtin", Types: types(Boolean)},
		{Name: "implements", Types: types(Array)},
		{Name: "scripts", Types: types(Object)},
		{Name: "overlay", Types: types(Object)},
		{Name: "checksums", Types: types(Object)},
	}
}
