package validator

import (
	"regexp"

	"github.com/matzehuels/pjv/pkg/format"
	"github.com/matzehuels/pjv/pkg/manifest"
)

// personPattern splits "Name <email> (url)". Every group is optional, so a
// string with no leading name still matches with an empty name.
var personPattern = regexp.MustCompile(
	`^([^<\(` + format.Space + `]+[^<\(]*)?([` + format.Space + `]*<(.*?)>)?([` + format.Space + `]*\((.*?)\))?`,
)

// ValidatePeople checks author, contributors and maintainers fields. The
// value is a person or an array of persons, where a person is either a
// "Name <email> (url)" string or an object with name, email, url and web.
func ValidatePeople(field string, value any) []string {
	var errs []string
	if people, ok := value.([]any); ok {
		for _, p := range people {
			errs = validatePerson(field, p, errs)
		}
		return errs
	}
	return validatePerson(field, value, errs)
}

func validatePerson(field string, value any, errs []string) []string {
	switch p := value.(type) {
	case string:
		m := personPattern.FindStringSubmatch(p)
		if m == nil {
			return append(errs, "Unable to parse person string: "+p)
		}
		return validatePerson(field, map[string]any{
			"name":  m[1],
			"email": m[3],
			"url":   m[5],
		}, errs)
	case *manifest.Object, map[string]any, []any:
		if name, _ := manifest.Lookup(p, "name"); !truthy(name) {
			errs = append(errs, field+" field should have name")
		}
		errs = checkEmail(field, p, "email", errs)
		errs = checkURL(field, p, "url", errs)
		errs = checkURL(field, p, "web", errs)
		return errs
	default:
		return append(errs, "People field must be an object or a string")
	}
}

// checkEmail appends an error when obj[key] is set but does not look like
// an email address.
func checkEmail(field string, obj any, key string, errs []string) []string {
	v, _ := manifest.Lookup(obj, key)
	if truthy(v) && !format.Email.MatchString(manifest.Text(v)) {
		errs = append(errs, "Email not valid for "+field+": "+manifest.Text(v))
	}
	return errs
}

// checkURL appends an error when obj[key] is set but is not an http(s) URL.
func checkURL(field string, obj any, key string, errs []string) []string {
	v, _ := manifest.Lookup(obj, key)
	if truthy(v) && !format.URL.MatchString(manifest.Text(v)) {
		errs = append(errs, "URL not valid for "+field+": "+manifest.Text(v))
	}
	return errs
}
