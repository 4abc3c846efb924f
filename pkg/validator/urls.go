package validator

import (
	"github.com/matzehuels/pjv/pkg/format"
	"github.com/matzehuels/pjv/pkg/manifest"
)

// ValidateURLOrMailto checks bugs-style fields. The value is either a URL or
// email string, or an object carrying at least one of email, url, mail or web:
//
//	{"url": "http://github.com/owner/project/issues", "email": "project@hostname.com"}
//	{"mail": "dev@example.com", "web": "http://www.example.com/bugs"}
func ValidateURLOrMailto(field string, value any) []string {
	var errs []string
	switch v := value.(type) {
	case string:
		if !format.URL.MatchString(v) && !format.Email.MatchString(v) {
			errs = append(errs, field+" should be an email or a url")
		}
	case *manifest.Object, map[string]any, []any:
		if !anyTruthy(v, "email", "url", "mail", "web") {
			return append(errs, field+" field should have one of: email, url, mail, web")
		}
		errs = checkEmail(field, v, "email", errs)
		errs = checkEmail(field, v, "mail", errs)
		errs = checkURL(field, v, "url", errs)
		errs = checkURL(field, v, "web", errs)
	default:
		errs = append(errs, "Type for field "+field+" should be a string or an object")
	}
	return errs
}

// ValidateURLTypes checks license(s) and repository(s) fields. The value is
// a URL string, an object with "type" and "url", or an array of such objects.
func ValidateURLTypes(field string, value any) []string {
	var errs []string
	switch v := value.(type) {
	case string:
		if !format.URL.MatchString(v) {
			errs = append(errs, "URL not valid for "+field+": "+v)
		}
	case []any:
		for _, item := range v {
			errs = validateURLType(field, item, errs)
		}
	case *manifest.Object, map[string]any:
		errs = validateURLType(field, v, errs)
	default:
		errs = append(errs, "Type for field "+field+" should be a string or an object")
	}
	return errs
}

func validateURLType(field string, obj any, errs []string) []string {
	if t, _ := manifest.Lookup(obj, "type"); !truthy(t) {
		errs = append(errs, field+" field should have type")
	}
	if u, _ := manifest.Lookup(obj, "url"); !truthy(u) {
		errs = append(errs, field+" field should have url")
	}
	return errs
}

func anyTruthy(obj any, keys ...string) bool {
	for _, k := range keys {
		if v, _ := manifest.Lookup(obj, k); truthy(v) {
			return true
		}
	}
	return false
}
