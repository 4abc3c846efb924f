// Package manifest parses package manifest text into an ordered document.
//
// [Parse] accepts the raw text of a manifest such as package.json and returns
// an [Object] whose keys keep their document order, or a reason string
// describing why the text is not a usable manifest:
//
//	doc, reason := manifest.Parse(`{"name": "left-pad", "version": "1.3.0"}`)
//	if reason != "" {
//	    // "Invalid JSON - ..." or "Invalid JSON - not an object (actual type: array)"
//	}
//	name, _ := doc.Get("name")
//
// Numbers are kept as json.Number so the original literal survives, and
// nested objects are themselves *Object values.
package manifest
