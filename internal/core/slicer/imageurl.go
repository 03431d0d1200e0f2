package slicer

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var imageURLPattern = regexp.MustCompile(`^(ftp|http|https)://[^ "]+$`)

// imagePolicy only lets an img src through when its scheme is allowed.
var imagePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.RequireParseableURLs(true)
	p.AllowURLSchemes("ftp", "http", "https")
	p.AllowAttrs("src").OnElements("img")
	return p
}()

// ValidImageURL reports whether candidate may be used as a chiclet image.
// The strict pattern is checked first; the candidate must then survive HTML
// sanitisation as an img source.
func ValidImageURL(candidate string) bool {
	if !imageURLPattern.MatchString(candidate) {
		return false
	}

	out := imagePolicy.Sanitize(`<img src="` + html.EscapeString(candidate) + `">`)
	return strings.Contains(out, "src=")
}
