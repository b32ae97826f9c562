package mapper

import (
	"regexp"
	"strings"

	"textmapper/layout"
)

var (
	defIDPattern   = regexp.MustCompile(`(\bid=")([^"]+)(")`)
	defHrefPattern = regexp.MustCompile(`(href="#)([^"]+)(")`)
	defURLPattern  = regexp.MustCompile(`(url\(#)([^)]+)(\))`)
	// Whitespace between tags.
	defSpacePattern = regexp.MustCompile(`>\s+<`)
)

// namespaceDefs rewrites the ids declared and referenced in raw SVG
// definitions so that two maps on one page do not share them.
func namespaceDefs(defs []string, ns layout.Namespace) []string {
	if len(defs) == 0 {
		return nil
	}
	out := make([]string, 0, len(defs))
	for _, def := range defs {
		def = defSpacePattern.ReplaceAllString(strings.TrimSpace(def), "><")
		for _, re := range []*regexp.Regexp{defIDPattern, defHrefPattern, defURLPattern} {
			def = re.ReplaceAllStringFunc(def, func(m string) string {
				parts := re.FindStringSubmatch(m)
				return parts[1] + ns(parts[2]) + parts[3]
			})
		}
		out = append(out, def)
	}
	return out
}
