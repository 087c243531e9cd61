package displayname

import (
	"regexp"
	"strings"
)

// nameChangePatterns are tried in order; the first match wins.
var nameChangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)^/myname\s+(.+)$`),
	regexp.MustCompile(`(?is)^call me\s+(.+)$`),
}

// ParseNameChangeIntent extracts the requested name from "/myname <name>" or
// "call me <name>". It reports false when the text is neither form or the
// name is blank.
func ParseNameChangeIntent(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	for _, re := range nameChangePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if name == "" {
			return "", false
		}
		return name, true
	}
	return "", false
}
