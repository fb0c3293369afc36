package sidecar

import "strings"

// Slugify converts a title like "Young Hellboy Illustration!" into a clean
// URL slug: "young-hellboy-illustration". Runs of non-alphanumeric
// characters collapse to a single hyphen; leading and trailing hyphens are
// trimmed.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
