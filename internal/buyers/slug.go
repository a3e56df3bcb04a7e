package buyers

import "strings"

const maxNameSlugLen = 32

// DeriveUID builds the stable human-readable identifier stored next to a
// buyer row: the slugified name (capped at 32 characters) joined with the
// slugified id number.
func DeriveUID(name, idNumber string) string {
	nameSlug := slugify(name)
	if len(nameSlug) > maxNameSlugLen {
		nameSlug = strings.Trim(nameSlug[:maxNameSlugLen], "-")
	}
	idSlug := slugify(idNumber)

	switch {
	case nameSlug == "":
		return idSlug
	case idSlug == "":
		return nameSlug
	default:
		return nameSlug + "-" + idSlug
	}
}

// slugify lowercases the input and collapses every run of non-alphanumeric
// characters into a single hyphen, trimming hyphens at both ends.
func slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			if b.Len() > 0 {
				pendingHyphen = true
			}
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
