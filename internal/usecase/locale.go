package usecase

import "golang.org/x/text/language"

var supportedLangs = []language.Tag{
	language.French, // default
	language.Arabic,
}

var langMatcher = language.NewMatcher(supportedLangs)

// displayName picks the localized display name for the requested
// language tag. Unknown or empty tags fall back to French, the
// publication language of the dataset.
func displayName(nameFr, nameAr, lang string) string {
	if lang == "" {
		return nameFr
	}
	_, index := language.MatchStrings(langMatcher, lang)
	if supportedLangs[index] == language.Arabic {
		return nameAr
	}
	return nameFr
}
