package domain

// Language tags supported by the site. Display text is carried in both
// locales on every record; selection happens at render time.
const (
	LangEn = "en"
	LangAr = "ar"
)

// LocalizedText carries the same value in English and Arabic.
type LocalizedText struct {
	En string `json:"en" form:"en"`
	Ar string `json:"ar" form:"ar"`
}

// Pick returns the value for the given language tag, falling back to English.
func (t LocalizedText) Pick(lang string) string {
	if lang == LangAr {
		return t.Ar
	}
	return t.En
}

// UnknownCarName is the denormalized fallback stored on a booking whose
// referenced car no longer exists at creation time.
var UnknownCarName = LocalizedText{En: "Unknown", Ar: "غير معروف"}
