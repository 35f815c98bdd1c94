package publicapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/webserver"
)

// supported locks the language preference to the two site locales.
var supported = language.NewMatcher([]language.Tag{
	language.Arabic, // default
	language.English,
})

func registerLanguageRoutes() {
	webserver.ApiGET("/language", getLanguage)
	webserver.ApiPUT("/language", setLanguage)
}

func getLanguage(c echo.Context) error {
	return ok(c, echo.Map{"language": GetStore(c).Language()})
}

type languagePayload struct {
	Language string `json:"language" validate:"required"`
}

// setLanguage persists the UI language. The tag is matched against the two
// supported locales; anything that doesn't resolve to them exactly is
// rejected so the stored value is always "en" or "ar".
func setLanguage(c echo.Context) error {
	var payload languagePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse language", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "Language is required", nil)
	}

	tag, err := language.Parse(payload.Language)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_LANGUAGE", "Unsupported language tag", []string{domain.LangEn, domain.LangAr})
	}
	_, idx, conf := supported.Match(tag)
	if conf < language.High {
		return fail(c, http.StatusBadRequest, "INVALID_LANGUAGE", "Unsupported language tag", []string{domain.LangEn, domain.LangAr})
	}
	lang := domain.LangAr
	if idx == 1 {
		lang = domain.LangEn
	}

	if err := GetStore(c).SetLanguage(lang); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save language", err.Error())
	}
	return ok(c, echo.Map{"language": lang})
}
