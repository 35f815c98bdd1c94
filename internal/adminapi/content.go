package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/webserver"
)

type contentPayload struct {
	CarID   int64                `json:"carId" validate:"required"`
	Title   domain.LocalizedText `json:"title"`
	Content domain.LocalizedText `json:"content"`
	SeoText domain.LocalizedText `json:"seoText"`
	Image   string               `json:"image"`
}

func registerContentRoutes() {
	webserver.AdminGET("/content", listContent)
	webserver.AdminPOST("/content", createContent)
	webserver.AdminPUT("/content/:id", updateContent)
	webserver.AdminDELETE("/content/:id", deleteContent)
}

func (p *contentPayload) toContent(id int64) domain.CarContent {
	return domain.CarContent{
		ID:      id,
		CarID:   p.CarID,
		Title:   p.Title,
		Content: p.Content,
		SeoText: p.SeoText,
		Image:   p.Image,
	}
}

func listContent(c echo.Context) error {
	return ok(c, GetStore(c).CarContents())
}

func createContent(c echo.Context) error {
	var payload contentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse content parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if strings.TrimSpace(payload.Title.En) == "" && strings.TrimSpace(payload.Title.Ar) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_TITLE", "Content title is required", nil)
	}

	content, err := GetStore(c).CreateCarContent(payload.toContent(0))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create content", err.Error())
	}
	auditLog(c, "create_content", fmt.Sprintf("created content %d for car %d", content.ID, content.CarID))
	return ok(c, content)
}

func updateContent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid content ID", nil)
	}
	var payload contentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse content parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	content := payload.toContent(id)
	if err := GetStore(c).UpdateCarContent(content); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update content", err.Error())
	}
	auditLog(c, "update_content", fmt.Sprintf("updated content %d", id))
	return ok(c, content)
}

func deleteContent(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid content ID", nil)
	}
	if err := GetStore(c).DeleteCarContent(id); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete content", err.Error())
	}
	auditLog(c, "delete_content", fmt.Sprintf("deleted content %d", id))
	return ok(c, echo.Map{"id": id})
}
