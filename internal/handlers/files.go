package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type FilesHandler struct {
	Service *service.FilesService
}

// Upload saves arbitrary admin uploads into the requested folder.
func (h *FilesHandler) Upload(c echo.Context) error {
	folder := c.QueryParam("folder")
	if folder == "" {
		folder = service.FolderProducts
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid multipart form", err)
	}
	files := form.File["files"]

	saved, err := h.Service.Save(c.Request().Context(), files, folder, nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}
