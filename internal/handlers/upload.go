// internal/handlers/upload.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/falconprime/backend/internal/i18n"
	"github.com/falconprime/backend/internal/services"
	"github.com/falconprime/backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
	}
}

// POST /v1/admin/upload
//
// Accepts one or more image files under the "files" multipart field and
// returns their public URLs, ready to be attached to a product.
func (h *UploadHandler) UploadProductImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadNoFiles), err.Error())
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadNoFiles), nil)
		return
	}

	options := services.ProductImageUploadOptions()

	results := make([]*services.UploadResult, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}

		result, err := h.storageService.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeBadRequest,
				i18n.T(lang, i18n.KeyUploadBadType, header.Filename), err.Error())
			return
		}

		results = append(results, result)
	}

	utils.CreatedResponse(c, gin.H{"uploads": results})
}
