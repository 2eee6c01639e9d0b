package catalog

import (
	"encoding/base64"
	"strings"

	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
)

// MaxImageSizeBytes caps uploaded part images at 5MB.
const MaxImageSizeBytes = 5 * 1024 * 1024

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DecodeImageBase64 decodes an uploaded image. Data URI prefixes
// (data:image/...;base64,) are accepted and stripped. Size and type are
// validated against the same limits the factory uses.
func DecodeImageBase64(base64Data string, imageType *string) ([]byte, *string, error) {
	data := strings.TrimSpace(base64Data)
	if data == "" {
		return nil, imageType, nil
	}
	if idx := strings.Index(data, ","); idx >= 0 {
		data = strings.TrimSpace(data[idx+1:])
	}

	bytes, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "Imagen inválida: formato base64 incorrecto")
	}
	if len(bytes) > MaxImageSizeBytes {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "La imagen excede el tamaño máximo de 5MB")
	}
	if imageType != nil && *imageType != "" && !validImageTypes[strings.ToLower(strings.TrimSpace(*imageType))] {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "Formato de imagen no válido")
	}
	return bytes, imageType, nil
}

// ValidateImage checks the raw blob limits used by the upload endpoints.
func ValidateImage(imageData []byte, imageType *string) error {
	if len(imageData) > MaxImageSizeBytes {
		return pkgerrors.New(pkgerrors.CodeValidation, "La imagen excede el tamaño máximo de 5MB")
	}
	if imageType != nil && *imageType != "" && !validImageTypes[strings.ToLower(strings.TrimSpace(*imageType))] {
		return pkgerrors.New(pkgerrors.CodeValidation,
			"Formato de imagen no válido. Use: image/jpeg, image/png, image/gif, image/webp")
	}
	return nil
}
