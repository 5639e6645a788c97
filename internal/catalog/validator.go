package catalog

import (
	"path/filepath"
	"strings"

	"cuattro/internal/apperr"
)

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ValidateImageExtension returns the lowercase extension and its content type.
func ValidateImageExtension(filename string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return "", "", apperr.NewValidation("Arquivo inválido.", map[string]string{"file": "extensão ausente"})
	}

	contentType, ok := allowedImageExt[ext]
	if !ok {
		return "", "", apperr.NewValidation("Arquivo inválido.", map[string]string{"file": "tipo de arquivo não permitido"})
	}

	return ext, contentType, nil
}

func validateInput(in ItemInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["nome"] = "obrigatório"
	}
	if in.Price.IsNegative() {
		fields["preco"] = "não pode ser negativo"
	} else if in.Price.Exponent() < -2 && !in.Price.Equal(in.Price.Round(2)) {
		fields["preco"] = "no máximo duas casas decimais"
	}
	if in.BaseQuantity < 0 {
		fields["quantidade"] = "não pode ser negativa"
	}
	if len(fields) > 0 {
		return apperr.NewValidation("Dados do item inválidos.", fields)
	}
	return nil
}
