package dto

// MediaUploadInput multipart поле type, сам файл читается из поля file
type MediaUploadInput struct {
	Type string `form:"type" validate:"omitempty,oneof=image video"`
}

type UploadResponse struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}
