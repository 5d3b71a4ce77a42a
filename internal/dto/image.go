package dto

// ImageUploadResponse 图片上传响应
type ImageUploadResponse struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}
