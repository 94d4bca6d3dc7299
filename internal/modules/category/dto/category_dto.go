package dto

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	ColorLight  string `json:"color_light" binding:"max=20"`
	ColorDark   string `json:"color_dark" binding:"max=20"`
}
