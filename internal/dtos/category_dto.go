package dtos

type CategoryCreateRequest struct {
	CategoryName string   `json:"categoryName" binding:"required"`
	InputType    string   `json:"inputType"`
	MinValue     *float64 `json:"minValue"`
	MaxValue     *float64 `json:"maxValue"`
	Options      []string `json:"options"`
}

type OptionCreateRequest struct {
	OptionName string `json:"optionName" binding:"required"`
}
