package dto

// CityRequest - запрос данных по одному городу
type CityRequest struct {
	Name string `json:"name" params:"name" validate:"required,max=100,cityname"`
}

// CompareRequest - запрос сравнения двух городов
type CompareRequest struct {
	CityA string `json:"city_a" query:"city_a" validate:"required,max=100,cityname"`
	CityB string `json:"city_b" query:"city_b" validate:"required,max=100,cityname"`
}
