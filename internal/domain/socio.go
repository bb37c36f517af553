package domain

// SocioEconomic - показатели INSEE по коммуне
type SocioEconomic struct {
	MedianIncome     Measure `json:"median_income"`
	UnemploymentRate Measure `json:"unemployment_rate"`
	Available        bool    `json:"available"`
}

func UnavailableSocioEconomic() SocioEconomic {
	return SocioEconomic{
		MedianIncome:     Unavailable(),
		UnemploymentRate: Unavailable(),
	}
}
