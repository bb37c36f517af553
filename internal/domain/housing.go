package domain

import (
	"sort"
	"strings"
)

// Псевдонимы колонок: схема файлов менялась от года к году
var (
	housesSoldColumns          = []string{"NbMaisons", "nb_maisons"}
	apartmentsSoldColumns      = []string{"NbApparts", "nb_apparts"}
	avgPricePerM2Columns       = []string{"Prixm2Moyen", "prix_m2_moyen", "prix_m2"}
	apartmentPricePerM2Columns = []string{"prix_m2_appartement"}
	housePricePerM2Columns     = []string{"prix_m2_maison"}
	avgSurfaceM2Columns        = []string{"SurfaceMoy", "surface_moy"}
	vacancyRateColumns         = []string{"taux_vacance"}
)

// HousingRecord - строка жилищного датасета за один год
type HousingRecord struct {
	INSEECode string             `json:"insee_code"`
	Year      int                `json:"year"`
	Values    map[string]float64 `json:"values"`
}

// Value ищет первую присутствующую колонку без учета регистра.
// nil-запись ведет себя как запись без колонок.
func (r *HousingRecord) Value(columns ...string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	for _, col := range columns {
		if v, ok := r.Values[col]; ok {
			return v, true
		}
		for k, v := range r.Values {
			if strings.EqualFold(k, col) {
				return v, true
			}
		}
	}
	return 0, false
}

func (r *HousingRecord) valueOrZero(columns []string) float64 {
	v, _ := r.Value(columns...)
	return v
}

func (r *HousingRecord) HousesSold() float64     { return r.valueOrZero(housesSoldColumns) }
func (r *HousingRecord) ApartmentsSold() float64 { return r.valueOrZero(apartmentsSoldColumns) }
func (r *HousingRecord) AvgPricePerM2() float64  { return r.valueOrZero(avgPricePerM2Columns) }
func (r *HousingRecord) ApartmentPricePerM2() float64 {
	return r.valueOrZero(apartmentPricePerM2Columns)
}
func (r *HousingRecord) HousePricePerM2() float64 { return r.valueOrZero(housePricePerM2Columns) }
func (r *HousingRecord) AvgSurfaceM2() float64    { return r.valueOrZero(avgSurfaceM2Columns) }
func (r *HousingRecord) VacancyRate() float64     { return r.valueOrZero(vacancyRateColumns) }

// HousingTable - объединение всех загруженных лет. Заполняется один раз при загрузке,
// после этого только читается.
type HousingTable struct {
	byCode map[string][]HousingRecord
	years  map[int]struct{}
	rows   int
}

func NewHousingTable() *HousingTable {
	return &HousingTable{
		byCode: make(map[string][]HousingRecord),
		years:  make(map[int]struct{}),
	}
}

// Add добавляет строку в порядке файла. Код должен быть уже нормализован.
func (t *HousingTable) Add(rec HousingRecord) {
	t.byCode[rec.INSEECode] = append(t.byCode[rec.INSEECode], rec)
	t.years[rec.Year] = struct{}{}
	t.rows++
}

// Latest возвращает строку с максимальным годом; при равенстве - первую по порядку.
func (t *HousingTable) Latest(code string) *HousingRecord {
	if t == nil {
		return nil
	}
	normalized, err := NormalizeINSEECode(code)
	if err != nil {
		return nil
	}

	rows := t.byCode[normalized]
	if len(rows) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(rows); i++ {
		if rows[i].Year > rows[best].Year {
			best = i
		}
	}

	rec := rows[best]
	values := make(map[string]float64, len(rec.Values))
	for k, v := range rec.Values {
		values[k] = v
	}
	rec.Values = values
	return &rec
}

func (t *HousingTable) Len() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Years - загруженные годы по возрастанию
func (t *HousingTable) Years() []int {
	if t == nil {
		return []int{}
	}
	years := make([]int, 0, len(t.years))
	for y := range t.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// HousingStatus - состояние датасета для health и CLI
type HousingStatus struct {
	Loaded         bool  `json:"loaded"`
	DatasetMissing bool  `json:"dataset_missing"`
	Years          []int `json:"years"`
	Rows           int   `json:"rows"`
}
