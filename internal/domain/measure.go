package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnavailableText - явный индикатор отсутствующего значения
const UnavailableText = "unavailable"

// Measure - числовое значение, которое может быть недоступно.
// В JSON: число, либо строка "unavailable". Неизвестное значение никогда не сериализуется как 0.
type Measure struct {
	value float64
	known bool
}

func Known(v float64) Measure {
	return Measure{value: v, known: true}
}

func Unavailable() Measure {
	return Measure{}
}

func (m Measure) Value() (float64, bool) {
	return m.value, m.known
}

func (m Measure) IsKnown() bool {
	return m.known
}

// OrZero - значение для числовых графиков, где отсутствие данных читается как 0
func (m Measure) OrZero() float64 {
	if !m.known {
		return 0
	}
	return m.value
}

func (m Measure) String() string {
	if !m.known {
		return UnavailableText
	}
	return strconv.FormatFloat(m.value, 'f', -1, 64)
}

func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.known {
		return json.Marshal(UnavailableText)
	}
	return json.Marshal(m.value)
}

func (m *Measure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = Unavailable()
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != UnavailableText {
			return fmt.Errorf("measure: unexpected string %q", s)
		}
		*m = Unavailable()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("measure: %w", err)
	}
	*m = Known(v)
	return nil
}
