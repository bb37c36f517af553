package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/city-fighting/internal/pkg/errors"
)

// corsicanCode - коды Корсики (2A/2B) не приводятся к целому и принимаются как есть
var corsicanCode = regexp.MustCompile(`^2[AB][0-9]{3}$`)

// NormalizeINSEECode приводит код коммуны к строке из 5 символов с ведущими нулями.
// Значения из таблиц вида "75056.0" или "1001" дают "75056" и "01001".
func NormalizeINSEECode(raw string) (string, error) {
	s := strings.Trim(strings.TrimSpace(raw), `"'`)
	if s == "" {
		return "", errors.ErrInvalidINSEECode.WithDetails(map[string]interface{}{"raw": raw})
	}

	if upper := strings.ToUpper(s); corsicanCode.MatchString(upper) {
		return upper, nil
	}

	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return "", errors.ErrInvalidINSEECode.WithDetails(map[string]interface{}{"raw": raw})
	}

	n := int64(f)
	if n > 99999 {
		return "", errors.ErrInvalidINSEECode.WithDetails(map[string]interface{}{"raw": raw})
	}

	return fmt.Sprintf("%05d", n), nil
}
