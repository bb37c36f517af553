package housing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/pkg/errors"
	"go.uber.org/zap"
)

// candidateDelimiters в порядке предпочтения при равном счете
var candidateDelimiters = []rune{';', ',', '\t', '|'}

// codeColumns - возможные названия колонки с кодом коммуны
var codeColumns = []string{"INSEE_COM", "CODE_INSEE", "CODGEO", "INSEE"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader читает годовые файлы жилищного датасета в одну таблицу
type Loader struct {
	cfg    *config.HousingConfig
	logger *zap.Logger
}

func NewLoader(cfg *config.HousingConfig, logger *zap.Logger) *Loader {
	return &Loader{cfg: cfg, logger: logger}
}

// LoadTable загружает все доступные файлы. Отсутствующие и битые файлы пропускаются;
// если не загружен ни один - пустая таблица и ErrDatasetMissing.
func (l *Loader) LoadTable(ctx context.Context) (*domain.HousingTable, error) {
	table := domain.NewHousingTable()

	sources, err := l.Sources()
	if err != nil {
		return table, err
	}

	loaded := 0
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return table, err
		}

		rows, err := l.loadFile(src, table)
		if err != nil {
			if os.IsNotExist(err) {
				l.logger.Debug("Housing file not found, skipping",
					zap.Int("year", src.Year),
					zap.String("file", src.File))
			} else {
				l.logger.Warn("Failed to parse housing file, skipping",
					zap.Int("year", src.Year),
					zap.String("file", src.File),
					zap.Error(err))
			}
			continue
		}

		loaded++
		l.logger.Debug("Housing file loaded",
			zap.Int("year", src.Year),
			zap.String("file", src.File),
			zap.Int("rows", rows))
	}

	if loaded == 0 {
		return table, errors.ErrDatasetMissing.WithDetails(map[string]interface{}{
			"dir":   l.cfg.Dir,
			"files": len(sources),
		})
	}

	l.logger.Info("Housing dataset loaded",
		zap.Int("files", loaded),
		zap.Int("rows", table.Len()),
		zap.Ints("years", table.Years()))

	return table, nil
}

func (l *Loader) loadFile(src Source, table *domain.HousingTable) (int, error) {
	data, err := os.ReadFile(src.File)
	if err != nil {
		return 0, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = DetectDelimiter(data)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	codeCol := findCodeColumn(header)
	if codeCol < 0 {
		return 0, fmt.Errorf("no INSEE code column in header %v", header)
	}

	rows := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if codeCol >= len(record) {
			continue
		}

		code, err := domain.NormalizeINSEECode(record[codeCol])
		if err != nil {
			continue
		}

		values := make(map[string]float64, len(header))
		for i, col := range header {
			if i == codeCol || i >= len(record) {
				continue
			}
			name := strings.TrimSpace(col)
			if name == "" || strings.EqualFold(name, "ANNEE") {
				continue
			}
			if v, ok := ParseNumber(record[i]); ok {
				values[name] = v
			}
		}

		table.Add(domain.HousingRecord{INSEECode: code, Year: src.Year, Values: values})
		rows++
	}

	return rows, nil
}

// DetectDelimiter выбирает разделитель по первой строке файла
func DetectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best, bestCount := candidateDelimiters[0], 0
	for _, d := range candidateDelimiters {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func findCodeColumn(header []string) int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToUpper(strings.TrimSpace(h))
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	for _, name := range codeColumns {
		if i, ok := idx[name]; ok {
			return i
		}
	}
	return -1
}

// ParseNumber понимает десятичную запятую и пробелы-разделители тысяч ("3 250,5")
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	// ParseFloat принимает "nan" и "inf", а JSON их не сериализует
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// resolvePath - относительные пути считаются от каталога base
func resolvePath(base, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(base, file)
}
