package housing

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source - один годовой файл датасета
type Source struct {
	Year int    `yaml:"year"`
	File string `yaml:"file"`
}

// Manifest - явный список файлов вместо шаблона api_logement_{year}.csv
//
//	sources:
//	  - year: 2022
//	    file: logement_2022.csv
type Manifest struct {
	Sources []Source `yaml:"sources"`
}

// Sources возвращает список файлов: из манифеста, если он задан, иначе по диапазону лет
func (l *Loader) Sources() ([]Source, error) {
	if l.cfg.Manifest != "" {
		return readManifest(l.cfg.Manifest)
	}

	sources := make([]Source, 0, l.cfg.LastYear-l.cfg.FirstYear+1)
	for year := l.cfg.FirstYear; year <= l.cfg.LastYear; year++ {
		sources = append(sources, Source{
			Year: year,
			File: filepath.Join(l.cfg.Dir, fmt.Sprintf("api_logement_%d.csv", year)),
		})
	}
	return sources, nil
}

func readManifest(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read housing manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse housing manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	sources := make([]Source, 0, len(m.Sources))
	for i, s := range m.Sources {
		if s.File == "" || s.Year <= 0 {
			return nil, fmt.Errorf("housing manifest %s: entry %d needs year and file", path, i)
		}
		sources = append(sources, Source{Year: s.Year, File: resolvePath(base, s.File)})
	}
	return sources, nil
}
