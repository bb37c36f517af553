package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/city-fighting/internal/domain"
	"github.com/city-fighting/internal/usecase/dto"
)

// Aggregator - агрегат одного города
type Aggregator interface {
	Aggregate(ctx context.Context, cityName string) (*domain.CityAggregateRecord, error)
}

// Comparator - сравнение двух городов
type Comparator interface {
	Compare(ctx context.Context, cityA, cityB string) (*dto.ComparisonResponse, error)
}

// Catalog - каталог городов
type Catalog interface {
	List(ctx context.Context) ([]domain.CommuneSummary, error)
}

// HousingPreloader - загрузка жилищного датасета и его состояние
type HousingPreloader interface {
	Preload(ctx context.Context) domain.HousingStatus
}

// Deps - зависимости команд
type Deps struct {
	Aggregator Aggregator
	Comparator Comparator
	Catalog    Catalog
	Housing    HousingPreloader
}

// NewRootCommand собирает дерево команд. Зависимости запрашиваются лениво через deps,
// чтобы --help работал без конфигурации.
func NewRootCommand(deps func() (*Deps, error)) *cobra.Command {
	var output string

	root := &cobra.Command{
		Use:           "citycli",
		Short:         "Сравнение французских городов",
		Long:          "Собирает погоду, точки интереса, показатели INSEE, транспорт и жилье по городу и сравнивает два города",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&output, "output", "o", OutputText, "Формат вывода (text, json)")

	checkOutput := func(*cobra.Command, []string) error {
		if output != OutputText && output != OutputJSON {
			return fmt.Errorf("unknown output format %q (text, json)", output)
		}
		return nil
	}

	cityCmd := &cobra.Command{
		Use:     "city [город]",
		Short:   "Данные по одному городу",
		Args:    cobra.ExactArgs(1),
		PreRunE: checkOutput,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deps()
			if err != nil {
				return err
			}
			rec, err := d.Aggregator.Aggregate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			return writeCity(cmd.OutOrStdout(), rec)
		},
	}

	compareCmd := &cobra.Command{
		Use:     "compare [город A] [город B]",
		Short:   "Сравнить два города",
		Args:    cobra.ExactArgs(2),
		PreRunE: checkOutput,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deps()
			if err != nil {
				return err
			}
			cmp, err := d.Comparator.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if output == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), cmp)
			}
			return writeComparison(cmd.OutOrStdout(), cmp)
		},
	}

	citiesCmd := &cobra.Command{
		Use:     "cities",
		Short:   "Каталог городов выше порога населения",
		Args:    cobra.NoArgs,
		PreRunE: checkOutput,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deps()
			if err != nil {
				return err
			}
			cities, err := d.Catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			if output == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), cities)
			}
			return writeCities(cmd.OutOrStdout(), cities)
		},
	}

	housingCmd := &cobra.Command{
		Use:     "housing-status",
		Short:   "Состояние жилищного датасета",
		Args:    cobra.NoArgs,
		PreRunE: checkOutput,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deps()
			if err != nil {
				return err
			}
			status := d.Housing.Preload(cmd.Context())
			if output == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), status)
			}
			return writeHousingStatus(cmd.OutOrStdout(), status)
		},
	}

	root.AddCommand(cityCmd, compareCmd, citiesCmd, housingCmd)
	return root
}
