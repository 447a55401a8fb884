package main

import (
	"fmt"
	"os"

	"bmi-advisor/internal/bmi"
	"bmi-advisor/internal/config"
	"bmi-advisor/internal/formula"
	"bmi-advisor/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "bmi",
		Short:         "BMI calculator and advisory service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			level := cfg.Logging.Level
			if a.verbose {
				level = "debug"
			}
			logger, err := logging.New(level, cfg.Logging.Development)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.serveCmd(),
		a.calcCmd(),
		a.formCmd(),
		a.categoriesCmd(),
	)
	return root
}

// advisor builds the advisor, installing any configured formulas.
func (a *app) advisor() (*bmi.Advisor, error) {
	var opts []bmi.Option
	overrides := map[bmi.Sex]string{
		bmi.Male:   a.cfg.Advisor.IdealWeight.Male,
		bmi.Female: a.cfg.Advisor.IdealWeight.Female,
	}
	for sex, expr := range overrides {
		if expr == "" {
			continue
		}
		f, err := formula.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("advisor.ideal_weight.%s: %w", sex, err)
		}
		a.logger.Debug("ideal weight formula", zap.String("sex", string(sex)), zap.Stringer("formula", f))
		opts = append(opts, bmi.WithIdealWeight(sex, f.Eval))
	}
	return bmi.NewAdvisor(opts...), nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
