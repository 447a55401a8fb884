package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"bmi-advisor/internal/calculator"
	"bmi-advisor/internal/form"
	"bmi-advisor/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errRejected = errors.New("measurement rejected")

func (a *app) calcCmd() *cobra.Command {
	var fields form.Fields

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate BMI, advice and ideal weight once",
		Example: `  bmi calc --weight 70 --height 175
  bmi calc -w 60 -H 180 --sex female`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			advisor, err := a.advisor()
			if err != nil {
				return err
			}

			var out form.Results
			ok := form.Submit(advisor, fields, &out, form.AlertFunc(func(msg string) {
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
			}))
			if !ok {
				return errRejected
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "BMI:          %s\n", out.BMI)
			fmt.Fprintf(w, "Ideal weight: %s kg\n", out.IdealWeight)
			fmt.Fprintf(w, "Advice:       %s\n", out.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&fields.Weight, "weight", "w", "", "weight in kg")
	cmd.Flags().StringVarP(&fields.Height, "height", "H", "", "height in cm")
	cmd.Flags().StringVarP(&fields.Sex, "sex", "s", "male", "male or female")
	return cmd
}

func (a *app) formCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Open the interactive calculator form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			advisor, err := a.advisor()
			if err != nil {
				return err
			}
			p := tea.NewProgram(tui.New(advisor), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Print the BMI category ladder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			advisor, err := a.advisor()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CONDITION\tCATEGORY\tADVICE")
			for _, c := range calculator.CategoryTable(advisor.Ladder()) {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", condition(c), c.Label, c.Advice)
			}
			return tw.Flush()
		},
	}
}

func condition(c calculator.CategoryResponse) string {
	if c.Bound == nil {
		return "else"
	}
	op := ">"
	if c.Inclusive {
		op = ">="
	}
	return fmt.Sprintf("bmi %s %g", op, *c.Bound)
}
