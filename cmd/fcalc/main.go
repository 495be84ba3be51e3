package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridcalc/formula"
)

var cellBindings []string

var rootCmd = &cobra.Command{
	Use:   "fcalc",
	Short: "Spreadsheet formula calculator",
	Long: `Evaluate spreadsheet formulas from the command line.

Commands:
  eval       Evaluate a formula expression and print the result.
  functions  List every registered function name.

Cell references resolve against --set bindings, e.g.:
  fcalc eval --set A1=5 --set A2=10 "=SUM(A1:A2)"`,
}

var evalCmd = &cobra.Command{
	Use:   "eval [formula]",
	Short: "Evaluate a formula expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newCellStore()
		for _, binding := range cellBindings {
			if err := store.bind(binding); err != nil {
				return err
			}
		}

		engine := formula.NewEngine()
		ctx := formula.NewContext(formula.CellRef{})
		ctx.Cells = store

		result := evalFormula(engine, ctx, store, args[0])
		fmt.Println(formula.ToText(result))
		return nil
	},
}

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List every registered function name",
	Run: func(cmd *cobra.Command, args []string) {
		engine := formula.NewEngine()
		fmt.Println(strings.Join(engine.Names(), "\n"))
	},
}

func init() {
	evalCmd.Flags().StringArrayVar(&cellBindings, "set", nil,
		"bind a cell value, e.g. --set A1=42 or --set B2=hello")
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(functionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
