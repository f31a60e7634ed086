package main

import (
	"fmt"

	pihex "github.com/memes/pihex"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	StartFlagName     = "start"
	CountFlagName     = "count"
	DefaultDigitCount = 100
)

// Implements the calc sub-command which calculates the requested digits
// in-process, without a PiHexService.
func NewCalcCmd() (*cobra.Command, error) {
	calcCmd := &cobra.Command{
		Use:     "calc",
		Short:   "Calculate hexadecimal digits of pi in-process",
		Long:    `Calculates the fractional hexadecimal digits of pi beginning at an arbitrary zero-based offset and prints the result.`,
		PreRunE: bindViperFlags,
		RunE:    calcMain,
	}
	calcCmd.PersistentFlags().Int64P(StartFlagName, "s", 0, "The zero-based offset of the first fractional digit to calculate")
	calcCmd.PersistentFlags().Int64P(CountFlagName, "c", DefaultDigitCount, "The number of hexadecimal digits to calculate")
	return calcCmd, nil
}

// Binds the executed sub-command's flags to viper. Binding at execution time
// keeps sub-commands that share flag names, such as start and count, from
// clobbering each other's values.
func bindViperFlags(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind pflags: %w", err)
	}
	return nil
}

// Calc sub-command entrypoint.
func calcMain(_ *cobra.Command, _ []string) error {
	start := viper.GetInt64(StartFlagName)
	count := viper.GetInt64(CountFlagName)
	logger := logger.V(1).WithValues(StartFlagName, start, CountFlagName, count)
	logger.V(0).Info("Calculating digits")
	pihex.Logger = logger
	digits, err := pihex.GetDigits(start, count)
	if err != nil {
		return fmt.Errorf("failed to calculate digits: %w", err)
	}
	if start == 0 {
		fmt.Print("Result is: 3.") //nolint:forbidigo // This is a deliberate choice
	} else {
		fmt.Printf("Result from offset %d is: ", start) //nolint:forbidigo // This is a deliberate choice
	}
	fmt.Println(pihex.FormatDigits(digits)) //nolint:forbidigo // This is a deliberate choice
	return nil
}
