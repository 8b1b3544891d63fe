package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lugondev/swapcpi/internal/manifest"
	"github.com/lugondev/swapcpi/pkg/programs"
	"github.com/lugondev/swapcpi/pkg/swap"
)

var (
	decodeProtocol    string
	decodeInDecimals  int
	decodeOutDecimals int
)

var decodeCmd = &cobra.Command{
	Use:   "decode DATA",
	Short: "Decode swap instruction data",
	Long: `Decode the data of a swap instruction. DATA may be hex, base58 or
carry an explicit "hex:", "base64:" or "base58:" prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter, err := lookupAdapter(programs.NewRegistry(), decodeProtocol)
		if err != nil {
			return err
		}
		data, err := manifest.DecodeData(args[0])
		if err != nil {
			return err
		}
		decoded, err := adapter.DecodeInstruction(data)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Protocol:   %s\n", adapter.Name())
		fmt.Fprintf(out, "Mode:       %s\n", decoded.Mode)
		fmt.Fprintf(out, "Amount In:  %s\n", formatAmount(decoded.AmountIn, decodeInDecimals))
		fmt.Fprintf(out, "Amount Out: %s\n", formatAmount(decoded.AmountOut, decodeOutDecimals))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringVarP(&decodeProtocol, "protocol", "p", "", "protocol name or program ID")
	decodeCmd.Flags().IntVar(&decodeInDecimals, "in-decimals", -1, "render amount in with these mint decimals")
	decodeCmd.Flags().IntVar(&decodeOutDecimals, "out-decimals", -1, "render amount out with these mint decimals")
	_ = decodeCmd.MarkFlagRequired("protocol")
}

func formatAmount(amount uint64, decimals int) string {
	if decimals < 0 || decimals > swap.MaxDecimals {
		return fmt.Sprintf("%d", amount)
	}
	return fmt.Sprintf("%d (%s)", amount, swap.FormatUIAmount(amount, uint8(decimals)))
}
