package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lugondev/swapcpi/internal/solana"
)

var walletOut string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet management commands",
	Long:  `Commands for managing the payer keypair used by the rpc host.`,
}

var walletNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new wallet",
	Long:  `Generate a new keypair and write it in Solana CLI format.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := solana.NewWallet()
		if err := w.SaveToFile(walletOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n  Public Key: %s\n", walletOut, w)
		return nil
	},
}

var walletShowCmd = &cobra.Command{
	Use:   "show [KEYPAIR]",
	Short: "Show the public key of a keypair",
	Long:  `Show the public key of a keypair file or base58 key, defaulting to solana.keypair.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keypair := app.cfg.Solana.Keypair
		if len(args) == 1 {
			keypair = args[0]
		}
		w, err := solana.LoadWallet(keypair)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), w)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletNewCmd)
	walletCmd.AddCommand(walletShowCmd)
	walletNewCmd.Flags().StringVarP(&walletOut, "out", "o", "keypair.json", "output keypair file")
}
