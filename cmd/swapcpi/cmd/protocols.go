package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/lugondev/swapcpi/pkg/programs"
	"github.com/lugondev/swapcpi/pkg/swap"
)

var protocolsCmd = &cobra.Command{
	Use:   "protocols",
	Short: "List supported swap protocols",
	Long:  `List every protocol the dispatcher recognises with its program ID.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPROGRAM ID")
		for _, adapter := range programs.Adapters() {
			fmt.Fprintf(w, "%s\t%s\n", adapter.Name(), adapter.ProgramID())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(protocolsCmd)
}

// lookupAdapter finds a built-in adapter by name or program ID.
func lookupAdapter(registry *swap.Registry, nameOrID string) (swap.Adapter, error) {
	if adapter, ok := registry.LookupName(nameOrID); ok {
		return adapter, nil
	}
	if key, err := solana.PublicKeyFromBase58(nameOrID); err == nil {
		if adapter, ok := registry.Lookup(key); ok {
			return adapter, nil
		}
	}
	return nil, fmt.Errorf("unknown protocol %q", nameOrID)
}
