package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/lugondev/swapcpi/internal/manifest"
	"github.com/lugondev/swapcpi/pkg/programs"
	"github.com/lugondev/swapcpi/pkg/types"
)

var (
	encodeFormat string
	encodeJSON   bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode MANIFEST",
	Short: "Build the swap instruction described by a manifest",
	Long: `Resolve a YAML account manifest, detect its protocol from the first
account and print the resulting instruction without invoking it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := loadInvocation(args[0])
		if err != nil {
			return err
		}

		sc, err := programs.NewRegistry().TryFromAccounts(inv.Accounts)
		if err != nil {
			return err
		}
		ix, err := sc.Instruction(inv.AmountIn, inv.AmountOut, inv.Mode)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if encodeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(ix)
		}

		data, err := encodeData(ix.Data, encodeFormat)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Protocol:   %s\n", sc.Protocol())
		fmt.Fprintf(out, "Program ID: %s\n", ix.ProgramID)
		fmt.Fprintf(out, "Data:       %s\n", data)
		printMetas(out, ix.Accounts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVar(&encodeFormat, "format", "hex", "data encoding (hex, base64, base58)")
	encodeCmd.Flags().BoolVar(&encodeJSON, "json", false, "print the instruction as JSON")
}

func loadInvocation(path string) (*manifest.Invocation, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return m.Resolve()
}

func encodeData(data []byte, format string) (string, error) {
	switch format {
	case "hex":
		return hex.EncodeToString(data), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(data), nil
	case "base58":
		return base58.Encode(data), nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func printMetas(w io.Writer, metas []types.AccountMeta) {
	fmt.Fprintf(w, "Accounts:   %d\n", len(metas))
	for i, meta := range metas {
		flags := []byte("--")
		if meta.IsWritable {
			flags[0] = 'w'
		}
		if meta.IsSigner {
			flags[1] = 's'
		}
		fmt.Fprintf(w, "  %2d %s %s\n", i, flags, meta.Pubkey)
	}
}
