package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lugondev/swapcpi/internal/manifest"
	"github.com/lugondev/swapcpi/internal/solana"
	"github.com/lugondev/swapcpi/pkg/host"
	"github.com/lugondev/swapcpi/pkg/programs"
	"github.com/lugondev/swapcpi/pkg/swap"
)

const (
	hostRecorder = "recorder"
	hostRPC      = "rpc"
)

var (
	invokeHost      string
	invokeRepeat    int
	invokeSend      bool
	invokeKeypair   string
	invokeCoSigners []string
)

var invokeCmd = &cobra.Command{
	Use:   "invoke MANIFEST",
	Short: "Dispatch the swap described by a manifest",
	Long: `Dispatch a swap through the protocol detected from the manifest's first
account.

With --host recorder the instruction is checked against the runtime's
privilege rules in-process. With --host rpc it is wrapped in a transaction
paid for by the configured keypair and simulated, or sent with --send.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := loadInvocation(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmdContext(cmd), app.cfg.Solana.RequestTimeout())
		defer cancel()

		switch invokeHost {
		case hostRecorder:
			rec := host.NewRecorder(inv.CallerProgram).WithLogger(app.logger)
			if err := dispatch(ctx, rec, inv); err != nil {
				return err
			}
			printRecorded(cmd.OutOrStdout(), rec)
			return nil
		case hostRPC:
			h, closeFn, err := newRPCHost()
			if err != nil {
				return err
			}
			defer closeFn()
			if err := dispatch(ctx, h, inv); err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), h)
			return nil
		default:
			return fmt.Errorf("unknown host %q", invokeHost)
		}
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	invokeCmd.Flags().StringVar(&invokeHost, "host", hostRecorder, "execution host (recorder, rpc)")
	invokeCmd.Flags().IntVar(&invokeRepeat, "repeat", 1, "dispatch the swap this many times")
	invokeCmd.Flags().BoolVar(&invokeSend, "send", false, "send the transaction instead of simulating it (rpc host)")
	invokeCmd.Flags().StringVar(&invokeKeypair, "keypair", "", "payer keypair file or base58 key (overrides solana.keypair)")
	invokeCmd.Flags().StringSliceVar(&invokeCoSigners, "co-signer", nil, "additional signer keypair files or base58 keys (rpc host)")
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func dispatch(ctx context.Context, h host.Host, inv *manifest.Invocation) error {
	d := programs.NewDispatcher(h,
		swap.WithMetrics(app.metrics),
		swap.WithDispatcherLogger(app.logger),
	)
	for i := 0; i < invokeRepeat; i++ {
		if err := d.SwapSigned(ctx, inv.Accounts, inv.AmountIn, inv.AmountOut, inv.Mode, inv.Signers); err != nil {
			return err
		}
	}
	return nil
}

func newRPCHost() (*solana.RPCHost, func(), error) {
	cfg := app.cfg.Solana

	keypair := cfg.Keypair
	if invokeKeypair != "" {
		keypair = invokeKeypair
	}
	payer, err := solana.LoadWallet(keypair)
	if err != nil {
		return nil, nil, fmt.Errorf("payer: %w", err)
	}

	coSigners := make([]*solana.Wallet, 0, len(invokeCoSigners))
	for _, k := range invokeCoSigners {
		w, err := solana.LoadWallet(k)
		if err != nil {
			return nil, nil, fmt.Errorf("co-signer: %w", err)
		}
		coSigners = append(coSigners, w)
	}

	client := solana.NewClientFromConfig(&cfg)
	h := solana.NewRPCHost(client, payer,
		solana.WithSimulate(cfg.Simulate && !invokeSend),
		solana.WithRateLimit(cfg.RateLimit, 1),
		solana.WithCoSigners(coSigners...),
		solana.WithHostMetrics(app.metrics),
	).WithLogger(app.logger)

	return h, func() { _ = client.Close() }, nil
}

func printRecorded(w io.Writer, rec *host.Recorder) {
	for i, inv := range rec.Invocations() {
		fmt.Fprintf(w, "Invocation %d\n", i)
		fmt.Fprintf(w, "Program ID: %s\n", inv.Instruction.ProgramID)
		fmt.Fprintf(w, "Data:       %x\n", inv.Instruction.Data)
		printMetas(w, inv.Instruction.Accounts)
		for _, pda := range inv.SignedPDAs {
			fmt.Fprintf(w, "Signed PDA: %s\n", pda)
		}
	}
}

func printResult(w io.Writer, h *solana.RPCHost) {
	res, ok := h.Last()
	if !ok {
		return
	}
	if !res.Simulated {
		fmt.Fprintf(w, "Signature: %s\n", res.Signature)
		return
	}
	fmt.Fprintf(w, "Simulation succeeded, %d compute units\n", res.UnitsConsumed)
	for _, line := range res.Logs {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
