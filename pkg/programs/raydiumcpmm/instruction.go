package raydiumcpmm

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/pkg/discriminator"
	"github.com/lugondev/swapcpi/pkg/swap"
	"github.com/lugondev/swapcpi/pkg/types"
)

var matcher = discriminator.NewMatcher(SwapBaseInputDiscriminator, SwapBaseOutputDiscriminator)

// discriminatorFor returns the instruction selected by mode.
func discriminatorFor(mode swap.Mode) (discriminator.Discriminator, error) {
	switch mode {
	case swap.ExactIn:
		return SwapBaseInputDiscriminator, nil
	case swap.ExactOut:
		return SwapBaseOutputDiscriminator, nil
	}
	return discriminator.Discriminator{}, swaperrors.ErrInvalidMode.WithDetails(map[string]any{"mode": mode.String()})
}

// EncodeSwapData builds the 24-byte payload: discriminator, amount_in and
// amount_out, both little-endian u64.
//
// For swap_base_input amount_out is the minimum accepted output; for
// swap_base_output amount_in is the maximum accepted input.
func EncodeSwapData(amountIn, amountOut uint64, mode swap.Mode) ([]byte, error) {
	disc, err := discriminatorFor(mode)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, SwapDataLen))
	buf.Write(disc.Bytes())

	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteUint64(amountIn, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode amount_in: %w", err)
	}
	if err := enc.WriteUint64(amountOut, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode amount_out: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeSwapData parses a payload produced by EncodeSwapData.
func DecodeSwapData(data []byte) (*swap.Args, error) {
	if len(data) != SwapDataLen {
		return nil, swaperrors.InvalidInstructionData(
			fmt.Sprintf("%s swap data must be %d bytes, got %d", Name, SwapDataLen, len(data)))
	}

	var args swap.Args
	switch matcher.MatchData(data) {
	case 0:
		args.Mode = swap.ExactIn
	case 1:
		args.Mode = swap.ExactOut
	default:
		return nil, swaperrors.InvalidInstructionData(
			fmt.Sprintf("unknown %s discriminator %x", Name, data[:discriminator.Size]))
	}

	dec := bin.NewBorshDecoder(data[discriminator.Size:])
	var err error
	if args.AmountIn, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return nil, swaperrors.ErrInvalidInstructionData.WithCause(err)
	}
	if args.AmountOut, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return nil, swaperrors.ErrInvalidInstructionData.WithCause(err)
	}

	return &args, nil
}

// NewSwapInstruction builds the swap instruction for accounts.
func NewSwapInstruction(accounts *Accounts, amountIn, amountOut uint64, mode swap.Mode) (*types.Instruction, error) {
	data, err := EncodeSwapData(amountIn, amountOut, mode)
	if err != nil {
		return nil, err
	}
	return &types.Instruction{
		ProgramID: ProgramID,
		Accounts:  accounts.Metas(),
		Data:      data,
	}, nil
}
