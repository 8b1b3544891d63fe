package raydiumclmm

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"lukechampine.com/uint128"

	swaperrors "github.com/lugondev/swapcpi/internal/errors"
	"github.com/lugondev/swapcpi/pkg/discriminator"
	"github.com/lugondev/swapcpi/pkg/swap"
	"github.com/lugondev/swapcpi/pkg/types"
)

// SwapV2Params are the raw swap_v2 arguments.
type SwapV2Params struct {
	Amount               uint64
	OtherAmountThreshold uint64
	SqrtPriceLimitX64    uint128.Uint128
	IsBaseInput          bool
}

// ParamsFor maps a uniform swap request onto swap_v2 arguments. ExactIn fixes
// the input with amountOut as the minimum output; ExactOut fixes the output
// with amountIn as the maximum input. The price limit is left at zero, which
// the program treats as unbounded.
func ParamsFor(amountIn, amountOut uint64, mode swap.Mode) (SwapV2Params, error) {
	switch mode {
	case swap.ExactIn:
		return SwapV2Params{Amount: amountIn, OtherAmountThreshold: amountOut, IsBaseInput: true}, nil
	case swap.ExactOut:
		return SwapV2Params{Amount: amountOut, OtherAmountThreshold: amountIn, IsBaseInput: false}, nil
	}
	return SwapV2Params{}, swaperrors.ErrInvalidMode.WithDetails(map[string]any{"mode": mode.String()})
}

// Args converts the parameters back into a uniform swap request.
func (p SwapV2Params) Args() *swap.Args {
	if p.IsBaseInput {
		return &swap.Args{Mode: swap.ExactIn, AmountIn: p.Amount, AmountOut: p.OtherAmountThreshold}
	}
	return &swap.Args{Mode: swap.ExactOut, AmountIn: p.OtherAmountThreshold, AmountOut: p.Amount}
}

// Encode serializes the parameters behind the swap_v2 discriminator.
func (p SwapV2Params) Encode() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, SwapDataLen))
	buf.Write(SwapV2Discriminator.Bytes())

	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteUint64(p.Amount, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode amount: %w", err)
	}
	if err := enc.WriteUint64(p.OtherAmountThreshold, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode other amount threshold: %w", err)
	}
	limit := bin.Uint128{Lo: p.SqrtPriceLimitX64.Lo, Hi: p.SqrtPriceLimitX64.Hi}
	if err := enc.WriteUint128(limit, binary.LittleEndian); err != nil {
		return nil, fmt.Errorf("failed to encode sqrt price limit: %w", err)
	}
	if err := enc.WriteBool(p.IsBaseInput); err != nil {
		return nil, fmt.Errorf("failed to encode is base input: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeSwapData parses a swap_v2 payload.
func DecodeSwapData(data []byte) (SwapV2Params, error) {
	var p SwapV2Params
	if len(data) != SwapDataLen {
		return p, swaperrors.InvalidInstructionData(
			fmt.Sprintf("%s swap data must be %d bytes, got %d", Name, SwapDataLen, len(data)))
	}

	disc, _ := discriminator.FromBytes(data)
	if disc != SwapV2Discriminator {
		return p, swaperrors.InvalidInstructionData(fmt.Sprintf("unknown %s discriminator %s", Name, disc))
	}

	dec := bin.NewBorshDecoder(data[discriminator.Size:])
	var err error
	if p.Amount, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return p, swaperrors.ErrInvalidInstructionData.WithCause(err)
	}
	if p.OtherAmountThreshold, err = dec.ReadUint64(binary.LittleEndian); err != nil {
		return p, swaperrors.ErrInvalidInstructionData.WithCause(err)
	}
	limit, err := dec.ReadUint128(binary.LittleEndian)
	if err != nil {
		return p, swaperrors.ErrInvalidInstructionData.WithCause(err)
	}
	p.SqrtPriceLimitX64 = uint128.New(limit.Lo, limit.Hi)
	if last := data[len(data)-1]; last > 1 {
		return p, swaperrors.InvalidInstructionData(fmt.Sprintf("invalid bool byte %d", last))
	}
	if p.IsBaseInput, err = dec.ReadBool(); err != nil {
		return p, swaperrors.ErrInvalidInstructionData.WithCause(err)
	}

	return p, nil
}

// NewSwapInstruction builds the swap_v2 instruction for accounts.
func NewSwapInstruction(accounts *Accounts, amountIn, amountOut uint64, mode swap.Mode) (*types.Instruction, error) {
	params, err := ParamsFor(amountIn, amountOut, mode)
	if err != nil {
		return nil, err
	}
	data, err := params.Encode()
	if err != nil {
		return nil, err
	}
	return &types.Instruction{
		ProgramID: ProgramID,
		Accounts:  accounts.Metas(),
		Data:      data,
	}, nil
}
