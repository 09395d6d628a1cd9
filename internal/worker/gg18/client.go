// Package gg18 defines the round-execution interface for GG18 threshold
// ceremonies and an HTTP-bridge implementation that delegates each round to a
// local round-runner process.
//
// Every round consumes an opaque context string and produces the next one.
// Callers must thread the returned context into the following round unchanged.
package gg18

import "context"

// Client drives one party through a GG18 ceremony, one call per round.
//
// Key generation: KeygenNewContext, then KeygenRound1 through KeygenRound5.
// KeygenRound5 returns the final key store instead of another round context.
//
// Signing: SignNewContext with the ceremony shape, the key store and the
// message, then SignRound0 through SignRound9. SignRound9 returns the
// signature as a JSON array of [r, s, recovery_id].
type Client interface {
	KeygenNewContext(ctx context.Context, threshold, parties int) (string, error)
	KeygenRound1(ctx context.Context, roundCtx string) (string, error)
	KeygenRound2(ctx context.Context, roundCtx string) (string, error)
	KeygenRound3(ctx context.Context, roundCtx string) (string, error)
	KeygenRound4(ctx context.Context, roundCtx string) (string, error)
	KeygenRound5(ctx context.Context, roundCtx string) (string, error)

	SignNewContext(ctx context.Context, threshold, parties int, keyStore, message string) (string, error)
	SignRound0(ctx context.Context, roundCtx string) (string, error)
	SignRound1(ctx context.Context, roundCtx string) (string, error)
	SignRound2(ctx context.Context, roundCtx string) (string, error)
	SignRound3(ctx context.Context, roundCtx string) (string, error)
	SignRound4(ctx context.Context, roundCtx string) (string, error)
	SignRound5(ctx context.Context, roundCtx string) (string, error)
	SignRound6(ctx context.Context, roundCtx string) (string, error)
	SignRound7(ctx context.Context, roundCtx string) (string, error)
	SignRound8(ctx context.Context, roundCtx string) (string, error)
	SignRound9(ctx context.Context, roundCtx string) (string, error)
}
