// Package sampler decides which traces are recorded in full.
//
// A Sampler is consulted exactly once per trace, when the root span is
// created; every descendant span inherits the decision unchanged.
// Sampling sits on the hot path of every traced call, so the stateful
// rate-limiting sampler maintains its token counter with atomic
// operations only and never takes a lock.
//
// Three policies exist:
//
//   - Never: used when no span reporter is configured, because recorded
//     data would have nowhere to go.
//   - RateLimiting: the default once a reporter is configured, admitting
//     at most N traces per second.
//   - An explicit override supplied by the deployment, which wins
//     unconditionally (Always is the usual choice).
//
// New is the single decision function encoding this precedence. Every
// caller that needs a sampler resolves it through New; the selection
// logic is deliberately not duplicated anywhere else, so independent
// configuration paths cannot drift apart.
package sampler
