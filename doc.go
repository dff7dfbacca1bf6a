// Package advisor implements a self-assessment of investment risk and a
// practice portfolio traded against a static catalog of Indian mutual funds,
// ETFs and bonds.
//
// The core functionalities include:
//   - Risk scoring: a five question questionnaire (Answers) is scored between
//     0 and 100 (Score) and mapped to a target allocation across equity, debt
//     and government securities (Allocate).
//   - Recommendations: the catalog is filtered and ranked for a score
//     (Recommend).
//   - Practice portfolio: simulated buys and sells with a weighted average
//     cost basis and an append-only transaction log (Portfolio).
//   - Sessions: the state of one user, persisted as a JSON snapshot through a
//     Store after every change (Session).
//
// Amounts are Indian rupees. There is no real money nor real market data: the
// prices are the catalog ones, optionally marked from a PriceFeed.
package advisor
