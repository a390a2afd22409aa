// Package capgains computes the realized capital gains of a tax year from the
// history of buy and sell transactions of a broker account.
//
// The core functionalities include:
//   - Money: exact decimal amounts tagged with an optional currency, that
//     refuse to mix currencies.
//   - Ledger: the average cost basis of each instrument, updated by each
//     transaction in date order.
//   - Accumulator: the realized gains and losses of each calendar year.
//   - Report: the profit of a target year, and the profit adjusted by the
//     losses carried over from previous years.
//
// A Portfolio ties them together: it pulls transactions one at a time from
// an ordered source (see DecodeDegiro and DecodeLedger) and stops reading as
// soon as the target year is complete.
//
// This package serves as the foundational logic for the `cgt` command-line tool.
package capgains
