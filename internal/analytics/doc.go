// Package analytics turns a user's task snapshot and a date range into
// chart-ready structures: status counts, a status donut, a seven-week
// productivity series with its SVG line path, and five months of
// created/completed bars.
//
// Everything here is a pure function of its inputs. Raw status strings are
// translated exactly once, by Normalize (analytics buckets) or
// NormalizeBoard (board columns); the two differ in aliases and fallback.
package analytics
