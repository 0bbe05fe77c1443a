// Package logging provides structured logging using uber/zap.
//
// Two modes are offered:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for human readability
//
// Provider failures inside the advisory gateway are logged here as warnings;
// nothing above the gateway ever sees them as errors.
package logging
