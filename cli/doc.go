// Package cli implements the market-finder command line.
//
// Subcommands:
//
//	serve   run the HTTP front-end and JSON API
//	lookup  resolve one selection and print matching carriers
//	states  list states and whether they are licensed
//	lobs    list the lines of business for a business type
//	browse  interactive terminal front-end
//
// Every command shares the --config, --data and --log-level flags; settings
// can also come from MARKETFINDER_* environment variables.
package cli
