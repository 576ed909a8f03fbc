// Package cli contains the command line interface for meshdef.
//
// # Usage
//
// The default command reads a mesh description from a file or stdin,
// evaluates every binding, and prints the resolved mesh:
//
//	meshdef read square.mesh
//	cat square.mesh | meshdef read --output=json
//
// Additional subcommands parse without evaluating (check), reformat
// descriptions (fmt native|json|yaml|ast), evaluate one-off arithmetic
// expressions (eval), and start an interactive calculator (repl).
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
//     (default: ~/.cache/meshdef/pprof)
//
// # Examples
//
//	# Validate a mesh description
//	meshdef check domain.mesh
//
//	# Evaluate with trace logging
//	meshdef read --log-level=trace domain.mesh
//
//	# Reformat to canonical syntax
//	meshdef fmt native domain.mesh
//
//	# One-off arithmetic
//	meshdef eval 'cos(pi/4)^2'
package cli
