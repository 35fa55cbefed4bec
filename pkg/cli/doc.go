// Package cli implements the command-line interface for the sysnap tool.
//
// # Overview
//
// The sysnap CLI assembles diagnostic snapshots of a Linux machine: one
// plain-text report covering OS identity, hardware, storage, network,
// services, logs, and user configuration. It is designed for the person
// helping a friend or family member debug a machine they cannot see.
//
// # Commands
//
// snapshot - Assemble a diagnostic report:
//
//	sysnap snapshot [--auto] [--output FILE] [--manifest FILE_OR_URL]
//
// Runs every registered section in order and writes the report artifact.
// Interactive mode prompts for the destination and confirms overwrites;
// automatic mode writes to the fixed XDG data location, archiving the
// previous report first. A machine-readable run summary goes to stdout.
//
// sections - List what a run would collect:
//
//	sysnap sections [--manifest FILE_OR_URL] [--format table|yaml|json]
//
// Renders the effective section registry without collecting anything, so
// the report contents can be audited before a run.
//
// publish - Push a report to an OCI registry:
//
//	sysnap publish --source DIR_OR_FILE --registry HOST --repository PATH [--tag TAG]
//
// Packages the report directory as an OCI artifact and pushes it with
// ORAS, authenticating through the Docker credential store.
//
// # Global Flags
//
//	--log-level     Log level: debug, info, warn, error (default: info)
//	--help, -h      Show command help
//	--version, -v   Show version information
//
// # Output Formats
//
// The report artifact itself is always plain text. The run summary and
// the sections listing support:
//
// YAML (summary default):
//   - Human-readable, preserves structure
//   - Suitable for version control
//
// JSON:
//   - Machine-parseable, compact
//   - Suitable for programmatic consumption
//
// Table (sections default):
//   - Flattened key/value representation
//   - Suitable for terminal viewing
//
// # Usage Examples
//
// Unattended snapshot keeping ten archives:
//
//	sysnap snapshot --auto --keep 10
//
// Snapshot with custom sections and a JSON summary:
//
//	sysnap snapshot --manifest ./extras.yaml --format json --summary-output summary.json
//
// Publish the report directory for remote debugging:
//
//	sysnap publish --source ~/.local/share/sysnap --registry ghcr.io --repository acme/support
//
// # Environment Variables
//
//	SYSNAP_LOG_LEVEL    Set logging verbosity (debug, info, warn, error)
//	SYSNAP_MANIFEST     Default section manifest path or URL
//	SYSNAP_CONFIG_DIR   Default configuration walk root
//	SYSNAP_FORMAT       Default summary format
//	SYSNAP_KUBECONFIG   Kubeconfig path for the cluster section
//	LOG_LEVEL           Fallback for SYSNAP_LOG_LEVEL
//
// # Exit Codes
//
//	0  Success, including runs with collector failures (they degrade into
//	   report entries, never abort the run)
//	1  Declined overwrite, unusable output directory, artifact write
//	   failure, or invalid arguments
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/report - Section registry and report assembly
//   - pkg/manifest - YAML section manifest loading
//   - pkg/archive - Automatic-mode rotation and pruning
//   - pkg/oci - OCI artifact packaging and push
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/sysnap-io/sysnap/pkg/cli.version=1.0.0'"
package cli
