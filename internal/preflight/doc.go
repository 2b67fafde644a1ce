// Package preflight provides readiness checks for the filesystem paths and
// external tools yoloprep depends on.
//
// These checks run in two contexts:
//   - The prepare command calls RunAll before locking the output root and
//     refuses to start when a required check fails.
//   - The CLI "yoloprep check" command renders every Result as a table.
package preflight
