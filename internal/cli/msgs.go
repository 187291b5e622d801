package cli

// Command descriptions
const (
	MsgRootShort = "Link container-mounted files into the home directory from a CSV mapping"
	MsgRootLong  = `vpath reads a CSV file with source_path and target_path columns.
Each source_path is rewritten from its host-side manifest root (listed in the
workflow job descriptor) to the container mount point, and a symbolic link is
created at <home>/<mount point>/<target_path>/<file name>.

Rows that fail (missing source, existing link) are reported and skipped.`
	MsgVersionShort   = "Print version information"
	MsgGenConfigShort = "Print the effective configuration as TOML"
)

// Flag descriptions
const (
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig        = "Config file (default $XDG_CONFIG_HOME/vpath/config.toml)"
	MsgFlagMountPoint    = "Container mount point holding the files"
	MsgFlagJobDescriptor = "Path of the JSON job descriptor listing the manifest roots"
	MsgFlagHome          = "Directory links are created under (default: your home)"
	MsgFlagPrintIndex    = "List every file found under the mount point"
	MsgFlagDryRun        = "Report the links that would be created without creating them"
	MsgFlagStyles        = "YAML file overriding the output styles"
	MsgFlagNoColor       = "Disable colored output"
)

// Output formats
const (
	MsgVersionFormat = "vpath version %s\n  commit: %s\n  built:  %s\n"
	MsgErrorFormat   = "Error: %v"
)
