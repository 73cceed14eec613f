package constants

const (
	Version        = `0.1.0`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `/.atelier/`

	MetadataFile = `designs.json`
	SessionFile  = `session.json`

	// MetadataSchemaVersion is written into every persisted table and bumped
	// whenever the record shape changes incompatibly.
	MetadataSchemaVersion = `1.0`

	DesignExtension = `.html`
	ArchiveDirName  = `archive`
)
