package config

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultUserAgent = "smbsuite-cli"

	DefaultDBFileName  = "smbsuite.db"
	DefaultLogFileName = "smbsuite.log"

	ThemeDark  = "dark"
	ThemeLight = "light"

	ModeTUI  = "tui"
	ModeREPL = "repl"
)
