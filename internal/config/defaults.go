package config

import "github.com/fenilsonani/folder-organizer/internal/classifier"

// GetDefault returns the default configuration
func GetDefault() *Config {
	rules := classifier.DefaultRules()

	cfg := &Config{
		TargetDir:      "cluttered_folder",
		DaysToArchive:  rules.DaysToArchive,
		ArchiveFolder:  rules.ArchiveFolder,
		FallbackFolder: rules.FallbackFolder,
		ExcludePattern: []string{},
		Overwrite:      false, // Collisions are reported, never overwritten silently
		DryRun:         false,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}

	for _, r := range rules.Categories {
		cfg.Categories = append(cfg.Categories, CategoryConfig{Name: r.Name, Extensions: r.Extensions})
	}
	for _, r := range rules.BroadTypes {
		cfg.BroadTypes = append(cfg.BroadTypes, BroadTypeConfig{Name: r.Name, Prefix: r.Prefix})
	}

	return cfg
}

// GetExampleConfig returns an example configuration with comments
func GetExampleConfig() string {
	return `# Folder Organizer Configuration File
# Location: ~/.config/folder-organizer/config.yaml

# Directory to organize when none is given on the command line.
# Only its top-level files are moved; subdirectories are never touched.
target_dir: "cluttered_folder"

# Files last modified more than this many days ago go to the archive folder,
# whatever their type.
days_to_archive: 30

# Archive and catch-all folder names
archive_folder: "Old_Files"
fallback_folder: "Miscellaneous"

# Extension rules, checked in order. An extension may only appear once.
categories:
  - name: Images
    extensions: [".jpg", ".jpeg", ".png", ".gif"]
  - name: Documents
    extensions: [".pdf", ".docx", ".txt"]
  - name: Archives
    extensions: [".zip", ".rar", ".7z"]
  - name: Code
    extensions: [".py", ".js", ".html"]

# Fallback rules for unmatched extensions, keyed by content-type prefix
# ("image" matches image/heic, image/webp, ...)
broad_types:
  - name: Images
    prefix: image
  - name: Videos
    prefix: video
  - name: Audio
    prefix: audio

# Extra extension to content-type mappings
content_types:
  ".psd": "image/vnd.adobe.photoshop"

# Files matching these glob patterns stay where they are
exclude_patterns:
  - "*.part"
  - "~$*"

# Replace an existing file of the same name in the destination folder.
# When false the file is left in place and reported as an error.
overwrite: false

# Show what would be moved without moving anything
dry_run: false

# Logging - events are written here in addition to the console
log:
  level: info      # debug, info, warn, error
  format: text     # text or json
  file: ""         # e.g. ~/.local/state/folder-organizer/organize.log
                   # a log file inside the target directory is left in place
`
}
