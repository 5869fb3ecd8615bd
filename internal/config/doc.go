// Package config loads and validates the YAML configuration shared by the
// teamgravd daemon and the stressreport CLI, and watches the file for
// hot-reload via fsnotify. A failed reload keeps the previous configuration
// active.
package config
