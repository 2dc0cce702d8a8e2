// Package config resolves spamsift settings: where the model artifacts, the
// rule file and the history database live, and how the server and batch
// runner are tuned.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a configured file location such as
// "~/models/svm_model.json" or "$XDG_DATA_HOME/spamsift/history.db".
// A leading "~" becomes the home directory when it can be determined;
// environment variables are expanded afterwards. The empty path is returned
// unchanged, which keeps an unset rules.path meaning "built-in groups".
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
