// Package session reads transcript JSONL files and maintains the session
// corpus used by every aggregator.
package session

import (
	"os"
	"strings"
)

// homeEncoded is the user's home directory in the encoded form used by
// project directory names ("/" replaced with "-", no leading slash).
var homeEncoded = encodeHome()

func encodeHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return strings.ReplaceAll(strings.Trim(home, "/"), "/", "-")
}

// Known directory prefixes that commonly precede the project name after the
// home segment has been stripped.
var knownPrefixes = []string{"Documents-work-", "Documents-"}

// DecodeProjectName extracts a display name from an encoded project
// directory name. The tool encodes the session's working directory by
// replacing "/" with "-", so "-Users-me-Documents-work-gitlore" becomes
// "gitlore". A name that strips down to nothing falls back to the raw
// stripped directory name.
func DecodeProjectName(dirName string) string {
	return decodeProjectName(dirName, homeEncoded)
}

func decodeProjectName(dirName, home string) string {
	name := strings.TrimLeft(dirName, "-")
	if home != "" {
		if name == home {
			return "~"
		}
		name = strings.TrimPrefix(name, home+"-")
	}
	for _, prefix := range knownPrefixes {
		if strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	if name == "" {
		return strings.TrimLeft(dirName, "-")
	}
	return name
}

// DisplayPath returns the abbreviated path form of an encoded project
// directory name, with the home segment shown as "~".
func DisplayPath(dirName string) string {
	return displayPath(dirName, homeEncoded)
}

func displayPath(dirName, home string) string {
	name := strings.TrimLeft(dirName, "-")
	if home != "" {
		if name == home {
			return "~"
		}
		if strings.HasPrefix(name, home+"-") {
			return "~/" + name[len(home)+1:]
		}
	}
	return name
}
