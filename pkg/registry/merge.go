package registry

import (
	"strconv"
	"strings"
	"time"
)

// MergeInput describes the profile being registered.
type MergeInput struct {
	// ProfileName is the Name the default profile must carry.
	ProfileName string

	// RelativePath is the profile directory relative to the profile
	// root, written to the new Profile section and forced onto every
	// Install section.
	RelativePath string

	// UpdateOnly keeps the existing Profile sections as-is (order and
	// numbering) and only moves the Default flag. Used when the profile
	// already appears in the registry.
	UpdateOnly bool
}

// MergeResult is the outcome of a registry merge.
type MergeResult struct {
	// ProfilesINI is the serialized profiles.ini content.
	ProfilesINI string

	// InstallHashes are the install hashes carried over from the source
	// registry, sorted ascending. The merged profiles.ini is
	// authoritative for installs.ini: these are the only hashes the
	// installs file may contain.
	InstallHashes []string
}

// Merge rewrites a parsed profiles.ini registry so that the given
// profile is the default for every profile launch and every known
// browser installation.
//
// Insert mode re-emits existing Profile sections renumbered from 0 with
// their Default flag stripped, then appends the target profile as the
// final section with Default=1. Update-only mode preserves section
// names and order and only toggles Default onto the section whose Name
// matches. Both modes re-emit every Install section with
// Default=<relative path> and Locked=1.
//
// After any successful merge exactly one Profile section carries
// Default=1 and its Name equals in.ProfileName. Merging twice with
// identical input yields byte-identical output.
func Merge(src *Registry, in MergeInput) MergeResult {
	start := time.Now()

	var b strings.Builder
	writeLine := func(parts ...string) {
		for _, p := range parts {
			b.WriteString(p)
		}
		b.WriteByte('\n')
	}
	writeSection := func(name string) {
		writeLine("[", name, "]")
	}

	writeSection("General")
	writeLine("StartWithLastProfile=1")
	writeLine("Version=2")
	writeLine()

	if in.UpdateOnly {
		for _, prof := range src.Profiles() {
			writeSection(prof.Name)
			for _, k := range prof.Keys() {
				if k == keyDefault {
					continue
				}
				writeLine(k, "=", prof.Get(k))
			}
			if prof.Get(keyName) == in.ProfileName {
				writeLine(keyDefault, "=1")
			}
			writeLine()
		}
	} else {
		num := 0
		for _, prof := range src.Profiles() {
			if prof.Get(keyName) == in.ProfileName {
				// A stale section for the target profile is replaced by
				// the appended one rather than carried over.
				continue
			}
			writeSection(profilePrefix + strconv.Itoa(num))
			for _, k := range prof.Keys() {
				if k == keyDefault {
					continue
				}
				writeLine(k, "=", prof.Get(k))
			}
			writeLine()
			num++
		}

		writeSection(profilePrefix + strconv.Itoa(num))
		writeLine(keyName, "=", in.ProfileName)
		writeLine(keyIsRelative, "=1")
		writeLine(keyPath, "=", in.RelativePath)
		writeLine(keyDefault, "=1")
		writeLine()
	}

	hashes := src.InstallHashes()
	for _, hash := range hashes {
		writeSection(installPrefix + hash)
		writeLine(keyDefault, "=", in.RelativePath)
		writeLine(keyLocked, "=1")
		writeLine()
	}

	mode := "insert"
	if in.UpdateOnly {
		mode = "update"
	}
	mergeTotal.WithLabelValues(mode).Inc()
	mergeDuration.Observe(time.Since(start).Seconds())

	return MergeResult{
		ProfilesINI:   strings.TrimRight(b.String(), "\n") + "\n",
		InstallHashes: hashes,
	}
}

// BuildInstallsINI serializes the installs.ini content mirroring the
// given install hashes. Section headers in installs.ini carry the bare
// hash, without the Install prefix used in profiles.ini.
func BuildInstallsINI(hashes []string, relativePath string) string {
	if len(hashes) == 0 {
		return ""
	}
	var b strings.Builder
	for _, hash := range hashes {
		b.WriteString("[" + hash + "]\n")
		b.WriteString(keyDefault + "=" + relativePath + "\n")
		b.WriteString(keyLocked + "=1\n")
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
