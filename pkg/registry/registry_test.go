package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SectionsAndKeys(t *testing.T) {
	reg := Parse(`[General]
StartWithLastProfile=1
Version=2

[Profile0]
Name=default
IsRelative=1
Path=abc123.default
Default=1

[InstallFF8DEADBEEF]
Default=abc123.default
Locked=1
`)

	require.Len(t, reg.Sections, 3)
	assert.Equal(t, []string{"FF8DEADBEEF"}, reg.InstallHashes())

	prof := reg.FindProfile("default")
	require.NotNil(t, prof)
	assert.Equal(t, "Profile0", prof.Name)
	assert.Equal(t, "abc123.default", prof.Get("Path"))
	assert.Equal(t, []string{"Name", "IsRelative", "Path", "Default"}, prof.Keys())
}

func TestParse_TolerantOfGarbage(t *testing.T) {
	reg := Parse(`orphan=before any section
[Profile0]
Name=work
this line has no equals sign

  Path = spaced.work
`)

	require.Len(t, reg.Sections, 1)
	prof := reg.Sections[0]
	assert.Equal(t, "work", prof.Get("Name"))
	assert.Equal(t, "spaced.work", prof.Get("Path"))
}

func TestParse_DuplicateKeyKeepsLastValue(t *testing.T) {
	reg := Parse(`[Profile0]
Name=first
Name=second
`)

	prof := reg.Sections[0]
	assert.Equal(t, "second", prof.Get("Name"))
	assert.Equal(t, []string{"Name"}, prof.Keys())
}

func TestInstallHashes_Sorted(t *testing.T) {
	reg := Parse(`[InstallZZZ]
Locked=1
[InstallAAA]
Locked=1
`)

	assert.Equal(t, []string{"AAA", "ZZZ"}, reg.InstallHashes())
}

func TestMerge_EmptyRegistryInsertsSingleDefaultProfile(t *testing.T) {
	res := Merge(&Registry{}, MergeInput{
		ProfileName:  "default",
		RelativePath: "abc.default",
	})

	want := `[General]
StartWithLastProfile=1
Version=2

[Profile0]
Name=default
IsRelative=1
Path=abc.default
Default=1
`
	assert.Equal(t, want, res.ProfilesINI)
	assert.Empty(t, res.InstallHashes)
}

func TestMerge_InsertRenumbersAndStripsDefault(t *testing.T) {
	src := Parse(`[Profile3]
Name=other
IsRelative=1
Path=other.dir
Default=1

[Profile7]
Name=spare
IsRelative=1
Path=spare.dir
`)

	res := Merge(src, MergeInput{ProfileName: "work", RelativePath: "xyz.work"})

	want := `[General]
StartWithLastProfile=1
Version=2

[Profile0]
Name=other
IsRelative=1
Path=other.dir

[Profile1]
Name=spare
IsRelative=1
Path=spare.dir

[Profile2]
Name=work
IsRelative=1
Path=xyz.work
Default=1
`
	assert.Equal(t, want, res.ProfilesINI)
}

func TestMerge_InsertReplacesStaleTargetSection(t *testing.T) {
	src := Parse(`[Profile0]
Name=work
IsRelative=1
Path=old.work
`)

	res := Merge(src, MergeInput{ProfileName: "work", RelativePath: "new.work"})

	assert.NotContains(t, res.ProfilesINI, "old.work")
	assert.Contains(t, res.ProfilesINI, "Path=new.work")
	// Only one Profile section remains.
	merged := Parse(res.ProfilesINI)
	assert.Len(t, merged.Profiles(), 1)
}

func TestMerge_UpdateOnlyPreservesNumberingAndMovesDefault(t *testing.T) {
	src := Parse(`[Profile2]
Name=other
IsRelative=1
Path=other.dir
Default=1

[Profile5]
Name=work
IsRelative=1
Path=xyz.work
`)

	res := Merge(src, MergeInput{
		ProfileName:  "work",
		RelativePath: "xyz.work",
		UpdateOnly:   true,
	})

	want := `[General]
StartWithLastProfile=1
Version=2

[Profile2]
Name=other
IsRelative=1
Path=other.dir

[Profile5]
Name=work
IsRelative=1
Path=xyz.work
Default=1
`
	assert.Equal(t, want, res.ProfilesINI)
}

func TestMerge_InstallSectionsPointAtProfile(t *testing.T) {
	src := Parse(`[Profile0]
Name=default
IsRelative=1
Path=abc.default

[InstallBBB]
Default=elsewhere
Locked=1

[InstallAAA]
Default=elsewhere
`)

	res := Merge(src, MergeInput{
		ProfileName:  "default",
		RelativePath: "abc.default",
		UpdateOnly:   true,
	})

	assert.Equal(t, []string{"AAA", "BBB"}, res.InstallHashes)
	assert.Contains(t, res.ProfilesINI, "[InstallAAA]\nDefault=abc.default\nLocked=1")
	assert.Contains(t, res.ProfilesINI, "[InstallBBB]\nDefault=abc.default\nLocked=1")
	assert.NotContains(t, res.ProfilesINI, "elsewhere")
}

func TestMerge_Idempotent(t *testing.T) {
	src := Parse(`[Profile0]
Name=extra
IsRelative=1
Path=extra.dir

[InstallCAFE]
Default=stale
Locked=1
`)

	in := MergeInput{ProfileName: "default", RelativePath: "abc.default"}
	first := Merge(src, in)

	// Applying again on the merged output, now in update-only mode
	// because the profile exists, must be byte-identical.
	in.UpdateOnly = true
	second := Merge(Parse(first.ProfilesINI), in)
	assert.Equal(t, first.ProfilesINI, second.ProfilesINI)

	third := Merge(Parse(second.ProfilesINI), in)
	assert.Equal(t, second.ProfilesINI, third.ProfilesINI)
}

func TestBuildInstallsINI(t *testing.T) {
	got := BuildInstallsINI([]string{"AAA", "BBB"}, "abc.default")

	want := `[AAA]
Default=abc.default
Locked=1

[BBB]
Default=abc.default
Locked=1
`
	assert.Equal(t, want, got)
}

func TestBuildInstallsINI_Empty(t *testing.T) {
	assert.Empty(t, BuildInstallsINI(nil, "abc.default"))
}
