// Package manifest propagates the express package version from the .NET
// project descriptor into the bindings manifest.
//
// The manifest is edited in place with jsonparser so key order and every
// other value survive; only the version of the Tsonic.Express package
// reference changes. The result is re-indented with two spaces and a
// trailing newline.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/buger/jsonparser"
	"github.com/tsonic/express-postprocess/errors"
)

// Error kinds.
var (
	ErrMissingVersionToken     = errors.New("missing version token")
	ErrMissingPackageReference = errors.New("missing package reference")
)

// PackageID is the package reference whose version is kept in sync.
const PackageID = "Tsonic.Express"

var (
	versionToken   = regexp.MustCompile(`<Version>\s*([^<]*?)\s*</Version>`)
	referencesPath = []string{"dotnet", "packageReferences"}
)

// SyncResult describes one synchronizer run.
type SyncResult struct {
	Descriptor string
	Manifest   string
	Version    string   // version read from the descriptor
	Previous   string   // version the manifest held before
	InSync     bool     // Previous == Version
	Warnings   []string // non-fatal semantic version findings
}

// ExtractVersion returns the first non-empty <Version> element of text.
func ExtractVersion(text string) (string, bool) {
	m := versionToken.FindStringSubmatch(text)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// ReadVersion reads the version token from a project descriptor file.
func ReadVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(errors.Mark(err, ErrMissingVersionToken),
			"cannot read project descriptor %s", path)
	}
	v, ok := ExtractVersion(string(data))
	if !ok {
		err := errors.Wrapf(ErrMissingVersionToken, "no <Version> element in %s", path)
		return "", errors.WithHint(err, "the descriptor must contain <Version>x.y.z</Version>")
	}
	return v, nil
}

// FindPackageVersion locates the first dotnet.packageReferences entry whose
// id equals id and returns its array index and current version.
func FindPackageVersion(data []byte, id string) (int, string, error) {
	if !json.Valid(data) {
		return -1, "", errors.Wrap(ErrMissingPackageReference, "manifest is not valid JSON")
	}

	refs, dataType, _, err := jsonparser.Get(data, referencesPath...)
	if err != nil || dataType != jsonparser.Array {
		return -1, "", errors.Wrap(ErrMissingPackageReference, "manifest has no dotnet.packageReferences array")
	}

	index, previous := -1, ""
	i := 0
	_, err = jsonparser.ArrayEach(refs, func(value []byte, dt jsonparser.ValueType, _ int, _ error) {
		defer func() { i++ }()
		if index >= 0 || dt != jsonparser.Object {
			return
		}
		entryID, getErr := jsonparser.GetString(value, "id")
		if getErr != nil || entryID != id {
			return
		}
		index = i
		previous, _ = jsonparser.GetString(value, "version")
	})
	if err != nil {
		return -1, "", errors.Wrapf(errors.Mark(err, ErrMissingPackageReference),
			"malformed dotnet.packageReferences")
	}
	if index < 0 {
		return -1, "", errors.Wrapf(ErrMissingPackageReference, "no package reference with id %q", id)
	}
	return index, previous, nil
}

// SetPackageVersion overwrites the version of the package reference id and
// returns the re-indented manifest and the version it replaced.
func SetPackageVersion(data []byte, id, version string) ([]byte, string, error) {
	index, previous, err := FindPackageVersion(data, id)
	if err != nil {
		return nil, "", err
	}

	encoded, err := encodeString(version)
	if err != nil {
		return nil, "", err
	}

	keys := append(append([]string{}, referencesPath...), fmt.Sprintf("[%d]", index), "version")
	updated, err := jsonparser.Set(data, encoded, keys...)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to set %s version", id)
	}

	out, err := Format(updated)
	if err != nil {
		return nil, "", err
	}
	return out, previous, nil
}

// Format re-indents JSON with two spaces and appends a trailing newline.
func Format(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return nil, errors.Wrap(err, "failed to format manifest")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Sync copies the descriptor's version into the manifest. It always writes;
// the version entry is expected to move on every release.
func Sync(descriptorPath, manifestPath string) (*SyncResult, error) {
	version, err := ReadVersion(descriptorPath)
	if err != nil {
		return nil, err
	}

	data, mode, err := readManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	out, previous, err := SetPackageVersion(data, PackageID, version)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", manifestPath)
	}

	if err := os.WriteFile(manifestPath, out, mode); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", manifestPath)
	}

	return &SyncResult{
		Descriptor: descriptorPath,
		Manifest:   manifestPath,
		Version:    version,
		Previous:   previous,
		InSync:     previous == version,
		Warnings:   versionWarnings(previous, version),
	}, nil
}

// Check reports whether the manifest already carries the descriptor's
// version, without writing anything.
func Check(descriptorPath, manifestPath string) (*SyncResult, error) {
	version, err := ReadVersion(descriptorPath)
	if err != nil {
		return nil, err
	}

	data, _, err := readManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	_, previous, err := FindPackageVersion(data, PackageID)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", manifestPath)
	}

	return &SyncResult{
		Descriptor: descriptorPath,
		Manifest:   manifestPath,
		Version:    version,
		Previous:   previous,
		InSync:     previous == version,
		Warnings:   versionWarnings(previous, version),
	}, nil
}

func readManifest(path string) ([]byte, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, errors.Wrapf(errors.Mark(err, ErrMissingPackageReference),
			"cannot read manifest %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "cannot read manifest %s", path)
	}
	return data, info.Mode().Perm(), nil
}

// encodeString renders s as a JSON string without HTML escaping.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, errors.Wrap(err, "failed to encode version")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// versionWarnings flags versions that are not semantic versions and
// versions that move backwards. Neither stops the sync.
func versionWarnings(previous, next string) []string {
	nv, err := semver.NewVersion(next)
	if err != nil {
		return []string{fmt.Sprintf("version %q is not a semantic version", next)}
	}
	if previous == "" {
		return nil
	}
	pv, err := semver.NewVersion(previous)
	if err != nil {
		return nil
	}
	if nv.LessThan(pv) {
		return []string{fmt.Sprintf("version goes backwards: %s -> %s", previous, next)}
	}
	return nil
}
