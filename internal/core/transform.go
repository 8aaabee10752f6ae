package core

import (
	"path"
	"regexp"
	"strings"

	"release-metadata/internal/jsonutil"
	"release-metadata/internal/types"
)

var branchRefPattern = regexp.MustCompile(`^.*\((.+)\)`)

// Normalize coerces an arbitrary JSON object into ReleaseMetadata. Missing or
// mistyped required fields fail the whole call with types.ErrTypeMismatch;
// malformed entries in repos or packages are dropped.
func Normalize(document map[string]any) (types.ReleaseMetadata, error) {
	if err := checkRequired(document); err != nil {
		return types.ReleaseMetadata{}, err
	}
	return resolvePartial(PartialFromJSON(document))
}

// checkRequired fetches every required string and object of document so a
// mistyped field is reported with the type found. Missing sequences are left
// to resolvePartial.
func checkRequired(document map[string]any) error {
	if _, err := jsonutil.FetchString(document, "timestamp"); err != nil {
		return err
	}
	for _, repo := range entryObjects(document, "repos") {
		for _, key := range []string{"ref", "type", "source_path"} {
			if _, err := jsonutil.FetchString(repo, key); err != nil {
				return err
			}
		}
	}
	if _, err := jsonutil.FetchString(document, "source_path"); err != nil {
		return err
	}
	for _, pkg := range entryObjects(document, "packages") {
		if _, err := jsonutil.FetchObject(pkg, "versions"); err != nil {
			return err
		}
		if _, err := jsonutil.FetchString(pkg, "name"); err != nil {
			return err
		}
	}
	return nil
}

// entryObjects lists the object entries of a repos or packages field, which
// may hold a single object or an array.
func entryObjects(document map[string]any, key string) []map[string]any {
	if obj, ok := jsonutil.AsObject(jsonutil.Field(document, key)); ok {
		return []map[string]any{obj}
	}
	values, err := jsonutil.FetchArray(document, key)
	if err != nil {
		return nil
	}
	entries := make([]map[string]any, 0, len(values))
	for _, value := range values {
		if obj, ok := jsonutil.AsObject(value); ok {
			entries = append(entries, obj)
		}
	}
	return entries
}

// Merge layers the generated metadata over config.Merge.Original, then layers
// config.Merge.Overlay over the result.
func Merge(generated types.ReleaseMetadata, config types.Config) (types.ReleaseMetadata, error) {
	base, err := mergePartials(PartialFromJSON(config.Merge.Original), PartialFromMetadata(generated))
	if err != nil {
		return types.ReleaseMetadata{}, err
	}
	merged, err := mergePartials(base, PartialFromJSON(config.Merge.Overlay))
	if err != nil {
		return types.ReleaseMetadata{}, err
	}
	return resolvePartial(merged)
}

// Secure returns the redacted view of metadata when security is in effect,
// or metadata itself otherwise.
func Secure(metadata types.ReleaseMetadata, config types.Config, gate SecurityGate) types.ProcessedMetadata {
	if !gate.Check(types.SecurityCheckEnabled, config) {
		return types.ProcessedMetadata{Full: &metadata}
	}
	omitURL := gate.Check(types.SecurityCheckOmitRepoURL, config)
	secured := SecureView(metadata, omitURL)

	if config.Secure.Filter != nil {
		filtered := config.Secure.Filter(secured, metadata)
		if filtered == nil {
			filtered = map[string]any{}
		}
		return types.ProcessedMetadata{Filtered: filtered}
	}
	return types.ProcessedMetadata{Secure: &secured}
}

// PostProcess merges and then secures metadata.
func PostProcess(metadata types.ReleaseMetadata, config types.Config, gate SecurityGate) (types.ProcessedMetadata, error) {
	merged, err := Merge(metadata, config)
	if err != nil {
		return types.ProcessedMetadata{}, err
	}
	return Secure(merged, config, gate), nil
}

// SecureView strips branch annotations from refs and reduces repository URLs
// to their base name, or drops them when omitURL is set.
func SecureView(metadata types.ReleaseMetadata, omitURL bool) types.SecureReleaseMetadata {
	repos := make([]types.SecureRepoInfo, 0, len(metadata.Repos))
	for _, repo := range metadata.Repos {
		secure := types.SecureRepoInfo{Ref: SecureRef(repo.Ref)}
		if !omitURL && repo.URL != "" {
			secure.URL = SecureURL(repo.URL)
		}
		repos = append(repos, secure)
	}
	return types.SecureReleaseMetadata{
		Name:      metadata.Name,
		Timestamp: metadata.Timestamp,
		Repos:     repos,
	}
}

// SecureRef turns "branch (hash)" into "hash".
func SecureRef(ref string) string {
	return branchRefPattern.ReplaceAllString(ref, "$1")
}

// SecureURL keeps only the base name of url without its extension.
func SecureURL(url string) string {
	base := path.Base(url)
	ext := path.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// PartialFromJSON reads every known field of document without requiring any
// of them.
func PartialFromJSON(document map[string]any) types.PartialReleaseMetadata {
	return types.PartialReleaseMetadata{
		Name:       stringField(document, "name"),
		Timestamp:  stringField(document, "timestamp"),
		SourcePath: stringField(document, "source_path"),
		Repos:      partialRepos(jsonutil.Field(document, "repos")),
		Packages:   partialPackages(jsonutil.Field(document, "packages")),
		Ext:        objectField(document, "ext"),
	}
}

// PartialFromMetadata views resolved metadata as a partial. Its sequences are
// always present.
func PartialFromMetadata(metadata types.ReleaseMetadata) types.PartialReleaseMetadata {
	repos := make([]types.PartialRepoInfo, 0, len(metadata.Repos))
	for _, repo := range metadata.Repos {
		repos = append(repos, types.PartialRepoInfo{
			Ref:        types.StringPtr(repo.Ref),
			URL:        optionalString(repo.URL),
			Name:       optionalString(repo.Name),
			Type:       types.StringPtr(repo.Type),
			SourcePath: types.StringPtr(repo.SourcePath),
			Ext:        repo.Ext,
		})
	}
	packages := make([]types.PartialPackageInfo, 0, len(metadata.Packages))
	for _, pkg := range metadata.Packages {
		versions := pkg.Versions
		if versions == nil {
			versions = map[string]string{}
		}
		packages = append(packages, types.PartialPackageInfo{
			Name:     types.StringPtr(pkg.Name),
			Versions: versions,
			Ext:      pkg.Ext,
		})
	}
	return types.PartialReleaseMetadata{
		Name:       metadata.Name,
		Timestamp:  types.StringPtr(metadata.Timestamp),
		SourcePath: types.StringPtr(metadata.SourcePath),
		Repos:      repos,
		Packages:   packages,
		Ext:        metadata.Ext,
	}
}

func partialRepos(value any) []types.PartialRepoInfo {
	if obj, ok := jsonutil.AsObject(value); ok {
		return jsonutil.Compact([]*types.PartialRepoInfo{partialRepo(obj)})
	}
	if values, ok := jsonutil.AsArray(value); ok {
		entries := make([]*types.PartialRepoInfo, 0, len(values))
		for _, v := range values {
			entries = append(entries, partialRepo(v))
		}
		return jsonutil.Compact(entries)
	}
	return nil
}

func partialRepo(value any) *types.PartialRepoInfo {
	obj, ok := jsonutil.AsObject(value)
	if !ok {
		return nil
	}
	return &types.PartialRepoInfo{
		Ref:        stringField(obj, "ref"),
		URL:        stringField(obj, "url"),
		Name:       stringField(obj, "name"),
		Type:       stringField(obj, "type"),
		SourcePath: stringField(obj, "source_path"),
		Ext:        objectField(obj, "ext"),
	}
}

func partialPackages(value any) []types.PartialPackageInfo {
	if obj, ok := jsonutil.AsObject(value); ok {
		return jsonutil.Compact([]*types.PartialPackageInfo{partialPackage(obj)})
	}
	if values, ok := jsonutil.AsArray(value); ok {
		entries := make([]*types.PartialPackageInfo, 0, len(values))
		for _, v := range values {
			entries = append(entries, partialPackage(v))
		}
		return jsonutil.Compact(entries)
	}
	return nil
}

func partialPackage(value any) *types.PartialPackageInfo {
	obj, ok := jsonutil.AsObject(value)
	if !ok {
		return nil
	}
	return &types.PartialPackageInfo{
		Name:     stringField(obj, "name"),
		Versions: filterVersions(objectField(obj, "versions")),
		Ext:      objectField(obj, "ext"),
	}
}

// filterVersions keeps string values and stringifies numbers.
func filterVersions(value map[string]any) map[string]string {
	if value == nil {
		return nil
	}
	versions := make(map[string]string, len(value))
	for key, v := range value {
		if s, ok := jsonutil.AsString(v); ok {
			versions[key] = s
		} else if s, ok := jsonutil.NumberString(v); ok {
			versions[key] = s
		}
	}
	return versions
}

func mergePartials(target types.PartialReleaseMetadata, source types.PartialReleaseMetadata) (types.PartialReleaseMetadata, error) {
	ext, err := mergeExt(target.Ext, source.Ext)
	if err != nil {
		return types.PartialReleaseMetadata{}, err
	}
	return types.PartialReleaseMetadata{
		Name:       coalesce(source.Name, target.Name),
		Timestamp:  coalesce(source.Timestamp, target.Timestamp),
		SourcePath: coalesce(source.SourcePath, target.SourcePath),
		Repos:      mergeList(target.Repos, source.Repos),
		Packages:   mergeList(target.Packages, source.Packages),
		Ext:        ext,
	}, nil
}

func coalesce(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func mergeList[T any](target []T, source []T) []T {
	if target != nil {
		if source != nil {
			merged := make([]T, 0, len(target)+len(source))
			merged = append(merged, target...)
			return append(merged, source...)
		}
		return target
	}
	return source
}

func mergeExt(target map[string]any, source map[string]any) (map[string]any, error) {
	if target != nil {
		if source != nil {
			return DeepMerge(target, source)
		}
		return target, nil
	}
	return source, nil
}

func resolvePartial(value types.PartialReleaseMetadata) (types.ReleaseMetadata, error) {
	timestamp, err := requireField(value.Timestamp, "timestamp")
	if err != nil {
		return types.ReleaseMetadata{}, err
	}
	if value.Repos == nil {
		return types.ReleaseMetadata{}, jsonutil.MismatchError("repos", jsonutil.KindArray, jsonutil.KindUndefined)
	}
	repos, err := resolveRepos(value.Repos)
	if err != nil {
		return types.ReleaseMetadata{}, err
	}
	sourcePath, err := requireField(value.SourcePath, "source_path")
	if err != nil {
		return types.ReleaseMetadata{}, err
	}
	if value.Packages == nil {
		return types.ReleaseMetadata{}, jsonutil.MismatchError("packages", jsonutil.KindArray, jsonutil.KindUndefined)
	}
	packages, err := resolvePackages(value.Packages)
	if err != nil {
		return types.ReleaseMetadata{}, err
	}
	return types.ReleaseMetadata{
		Name:       value.Name,
		Timestamp:  timestamp,
		SourcePath: sourcePath,
		Repos:      repos,
		Packages:   packages,
		Ext:        value.Ext,
	}, nil
}

func resolveRepos(values []types.PartialRepoInfo) ([]types.RepoInfo, error) {
	repos := make([]types.RepoInfo, 0, len(values))
	for _, value := range values {
		ref, err := requireField(value.Ref, "ref")
		if err != nil {
			return nil, err
		}
		repoType, err := requireField(value.Type, "type")
		if err != nil {
			return nil, err
		}
		sourcePath, err := requireField(value.SourcePath, "source_path")
		if err != nil {
			return nil, err
		}
		repos = append(repos, types.RepoInfo{
			Ref:        ref,
			URL:        deref(value.URL),
			Name:       deref(value.Name),
			Type:       repoType,
			SourcePath: sourcePath,
			Ext:        value.Ext,
		})
	}
	return repos, nil
}

func resolvePackages(values []types.PartialPackageInfo) ([]types.PackageInfo, error) {
	packages := make([]types.PackageInfo, 0, len(values))
	for _, value := range values {
		if value.Versions == nil {
			return nil, jsonutil.MismatchError("versions", jsonutil.KindObject, jsonutil.KindUndefined)
		}
		name, err := requireField(value.Name, "name")
		if err != nil {
			return nil, err
		}
		packages = append(packages, types.PackageInfo{
			Name:     name,
			Versions: value.Versions,
			Ext:      value.Ext,
		})
	}
	return packages, nil
}

// requireField checks a merged partial. Normalize has already fetched the
// fields of a single document, so a nil value here was absent from every
// merged layer.
func requireField(value *string, key string) (string, error) {
	if value == nil {
		return "", jsonutil.MismatchError(key, jsonutil.KindString, jsonutil.KindUndefined)
	}
	return *value, nil
}

func stringField(obj map[string]any, key string) *string {
	if s, ok := jsonutil.AsString(jsonutil.Field(obj, key)); ok {
		return &s
	}
	return nil
}

func objectField(obj map[string]any, key string) map[string]any {
	if m, ok := jsonutil.AsObject(jsonutil.Field(obj, key)); ok {
		return m
	}
	return nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
