package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"release-metadata/internal/types"
)

const storedMetadata = `{"name":"stored","timestamp":"20200101000000","source_path":"/srv/app","repos":[{"ref":"feature (decafbad)","url":"https://host/owner/stored.git","type":"git","source_path":"/srv/app"}],"packages":[]}`

func TestApplicationRequiresFileInProduction(t *testing.T) {
	service, runner, dir := newTestService(t, map[string]string{types.EnvRuntimeName: "production"})

	accessor, err := service.Application(nil)
	require.NoError(t, err)

	_, err = accessor(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMissingRequiredFile))
	assert.Contains(t, err.Error(), filepath.Join(dir, "release-metadata.json"))
	assert.Empty(t, runner.calls)
}

func TestApplicationServesSecuredFile(t *testing.T) {
	service, _, dir := newTestService(t, map[string]string{types.EnvRuntimeName: "production"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "release-metadata.json"), []byte(storedMetadata), 0644))

	accessor, err := service.Application(nil)
	require.NoError(t, err)

	got, err := accessor(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got.Secure)
	assert.Equal(t, "stored", *got.Secure.Name)
	assert.Equal(t, []types.SecureRepoInfo{{Ref: "decafbad", URL: "stored"}}, got.Secure.Repos)
}

func TestApplicationRereadsFileOnEveryCall(t *testing.T) {
	service, _, dir := newTestService(t, map[string]string{types.EnvRuntimeName: "production"})
	path := filepath.Join(dir, "release-metadata.json")
	require.NoError(t, os.WriteFile(path, []byte(storedMetadata), 0644))

	accessor, err := service.Application(nil)
	require.NoError(t, err)

	first, err := accessor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "20200101000000", first.Secure.Timestamp)

	require.NoError(t, os.WriteFile(path, []byte(`{"timestamp":"20220202000000","source_path":"/srv/app","repos":[],"packages":[]}`), 0644))
	second, err := accessor(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "20220202000000", second.Secure.Timestamp)
	assert.Nil(t, second.Secure.Name)

	require.NoError(t, os.Remove(path))
	_, err = accessor(context.Background())
	assert.True(t, errors.Is(err, types.ErrMissingRequiredFile))
}

func TestApplicationBuildsWhenFileAbsentOutsideProduction(t *testing.T) {
	service, runner, _ := newTestService(t, nil)

	got, err := service.Static(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, got.Full)
	assert.Equal(t, "test-repo", *got.Full.Name)
	assert.NotEmpty(t, runner.calls)
}

func TestApplicationRejectsMalformedFile(t *testing.T) {
	service, _, dir := newTestService(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "release-metadata.json"), []byte(`{"repos":[]}`), 0644))

	_, err := service.Static(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrTypeMismatch))
}

func TestApplicationFilterAndMerge(t *testing.T) {
	service, _, dir := newTestService(t, map[string]string{types.EnvRuntimeName: "production"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "release-metadata.json"), []byte(storedMetadata), 0644))

	got, err := service.Static(context.Background(), &types.Options{
		Merge: &types.MergeOptions{Overlay: map[string]any{"name": "overlaid"}},
		Secure: types.SecureWith(types.SecurityOptions{
			Env: true,
			Filter: func(secured types.SecureReleaseMetadata, _ types.ReleaseMetadata) map[string]any {
				return map[string]any{"release": *secured.Name}
			},
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"release": "overlaid"}, got.Filtered)
}
