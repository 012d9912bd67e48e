package api

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/memory"
)

// DefaultRepoURL is the repository whose tags define the published versions.
const DefaultRepoURL = "https://github.com/WasmEdge/WasmEdge.git"

// TagLister lists release tags from the release source.
type TagLister interface {
	ListTags(ctx context.Context) ([]string, error)
}

// gitTagLister lists tags by enumerating remote refs, without cloning.
type gitTagLister struct {
	repoURL string
}

func (g gitTagLister) ListTags(ctx context.Context) ([]string, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{g.repoURL},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return nil, &RequestError{Resource: "release tags", Err: err}
	}

	var tags []string
	for _, ref := range refs {
		if !ref.Name().IsTag() {
			continue
		}
		name := ref.Name().Short()
		// Annotated tags are listed twice; skip the peeled duplicate.
		if strings.HasSuffix(name, "^{}") {
			continue
		}
		tags = append(tags, name)
	}

	return tags, nil
}

// ParseVersion parses an explicit semantic version token. It performs no
// network access.
func ParseVersion(input string) (*semver.Version, error) {
	version, err := semver.StrictNewVersion(strings.TrimPrefix(input, "v"))
	if err != nil {
		return nil, &VersionParseError{Input: input, Err: err}
	}
	return version, nil
}

// ResolveVersion turns a user-supplied version token into a concrete
// version. The literal "latest" consults the release source; anything else
// is parsed locally.
func ResolveVersion(ctx context.Context, client *Client, token string) (*semver.Version, error) {
	if token == "latest" {
		return client.LatestRelease(ctx)
	}
	return ParseVersion(token)
}

// Releases returns the published versions in descending semantic-version
// order. Tags that do not parse as semantic versions are skipped.
func (c *Client) Releases(ctx context.Context) ([]*semver.Version, error) {
	tags, err := c.tags.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	var versions []*semver.Version
	for _, tag := range tags {
		version, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
		if err != nil {
			continue
		}
		versions = append(versions, version)
	}

	sort.Sort(sort.Reverse(semver.Collection(versions)))
	return versions, nil
}

// LatestRelease returns the maximum published version under semantic
// version ordering.
func (c *Client) LatestRelease(ctx context.Context) (*semver.Version, error) {
	versions, err := c.Releases(ctx)
	if err != nil {
		return nil, err
	}

	if len(versions) == 0 {
		return nil, &RequestError{
			Resource: "release tags",
			Err:      errors.New("no semantic version tags found"),
		}
	}

	return versions[0], nil
}
