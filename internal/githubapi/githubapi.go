package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v47/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// Max value accepted by the repositories listing endpoint.
	reposPerPage = 100

	requestTimeout = 10 * time.Second

	// Unauthenticated requests are limited to 60/hour by GitHub, so a
	// conservative client-side limit keeps a burst of analyze requests
	// from burning the whole budget at once.
	defaultRateLimit = rate.Limit(5)
)

// ErrNotFound reports that the profile lookup returned no account for the
// requested handle.
var ErrNotFound = errors.New("github user not found")

// Profile is the subset of account metadata the pipeline consumes.
type Profile struct {
	Login       string
	Name        string
	AvatarURL   string
	Bio         string
	Followers   int
	Following   int
	PublicRepos int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Repository holds per-repository metadata, newest-updated first as
// returned by the listing endpoint.
type Repository struct {
	Name        string
	Description string
	Language    string
	Stars       int
	Forks       int
	Size        int
	Fork        bool
	Topics      []string
}

type Client struct {
	gh      *github.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New builds a client for the GitHub REST API. An empty token yields an
// unauthenticated client; a non-empty one is sent as a bearer token via
// an oauth2 transport.
func New(ctx context.Context, token string, logger *zap.Logger) *Client {
	hc := &http.Client{Timeout: requestTimeout}

	if token = strings.TrimSpace(token); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
		hc.Timeout = requestTimeout
	}

	return &Client{
		gh:      github.NewClient(hc),
		limiter: rate.NewLimiter(defaultRateLimit, 1),
		logger:  logger,
	}
}

// SetBaseURL points the client at an alternate API endpoint. Used by tests.
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	c.gh.BaseURL = parsed
	return nil
}

// FetchProfile retrieves the account profile and its repositories (first
// page, newest-updated first) with both requests in flight concurrently.
// A missing account surfaces as ErrNotFound; the repository result is
// discarded in that case.
func (c *Client) FetchProfile(ctx context.Context, handle string) (*Profile, []Repository, error) {
	var (
		wg       sync.WaitGroup
		profile  *Profile
		repos    []Repository
		userErr  error
		reposErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		profile, userErr = c.fetchUser(ctx, handle)
	}()

	go func() {
		defer wg.Done()
		repos, reposErr = c.fetchRepos(ctx, handle)
	}()

	wg.Wait()

	if userErr != nil {
		return nil, nil, userErr
	}

	if reposErr != nil {
		return nil, nil, fmt.Errorf("list repositories for %q: %w", handle, reposErr)
	}

	c.logger.Debug("fetched github profile",
		zap.String("handle", handle),
		zap.Int("repos", len(repos)),
		zap.Int("public_repos", profile.PublicRepos),
	)

	return profile, repos, nil
}

func (c *Client) fetchUser(ctx context.Context, handle string) (*Profile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c.logger.Debug("get user", zap.String("handle", handle))

	user, resp, err := c.gh.Users.Get(ctx, handle)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, handle)
		}
		return nil, fmt.Errorf("get user %q: %w", handle, err)
	}

	return &Profile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         user.GetBio(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		PublicRepos: user.GetPublicRepos(),
		CreatedAt:   user.GetCreatedAt().Time,
		UpdatedAt:   user.GetUpdatedAt().Time,
	}, nil
}

func (c *Client) fetchRepos(ctx context.Context, handle string) ([]Repository, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c.logger.Debug("list repositories", zap.String("handle", handle))

	opts := &github.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: reposPerPage},
	}

	list, _, err := c.gh.Repositories.List(ctx, handle, opts)
	if err != nil {
		return nil, err
	}

	repos := make([]Repository, 0, len(list))
	for _, r := range list {
		if r == nil {
			continue
		}
		repos = append(repos, Repository{
			Name:        r.GetName(),
			Description: r.GetDescription(),
			Language:    r.GetLanguage(),
			Stars:       r.GetStargazersCount(),
			Forks:       r.GetForksCount(),
			Size:        r.GetSize(),
			Fork:        r.GetFork(),
			Topics:      r.Topics,
		})
	}

	return repos, nil
}
