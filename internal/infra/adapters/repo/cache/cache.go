// Package repocache is a caching decorator around a repo.Port adapter:
// read results (tag times, pull-request searches) are kept on disk (gob
// encoded) for a configurable lifetime; writes always pass through.
package repocache

import (
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/changelog-ci/changelog-ci/internal/app/repo"
)

const cacheVersion = 1

var _ repo.Port = &Adapter{}

type AdapterOptions struct {
	CacheLocation string
	CacheLifetime int
}

type Adapter struct {
	owner           string
	repo            string
	upstreamAdapter repo.Port
	opts            AdapterOptions
}

func fixCacheLocation(cacheLocation string) string {
	logger := slog.Default().With(slog.String("cacheLocation", cacheLocation))
	if cacheLocation == "" {
		return ""
	}
	info, err := os.Stat(cacheLocation)
	if err != nil {
		logger.Warn("bad cacheLocation => cache disabled", slog.String("err", err.Error()))
		return ""
	}
	if !info.IsDir() {
		logger.Warn("bad cacheLocation, not a directory => cache disabled")
		return ""
	}
	path, err := filepath.Abs(cacheLocation)
	if err != nil {
		logger.Warn("cacheLocation: can't find the absolute path => cache disabled", slog.String("err", err.Error()))
		return ""
	}
	return path
}

func fixCacheLifetime(cacheLifetime int) int {
	if cacheLifetime <= 0 {
		return 3600
	}
	return cacheLifetime
}

func NewAdapter(owner string, repoName string, upstreamAdapter repo.Port, opts AdapterOptions) *Adapter {
	opts.CacheLocation = fixCacheLocation(opts.CacheLocation)
	opts.CacheLifetime = fixCacheLifetime(opts.CacheLifetime)
	return &Adapter{
		owner:           owner,
		repo:            repoName,
		upstreamAdapter: upstreamAdapter,
		opts:            opts,
	}
}

func (r *Adapter) IsEnabled() bool {
	return r.opts.CacheLocation != ""
}

func (r *Adapter) getCacheFilePath(kind string, key string) string {
	h := sha256.New()
	h.Write([]byte(fmt.Sprintf("%d-%s/%s-%s-%s", cacheVersion, r.owner, r.repo, kind, key)))
	return filepath.Join(r.opts.CacheLocation, fmt.Sprintf("%x.cache", h.Sum(nil)))
}

// readCache decodes the cache file into target and returns true on a hit.
// Expired or unreadable cache files count as misses.
func (r *Adapter) readCache(cacheFilePath string, target any) bool {
	logger := slog.Default().With(slog.String("cacheFilePath", cacheFilePath))
	info, err := os.Stat(cacheFilePath)
	if err != nil {
		logger.Debug("cache miss")
		return false
	}
	if time.Since(info.ModTime()) > time.Duration(r.opts.CacheLifetime)*time.Second {
		logger.Debug("expired cache")
		if err := os.Remove(cacheFilePath); err != nil {
			logger.Warn("can't delete expired cache file")
		}
		return false
	}
	file, err := os.Open(cacheFilePath)
	if err != nil {
		logger.Warn("can't open the cache file => cache disabled", slog.String("err", err.Error()))
		return false
	}
	defer file.Close()
	if err := gob.NewDecoder(file).Decode(target); err != nil {
		logger.Warn("can't decode the cache file => cache disabled", slog.String("err", err.Error()))
		return false
	}
	logger.Debug("cache hit")
	return true
}

func (r *Adapter) writeCache(cacheFilePath string, value any) {
	logger := slog.Default().With(slog.String("cacheFilePath", cacheFilePath))
	file, err := os.Create(cacheFilePath)
	if err != nil {
		logger.Warn("can't create the cache file => cache disabled")
		return
	}
	defer file.Close()
	if err := gob.NewEncoder(file).Encode(value); err != nil {
		logger.Warn("can't encode the content of the cache file => cache disabled")
		return
	}
	logger.Debug("cache saved")
}

func (r *Adapter) ResolveTagTime(tagName string) (*time.Time, error) {
	if !r.IsEnabled() {
		return r.upstreamAdapter.ResolveTagTime(tagName)
	}
	cacheFilePath := r.getCacheFilePath("tag", tagName)
	var cached time.Time
	if r.readCache(cacheFilePath, &cached) {
		return &cached, nil
	}
	res, err := r.upstreamAdapter.ResolveTagTime(tagName)
	if err != nil || res == nil {
		return res, err
	}
	r.writeCache(cacheFilePath, *res)
	return res, nil
}

func (r *Adapter) SearchMergedPullRequests(window *repo.MergedWindow) ([]*repo.PullRequest, error) {
	if !r.IsEnabled() {
		return r.upstreamAdapter.SearchMergedPullRequests(window)
	}
	key := "all"
	if window != nil {
		key = fmt.Sprintf("%s..%s", window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
	}
	cacheFilePath := r.getCacheFilePath("search", key)
	cached := []*repo.PullRequest{}
	if r.readCache(cacheFilePath, &cached) {
		return cached, nil
	}
	res, err := r.upstreamAdapter.SearchMergedPullRequests(window)
	if err != nil {
		return res, err
	}
	r.writeCache(cacheFilePath, res)
	return res, nil
}

// CreateComment is a write operation: never cached.
func (r *Adapter) CreateComment(prNumber int, body string) error {
	return r.upstreamAdapter.CreateComment(prNumber, body)
}
