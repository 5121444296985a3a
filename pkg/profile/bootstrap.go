package profile

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/zen-tools/zenctl/pkg/browser"
	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
	"github.com/zen-tools/zenctl/pkg/registry"
)

// Bootstrap bounds. The registry files are unlocked shared state: the
// browser rewrites them on its own schedule, so discovery is a polled
// wait with a hard timeout, not a lock.
const (
	bootstrapTimeout      = 15 * time.Second
	bootstrapPollInterval = 500 * time.Millisecond
)

// errInstallHashFound stops the poll group early on success.
var errInstallHashFound = errors.New("install hash found")

// BootstrapInstallHash launches the browser so it generates its own
// Install section in profiles.ini, polling until the section appears
// or the timeout elapses, then terminates the browser's process group.
//
// Returns true when a hash was discovered (the caller should re-merge
// in update-only mode). Returns false with a nil error when the
// registry already has Install sections or the run is a dry-run.
// Launch failures are returned as UNAVAILABLE so the caller can
// downgrade them to a warning and continue degraded.
func (r *Resolver) BootstrapInstallHash(ctx context.Context, b *browser.Browser, paths *Paths) (bool, error) {
	store := &registry.Store{Dir: paths.ZenDir, DryRun: r.DryRun}

	reg, err := store.LoadProfiles()
	if err != nil {
		return false, err
	}
	if len(reg.InstallHashes()) > 0 {
		return false, nil
	}

	if r.DryRun {
		slog.Info("dry-run: would launch browser to bootstrap the install hash")
		return false, nil
	}

	slog.Info("no installation hash found, launching browser to generate it",
		"timeout", bootstrapTimeout)

	proc, err := b.Launch(ctx)
	if err != nil {
		return false, zenerrors.Wrap(zenerrors.ErrCodeUnavailable,
			"could not launch browser for install-hash bootstrap", err)
	}
	defer proc.Terminate()

	pollCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	start := time.Now()
	g, gctx := errgroup.WithContext(pollCtx)

	g.Go(func() error {
		limiter := rate.NewLimiter(rate.Every(bootstrapPollInterval), 1)
		for {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}
			content, err := os.ReadFile(store.ProfilesPath())
			if err == nil && strings.Contains(string(content), "[Install") {
				return errInstallHashFound
			}
		}
	})

	g.Go(func() error {
		// The launcher may exit early (wrapper scripts fork the real
		// browser); that is not a poll failure, keep waiting.
		if err := proc.Wait(gctx); err == nil {
			slog.Debug("browser process exited during bootstrap")
		}
		return nil
	})

	err = g.Wait()
	switch {
	case errors.Is(err, errInstallHashFound):
		slog.Info("installation hash detected", "waited", time.Since(start).Round(100*time.Millisecond))
		return true, nil
	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("installation hash not detected before timeout; rerun after launching the browser manually")
		return false, nil
	default:
		return false, err
	}
}
