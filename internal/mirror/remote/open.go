// Package remote picks the mirror backend named by the connection settings.
package remote

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/dmitrijs2005/lifedash/internal/logging"
	"github.com/dmitrijs2005/lifedash/internal/mirror"
	"github.com/dmitrijs2005/lifedash/internal/mirror/grpcmirror"
	"github.com/dmitrijs2005/lifedash/internal/mirror/pgmirror"
	"github.com/dmitrijs2005/lifedash/internal/mirror/s3mirror"
)

var (
	openGRPC     = func(ctx context.Context, s mirror.Settings) (mirror.Mirror, error) { return grpcmirror.Open(ctx, s) }
	openPostgres = func(ctx context.Context, s mirror.Settings) (mirror.Mirror, error) { return pgmirror.Open(ctx, s) }
	openS3       = func(ctx context.Context, s mirror.Settings) (mirror.Mirror, error) { return s3mirror.Open(ctx, s) }
)

// Open returns mirror.Disabled when s is incomplete. A backend that cannot be
// built is logged and also degrades to Disabled, so the caller keeps working
// local-only; the error is returned for display.
func Open(ctx context.Context, s mirror.Settings, l logging.Logger) (mirror.Mirror, error) {
	if l == nil {
		l = logging.Nop{}
	}
	l = l.With("module", "remote")

	if !mirror.IsRemoteConfigured(s) {
		l.Info(ctx, "remote mirror not configured, running local-only")
		return mirror.Disabled{}, nil
	}

	var (
		m   mirror.Mirror
		err error
	)
	switch s.Kind {
	case mirror.KindGRPC:
		m, err = openGRPC(ctx, s)
	case mirror.KindPostgres:
		m, err = openPostgres(ctx, s)
	case mirror.KindS3:
		m, err = openS3(ctx, s)
	default:
		err = fmt.Errorf("%w: unknown remote kind %q", common.ErrRemoteNotConfigured, s.Kind)
	}
	if err != nil {
		l.Warn(ctx, "remote mirror unavailable, running local-only", "kind", s.Kind, "err", err)
		return mirror.Disabled{}, err
	}

	l.Info(ctx, "remote mirror configured", "kind", s.Kind)
	return m, nil
}
