package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moltfund/backend/internal/common"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/router"
	"github.com/moltfund/backend/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		startTime := xcontext.StartTime(ctx)

		code := 0
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				code = int(errx.Code)
			} else {
				code = -1
			}
		}

		method := xcontext.HTTPRequest(ctx).Method
		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(method, fmt.Sprint(code)).Inc()
		common.PromHistograms[common.HTTPRequestDurationSeconds].
			WithLabelValues(method, fmt.Sprint(code)).
			Observe(time.Since(startTime).Seconds())
	}
}
