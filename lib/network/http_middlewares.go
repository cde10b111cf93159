package network

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/store/memory"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/metrics"
	"stakegate.io/stakegate/lib/network/httputils"
)

func RecoverMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rec)
					}
					httputils.WriteJSONError(w, err)
					logger.Error("recover a panic", "err", err)
					if VerboseLogs {
						debug.PrintStack()
					}
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// MetricsMiddleware observes every served request: count, errors and
// duration, labeled by route template, method and status.
func MetricsMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			begin := time.Now()

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					endpoint = tpl
				}
			}

			writer := &HTTP2ResponseLog15Writer{w: w}
			next.ServeHTTP(writer, r)

			status := writer.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.API.ObserveRequest(begin, endpoint, r.Method, status)
		})
	}
}

// RateLimitMiddleware throttles requests per client ip. A rate with
// limit under 1 turns the throttling off.
func RateLimitMiddleware(logger logging.Logger, rule common.RateLimitRule) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	store := memory.NewStore()
	defaultLimiter := limiter.New(store, rule.Default)

	byIPAddress := map[string]*limiter.Limiter{}
	for ip, rate := range rule.ByIPAddress {
		byIPAddress[ip] = limiter.New(store, rate)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := limiter.GetIP(r).String()

			lim := defaultLimiter
			if l, found := byIPAddress[ip]; found {
				lim = l
			}

			if lim.Rate.Limit < 1 {
				next.ServeHTTP(w, r)
				return
			}

			context, err := lim.Get(r.Context(), ip)
			if err != nil {
				logger.Error("failed to get rate limit context", "err", err, "ip", ip)
				httputils.WriteJSONError(w, err)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(context.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(context.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(context.Reset, 10))

			if context.Reached {
				logger.Warn("rate limit reached", "ip", ip)
				httputils.WriteJSONError(w, errors.TooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
