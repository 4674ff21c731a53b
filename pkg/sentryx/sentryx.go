// Package sentryx 可选的 Sentry 异常上报；未配置 DSN 时全部为空操作
package sentryx

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled atomic.Bool

type Options struct {
	DSN         string
	Environment string
	Release     string
}

// Init DSN 为空时不启用
func Init(opts Options) error {
	if opts.DSN == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		Release:          opts.Release,
		AttachStacktrace: true,
	})
	if err != nil {
		return err
	}
	enabled.Store(true)
	return nil
}

func Enabled() bool { return enabled.Load() }

// CaptureRequestError 附带请求信息上报
func CaptureRequestError(r *http.Request, err error) {
	if !Enabled() || err == nil {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetRequest(r)
	hub.CaptureException(err)
}

// Flush 关闭前等待事件发送完
func Flush(timeout time.Duration) {
	if Enabled() {
		sentry.Flush(timeout)
	}
}
