package http

import (
	"time"

	"go.uber.org/zap"

	"floodguard/pkg/log"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, httpStatus int, latency time.Duration)

	// LogResponseError is called immediately after receiving an error response (error HTTP status)
	LogResponseError(method, url string, httpStatus int, latency time.Duration, err error)

	// LogRequestRetry is called when backoff exists and a retry attempt is about to be made
	LogRequestRetry(method, url string, httpStatus int, err error, retryCount, maxRetries int)
}

// ZapHTTPLogger logs client traffic through the application logger
type ZapHTTPLogger struct{}

func (ZapHTTPLogger) LogRequest(method, url string) {
	log.Debug("outbound request",
		zap.String("method", method),
		zap.String("url", url))
}

func (ZapHTTPLogger) LogResponseSuccess(method, url string, httpStatus int, latency time.Duration) {
	log.Debug("outbound response",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Duration("latency", latency))
}

func (ZapHTTPLogger) LogResponseError(method, url string, httpStatus int, latency time.Duration, err error) {
	log.Warn("outbound request failed",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Duration("latency", latency),
		zap.Error(err))
}

func (ZapHTTPLogger) LogRequestRetry(method, url string, httpStatus int, err error, retryCount, maxRetries int) {
	log.Warn("retrying outbound request",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int("retry", retryCount),
		zap.Int("max_retries", maxRetries),
		zap.Error(err))
}

var _ HTTPLogger = ZapHTTPLogger{}
