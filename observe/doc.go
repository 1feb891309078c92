// Package observe provides the library's observability surface: a JSON
// structured logger with credential redaction and OpenTelemetry metrics for
// cache and credential activity.
//
// Everything defaults to off: the logger writes nothing below its level and
// metrics are built on a noop meter unless the embedding application
// installs a real one.
package observe
