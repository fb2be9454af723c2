package log

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/mwantia/fabric/pkg/container"
)

// LoggerTagProcessor injects loggers for fields tagged with
// `fabric:"logger"` (the base logger) or `fabric:"logger:<name>"` (a named child).
type LoggerTagProcessor struct{}

func NewLoggerTagProcessor() *LoggerTagProcessor {
	return &LoggerTagProcessor{}
}

// GetPriority runs the processor ahead of the default inject processor (priority 0)
func (ltp *LoggerTagProcessor) GetPriority() int {
	return 50
}

// CanProcess matches "logger" and "logger:<name>" case-insensitively
func (ltp *LoggerTagProcessor) CanProcess(value string) bool {
	return strings.EqualFold(value, "logger") || strings.HasPrefix(strings.ToLower(value), "logger:")
}

func (ltp *LoggerTagProcessor) Process(ctx context.Context, sc *container.ServiceContainer, field reflect.StructField, value string) (any, error) {
	ok, resolved := sc.ResolveByType(ctx, reflect.TypeOf((*LoggerService)(nil)).Elem())
	if !ok {
		return nil, fmt.Errorf("failed to resolve LoggerService for field '%s': no logger service registered", field.Name)
	}

	base, ok := resolved.(LoggerService)
	if !ok {
		return nil, fmt.Errorf("resolved logger is not a LoggerService for field '%s'", field.Name)
	}

	if name := loggerName(value); name != "" {
		return base.Named(name), nil
	}
	return base, nil
}

// loggerName extracts <name> from "logger:<name>"
func loggerName(value string) string {
	_, name, found := strings.Cut(value, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(name)
}
