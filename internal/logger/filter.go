package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FilterHook filters log entries by module (e.g. report, auth), dataset
// (e.g. trees, applications, appointments) and log level. An empty filter or
// "*" allows everything.
type FilterHook struct {
	allowedModules  map[string]bool
	allowedDatasets map[string]bool
	allowedLogTypes map[string]bool

	hasModuleFilter  bool
	hasDatasetFilter bool
	hasLogTypeFilter bool

	mu sync.RWMutex
}

// NewFilterHook creates a filter hook from the logging configuration.
func NewFilterHook(cfg *LogConfig) *FilterHook {
	hook := &FilterHook{
		allowedModules:  make(map[string]bool),
		allowedDatasets: make(map[string]bool),
		allowedLogTypes: make(map[string]bool),
	}
	hook.updateFilters(cfg)
	return hook
}

func (h *FilterHook) updateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.allowedModules = parseFilter(cfg.FilterModules)
	h.hasModuleFilter = len(h.allowedModules) > 0 && !h.allowedModules["*"]

	h.allowedDatasets = parseFilter(cfg.FilterDatasets)
	h.hasDatasetFilter = len(h.allowedDatasets) > 0 && !h.allowedDatasets["*"]

	h.allowedLogTypes = parseFilter(cfg.FilterLogTypes)
	h.hasLogTypeFilter = len(h.allowedLogTypes) > 0 && !h.allowedLogTypes["*"]
}

// parseFilter parses "value1,value2" into a lookup map; "" or "*" allows all.
func parseFilter(filterStr string) map[string]bool {
	result := make(map[string]bool)

	if filterStr == "" || filterStr == "*" {
		result["*"] = true
		return result
	}

	values := strings.Split(filterStr, ",")
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			result[strings.ToLower(v)] = true
		}
	}

	return result
}

// Levels returns the log levels handled by this hook.
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire marks filtered entries with "_filtered" = true. AsyncHook checks this
// field and skips marked entries instead of writing them.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.hasLogTypeFilter {
		levelStr := strings.ToLower(entry.Level.String())
		if !h.allowedLogTypes[levelStr] {
			entry.Data["_filtered"] = true
			return nil
		}
	}

	if h.hasModuleFilter {
		if module, ok := entry.Data["module"].(string); ok && module != "" {
			if !h.allowedModules[strings.ToLower(module)] {
				entry.Data["_filtered"] = true
				return nil
			}
		}
	}

	if h.hasDatasetFilter {
		if dataset, ok := entry.Data["dataset"].(string); ok && dataset != "" {
			if !h.allowedDatasets[strings.ToLower(dataset)] {
				entry.Data["_filtered"] = true
				return nil
			}
		}
	}

	return nil
}

// UpdateFilters replaces the active filters, safe to call at runtime.
func (h *FilterHook) UpdateFilters(cfg *LogConfig) {
	h.updateFilters(cfg)
}
