package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	NewsFetched            int64
	ItemsFilteredOut       int64
	SourceFailures         int64
	SuccessfulTranslations int64
	FailedTranslations     int64
	SectionsBuilt          int64
	MailsSent              int64

	// Timings
	LastBuildTime    time.Duration
	TotalBuildTime   time.Duration
	AverageBuildTime time.Duration
	BuildCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddNewsFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NewsFetched += int64(n)
}

func (m *Metrics) IncrementItemsFilteredOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsFilteredOut++
}

func (m *Metrics) IncrementSourceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFailures++
}

func (m *Metrics) IncrementSuccessfulTranslations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuccessfulTranslations++
}

func (m *Metrics) IncrementFailedTranslations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedTranslations++
}

func (m *Metrics) IncrementSectionsBuilt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SectionsBuilt++
}

func (m *Metrics) IncrementMailsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MailsSent++
}

func (m *Metrics) RecordBuildTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastBuildTime = duration
	m.TotalBuildTime += duration
	m.BuildCount++

	if m.BuildCount > 0 {
		m.AverageBuildTime = m.TotalBuildTime / time.Duration(m.BuildCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"news_fetched":            m.NewsFetched,
		"items_filtered_out":      m.ItemsFilteredOut,
		"source_failures":         m.SourceFailures,
		"successful_translations": m.SuccessfulTranslations,
		"failed_translations":     m.FailedTranslations,
		"sections_built":          m.SectionsBuilt,
		"mails_sent":              m.MailsSent,
		"last_build_time_ms":      m.LastBuildTime.Milliseconds(),
		"average_build_time_ms":   m.AverageBuildTime.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
